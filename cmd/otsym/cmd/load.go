package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/bsdl"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symfile"
)

var pinNumbers bool

func isBSDL(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bsd", ".bsdl", ".bsm":
		return true
	}
	return false
}

// loadSymbol reads a symbol file, or builds a symbol from a BSDL file.
func loadSymbol(ctx context.Context, path string) (*symbol.Symbol, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	if !isBSDL(path) {
		sym, err := symfile.Load(path)
		if err != nil {
			return nil, err
		}
		p.done("loaded " + path)
		return sym, nil
	}

	entity, err := parseBSDL(path)
	if err != nil {
		return nil, err
	}
	sym, err := bsdl.SymbolFromEntity(entity, bsdl.SymbolOptions{PinNumbers: pinNumbers})
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("built %s from %d ports", sym.Name, len(entity.Ports())))
	return sym, nil
}

func parseBSDL(path string) (*bsdl.Entity, error) {
	entity, err := bsdl.ParseEntityFile(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing BSDL: %w", err)
	}
	return entity, nil
}
