// Package bsdl reads IEEE 1149.1 BSDL files and turns the entity port list
// into a schematic symbol.
package bsdl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
)

var (
	// ErrSyntax wraps every grammar error.
	ErrSyntax = errors.New("parse error")
	// ErrEndName is returned when "end NAME;" names a different entity.
	ErrEndName = errors.New("end name does not match entity")
)

// Parser parses BSDL source.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads a BSDL file from r. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	f, err := p.parser.Parse(name, r)
	return checkFile(f, err)
}

// ParseString parses BSDL source held in memory.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	return checkFile(f, err)
}

// ParseFile opens and parses filename.
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

func checkFile(f *File, err error) (*File, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	e := f.Entity
	if e.EndName != "" && !strings.EqualFold(e.EndName, e.Name) {
		return nil, fmt.Errorf("%w: entity %s ends with %s", ErrEndName, e.Name, e.EndName)
	}
	return f, nil
}

var shared = sync.OnceValues(NewParser)

// ParseEntityFile parses path with a parser shared by all callers and
// returns its entity.
func ParseEntityFile(path string) (*Entity, error) {
	p, err := shared()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Entity, nil
}
