package render

import (
	"bytes"
	stdpng "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/fontmetrics"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

func testSymbol() *symbol.Symbol {
	s := symbol.NewSection("")
	s.AddPin(symbol.NewPin("i_foo", symbol.In).WithBus(true).WithType("logic [15:0]"))
	s.AddPin(symbol.NewPin("o_bar", symbol.Out).WithType("logic"))
	s.AddPin(symbol.NewPin("i_foobar", symbol.In).WithType("logic"))
	s.AddPin(symbol.NewPin("i_barfoo", symbol.In).WithBus(true).WithType("logic [15:0]"))

	sym := symbol.New("My symbol")
	sym.AddSection(s)
	return sym
}

func testLayout(t *testing.T) (*symbol.Layout, *fontmetrics.Face) {
	t.Helper()
	face, err := fontmetrics.New()
	if err != nil {
		t.Fatalf("fontmetrics.New: %v", err)
	}
	return symbol.NewLayout(face), face
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"dir/OUT.SVG", FormatSVG, false},
		{"out.pdf", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRecordPage(t *testing.T) {
	l, _ := testLayout(t)
	sym := testSymbol()

	page, err := Record(sym, l, 10)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	w, h := sym.Size(l)
	// The ink is at least as wide as the body plus both outer columns,
	// less the unused outer space on the side with shorter type labels.
	if page.Width < w/2 || page.Height < h {
		t.Errorf("page %gx%g smaller than symbol %gx%g", page.Width, page.Height, w, h)
	}

	bounds, ok := page.Recording().Bounds(l.Measurer())
	if !ok {
		t.Fatal("nothing recorded")
	}
	if math.Abs(bounds.X+page.OffsetX-10) > 1e-9 || math.Abs(bounds.Y+page.OffsetY-10) > 1e-9 {
		t.Errorf("ink does not start at the margin: bounds %+v offset %g,%g", bounds, page.OffsetX, page.OffsetY)
	}
}

func TestRecordRejectsBadConfig(t *testing.T) {
	l, _ := testLayout(t)
	l.Config.PinSpacing = -1
	if _, err := Record(testSymbol(), l, 0); err == nil {
		t.Error("expected config error")
	}
	l.Config = symbol.DefaultConfig()
	if _, err := Record(testSymbol(), l, -1); err == nil {
		t.Error("expected margin error")
	}
}

func TestRenderPNG(t *testing.T) {
	l, face := testLayout(t)
	opts := DefaultOptions()
	opts.Font = face

	data, err := Render(testSymbol(), l, FormatPNG, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	page, _ := Record(testSymbol(), l, opts.Margin)
	wantW := int(math.Ceil(page.Width * opts.Scale))
	if img.Bounds().Dx() != wantW {
		t.Errorf("width %d, want %d", img.Bounds().Dx(), wantW)
	}
}

func TestRenderSVG(t *testing.T) {
	l, face := testLayout(t)
	opts := DefaultOptions()
	opts.Font = face

	data, err := Render(testSymbol(), l, FormatSVG, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(data)
	for _, want := range []string{"My symbol", "i_foo", "o_bar", "logic [15:0]", "<path"} {
		if !strings.Contains(doc, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	l, face := testLayout(t)
	opts := DefaultOptions()
	opts.Font = face

	path := filepath.Join(t.TempDir(), "sym.svg")
	if err := WriteFile(path, testSymbol(), l, opts); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Error("file is not an svg document")
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "sym.gif"), testSymbol(), l, opts); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
