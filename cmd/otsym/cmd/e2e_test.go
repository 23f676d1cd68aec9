package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symfile"
)

const (
	exampleSym = "../../../pkg/symfile/testdata/example.sym"
	demoBSDL   = "../../../pkg/bsdl/testdata/demo.bsd"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags to prevent accumulation between tests
	renderOutput = ""
	bsdlOutput = ""
	demoOutput = "demo.png"
	pinNumbers = false
	configPath = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCommandsE2E(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantFile    string
	}{
		{
			name:        "demo svg",
			args:        []string{"demo", "-o", filepath.Join(dir, "demo.svg")},
			wantContain: []string{"Rendered", "My symbol", "demo.svg"},
			wantFile:    filepath.Join(dir, "demo.svg"),
		},
		{
			name:        "render png",
			args:        []string{"render", exampleSym, "-o", filepath.Join(dir, "example.png")},
			wantContain: []string{"My symbol"},
			wantFile:    filepath.Join(dir, "example.png"),
		},
		{
			name:        "bsdl to stdout",
			args:        []string{"bsdl", demoBSDL},
			wantContain: []string{`(symbol "DEMO_CHIP"`, `(section "JTAG"`, `(pin "PA" inout bus (type "bit_vector(0 to 3)"))`},
		},
		{
			name:        "bsdl with pin numbers",
			args:        []string{"bsdl", demoBSDL, "--pin-numbers"},
			wantContain: []string{`(pin "VSS (17)" in (type "linkage"))`},
		},
		{
			name:        "info bsdl",
			args:        []string{"info", demoBSDL},
			wantContain: []string{"DEMO_CHIP", "QFN16", "JTAG", "Power", "TDO", "0x10001041", "STMicroelectronics"},
		},
		{
			name:        "info symbol",
			args:        []string{"info", exampleSym},
			wantContain: []string{"My symbol", "3 rows", "i_foobar", "logic [15:0]"},
		},
		{
			name:        "layout",
			args:        []string{"layout", exampleSym},
			wantContain: []string{"save", "rect", `"i_foo"`, "page"},
		},
		{
			name:    "missing file",
			args:    []string{"render", filepath.Join(dir, "nope.sym")},
			wantErr: true,
		},
		{
			name:    "unsupported output",
			args:    []string{"demo", "-o", filepath.Join(dir, "demo.bmp")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			if tt.wantFile != "" {
				if st, err := os.Stat(tt.wantFile); err != nil || st.Size() == 0 {
					t.Errorf("Expected non-empty %s: %v", tt.wantFile, err)
				}
			}
		})
	}
}

func TestBSDLConvertE2E(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.yaml")
	if _, err := runCLI(t, "bsdl", demoBSDL, "-o", out); err != nil {
		t.Fatalf("bsdl: %v", err)
	}

	sym, err := symfile.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sym.Name != "DEMO_CHIP" || len(sym.Sections()) != 3 {
		t.Errorf("Unexpected symbol %q with %d sections", sym.Name, len(sym.Sections()))
	}
}

func TestConfigFileE2E(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "otsym.toml")
	if err := os.WriteFile(cfg, []byte("theme = \"dark\"\n[render]\nscale = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "demo.svg")
	if _, err := runCLI(t, "demo", "--config", cfg, "-o", out); err != nil {
		t.Fatalf("demo: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// Dark theme background.
	if !strings.Contains(string(data), `fill="#1e1e1e"`) {
		t.Errorf("SVG does not use the dark background:\n%.400s", data)
	}
}
