package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/unit"
)

func TestDecode(t *testing.T) {
	src := `
log:
  level: debug
  encoding: json
units:
  - number: 10
    path: out.txt
    action: write
  - number: 11
    path: in.txt
format:
  default: "(I3,/)"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Encoding != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if len(cfg.Units) != 2 || cfg.Units[0].Number != 10 || cfg.Units[1].Action != "" {
		t.Errorf("Units = %+v", cfg.Units)
	}
	prog, err := cfg.DefaultFormat()
	if err != nil || prog == nil {
		t.Fatalf("DefaultFormat = %v, %v", prog, err)
	}
	if prog.String() != "(I3,/,/)" {
		t.Errorf("program = %s", prog)
	}
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Log != Default().Log || len(cfg.Units) != 0 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	prog, err := cfg.DefaultFormat()
	if prog != nil || err != nil {
		t.Errorf("DefaultFormat = %v, %v; want list-directed", prog, err)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
		want string
	}{
		{"unknown key", "log:\n  colour: red\n", errors.KindInvalidInput, "colour"},
		{"bad level", "log:\n  level: loud\n", errors.KindInvalidInput, "log.level"},
		{"bad encoding", "log:\n  encoding: xml\n", errors.KindInvalidInput, "log.encoding"},
		{"preconnected unit", "units:\n  - number: 6\n    path: x\n", errors.KindInvalidInput, "preconnected"},
		{"duplicate unit", "units:\n  - {number: 9, path: a}\n  - {number: 9, path: b}\n", errors.KindInvalidInput, "listed twice"},
		{"missing path", "units:\n  - number: 9\n", errors.KindInvalidInput, "path is required"},
		{"bad action", "units:\n  - {number: 9, path: a, action: erase}\n", errors.KindInvalidInput, "unknown action"},
		{"bad format", "format:\n  default: \"(I3\"\n", errors.KindFormatSyntax, "format.default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want substring %q", err.Error(), tt.want)
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind}) {
				t.Errorf("err = %v, want %s config error", err, tt.kind)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	cfgPath := filepath.Join(dir, "runtime.yaml")
	src := "units:\n  - number: 20\n    path: " + out + "\n    action: write\n"
	if err := os.WriteFile(cfgPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := unit.NewTable()
	defer table.Close()
	if err := cfg.Connect(table); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	u, ok := table.Get(20)
	if !ok || u.Action != unit.ActionWrite || !u.Writable() || u.Readable() {
		t.Fatalf("unit 20 = %+v, %v", u, ok)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.IsIO(err) {
		t.Errorf("missing file err = %v, want IO error", err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, enc := range []string{"console", "json"} {
		cfg := Default()
		cfg.Log.Encoding = enc
		cfg.Log.Level = "info"
		l, err := cfg.NewLogger()
		if err != nil {
			t.Fatalf("NewLogger(%s): %v", enc, err)
		}
		if l.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("%s logger enables debug at level info", enc)
		}
	}
}
