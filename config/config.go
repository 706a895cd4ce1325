// Package config loads runtime settings from YAML: logging, preconnected
// units and the default format used by the fmtrun tool.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/for90-runtime/errors"
	"github.com/wippyai/for90-runtime/format"
	"github.com/wippyai/for90-runtime/unit"
)

// Config is the root of a configuration file.
type Config struct {
	Log    Log          `yaml:"log"`
	Units  []UnitConfig `yaml:"units"`
	Format Format       `yaml:"format"`
}

// Log selects the zap level and encoding.
type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// UnitConfig connects a file to a unit number at startup.
type UnitConfig struct {
	Number int    `yaml:"number"`
	Path   string `yaml:"path"`
	Action string `yaml:"action"`
}

// action parses Action; an empty action opens the unit for reading and writing.
func (u UnitConfig) action() (unit.Action, bool) {
	if u.Action == "" {
		return unit.ActionReadWrite, true
	}
	return unit.ParseAction(u.Action)
}

// Format holds format defaults.
type Format struct {
	Default string `yaml:"default"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    Log{Level: "warn", Encoding: "console"},
		Format: Format{Default: ""},
	}
}

// Load reads and validates the file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindIO).
			Path(path).
			Cause(err).
			Detail("open config").
			Build()
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && len(e.Path) == 0 {
			e.Path = []string{path}
		}
		return nil, err
	}
	return cfg, nil
}

// Decode reads one YAML document from r on top of Default and validates it.
// An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := Default()
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks levels, encodings, unit entries and the default format.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.InvalidInput(errors.PhaseConfig, []string{"log", "level"},
			fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return errors.InvalidInput(errors.PhaseConfig, []string{"log", "encoding"},
			fmt.Sprintf("encoding must be console or json, got %q", c.Log.Encoding))
	}

	seen := make(map[int]bool, len(c.Units))
	for i, u := range c.Units {
		path := []string{"units", fmt.Sprint(i)}
		switch {
		case u.Number < 0:
			return errors.InvalidInput(errors.PhaseConfig, path, "unit number must not be negative")
		case u.Number == unit.Stdin || u.Number == unit.Stdout || u.Number == unit.Stderr:
			return errors.InvalidInput(errors.PhaseConfig, path,
				fmt.Sprintf("unit %d is preconnected", u.Number))
		case seen[u.Number]:
			return errors.InvalidInput(errors.PhaseConfig, path,
				fmt.Sprintf("unit %d listed twice", u.Number))
		case u.Path == "":
			return errors.InvalidInput(errors.PhaseConfig, path, "path is required")
		}
		if _, ok := u.action(); !ok {
			return errors.InvalidInput(errors.PhaseConfig, append(path, "action"),
				fmt.Sprintf("unknown action %q", u.Action))
		}
		seen[u.Number] = true
	}

	if c.Format.Default != "" {
		if _, err := format.Compile(c.Format.Default); err != nil {
			return errors.New(errors.PhaseConfig, errors.KindFormatSyntax).
				Path("format", "default").
				Cause(err).
				Build()
		}
	}
	return nil
}

// NewLogger builds a zap logger writing to stderr at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	zc := zap.NewProductionConfig()
	if c.Log.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Log.Encoding
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// Connect opens every configured unit in t. Units opened before a failure
// stay connected.
func (c *Config) Connect(t *unit.Table) error {
	for _, u := range c.Units {
		action, ok := u.action()
		if !ok {
			return errors.InvalidInput(errors.PhaseConfig, []string{"units", "action"},
				fmt.Sprintf("unknown action %q", u.Action))
		}
		if err := t.Open(u.Number, u.Path, action); err != nil {
			return err
		}
	}
	return nil
}

// DefaultFormat compiles Format.Default, returning nil for list-directed I/O.
func (c *Config) DefaultFormat() (*format.Program, error) {
	if c.Format.Default == "" {
		return nil, nil
	}
	return format.Compile(c.Format.Default)
}
