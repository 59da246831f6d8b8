// Package config loads the optional listkit.yaml file and installs the
// process-wide settings it describes: the assertion policy, the error
// handler's logger and the default layout strategy.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/listkit/pkg/errors"
	"github.com/go-drift/listkit/pkg/layout"
	"github.com/go-drift/listkit/pkg/logging"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "listkit.yaml"

// DefaultVersion is assumed when the file does not declare one.
const DefaultVersion = "v1.0.0"

// Config represents the optional listkit.yaml configuration.
type Config struct {
	Version    string       `yaml:"version,omitempty"`
	Assertions string       `yaml:"assertions,omitempty"`
	Log        LogConfig    `yaml:"log"`
	Layout     LayoutConfig `yaml:"layout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// LayoutConfig contains layout strategy settings.
type LayoutConfig struct {
	// Default names the strategy returned when no container overrides it.
	Default string `yaml:"default,omitempty"`
	// Strategies lists extra strategy names to register.
	Strategies []string `yaml:"strategies,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	Version       string
	Policy        errors.Policy
	LogLevel      string
	LogFormat     string
	Verbose       bool
	DefaultLayout string
	Strategies    []string
}

// LoadOptional reads listkit.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads listkit.yaml (if present) from dir and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return ResolveConfig(dir, cfg)
}

// ResolveConfig validates cfg and fills in defaults. dir is used to find the
// enclosing module path for diagnostics and may be empty.
func ResolveConfig(dir string, cfg *Config) (*Resolved, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = DefaultVersion
	}
	if err := validateVersion(version); err != nil {
		return nil, err
	}

	policy, err := errors.ParsePolicy(strings.TrimSpace(cfg.Assertions))
	if err != nil {
		return nil, configError(err)
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = "info"
	}
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, configError(fmt.Errorf("unknown log level %q", level))
	}

	format := strings.TrimSpace(cfg.Log.Format)
	if format == "" {
		format = "text"
	}
	switch format {
	case "text", "json", "auto":
	default:
		return nil, configError(fmt.Errorf("unknown log format %q", format))
	}

	defaultLayout := strings.TrimSpace(cfg.Layout.Default)
	if defaultLayout == "" {
		defaultLayout = layout.Flow.Name()
	}

	var strategies []string
	for _, s := range cfg.Layout.Strategies {
		if s = strings.TrimSpace(s); s != "" {
			strategies = append(strategies, s)
		}
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath(dir),
		Version:       semver.Canonical(version),
		Policy:        policy,
		LogLevel:      level,
		LogFormat:     format,
		Verbose:       cfg.Log.Verbose,
		DefaultLayout: defaultLayout,
		Strategies:    strategies,
	}, nil
}

// Apply installs r process-wide and returns the logger it built. Extra
// strategies are registered before the default is looked up.
func Apply(r *Resolved, w io.Writer) (*slog.Logger, error) {
	for _, name := range r.Strategies {
		layout.Register(layout.Named(name))
	}
	def, err := layout.Lookup(r.DefaultLayout)
	if err != nil {
		return nil, configError(err)
	}

	logger := logging.New(r.LogLevel, r.LogFormat, w)
	if r.ModulePath != "" {
		logger = logger.With(slog.String("module", r.ModulePath))
	}

	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: r.Verbose})
	errors.SetPolicy(r.Policy)
	layout.SetDefault(def)
	return logger, nil
}

func validateVersion(v string) error {
	if !semver.IsValid(v) {
		return configError(fmt.Errorf("version %q is not a semantic version", v))
	}
	if major := semver.Major(v); major != semver.Major(DefaultVersion) {
		return configError(fmt.Errorf("version %q is not supported (want %s.x.x)", v, semver.Major(DefaultVersion)))
	}
	return nil
}

// modulePath returns the module path declared by dir/go.mod, or "".
func modulePath(dir string) string {
	if dir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func configError(err error) error {
	return &errors.ModelError{Op: "config.Resolve", Kind: errors.KindConfig, Err: err}
}
