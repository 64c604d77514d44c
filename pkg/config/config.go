package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/paths"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "TEMPLATIZER_"

// Color modes for output.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete templatizer configuration
type Config struct {
	Templates Templates `koanf:"templates"`
	Arguments Arguments `koanf:"arguments"`
	Shell     Shell     `koanf:"shell"`
	Output    Output    `koanf:"output"`
}

// Templates controls descriptor discovery
type Templates struct {
	Paths      []string `koanf:"paths" validate:"dive,required"`
	Extensions []string `koanf:"extensions" validate:"required,min=1,dive,startswith=."`
}

// Arguments controls argument resolution
type Arguments struct {
	Strict bool `koanf:"strict"`
}

// Shell controls the default shell handler
type Shell struct {
	Program           string        `koanf:"program" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"min=0"`
	ContinueOnFailure bool          `koanf:"continue_on_failure"`
}

// Output controls terminal rendering
type Output struct {
	Color string `koanf:"color" validate:"oneof=auto always never"`
}

// LoadOptions says where to look for configuration
type LoadOptions struct {
	// UserFile is loaded when it exists
	UserFile string

	// RequireUserFile makes a missing UserFile an error (set for --config)
	RequireUserFile bool

	// LegacyFile lists template directories one per line
	LegacyFile string

	// DefaultTemplatesDir is used when no template path is configured
	DefaultTemplatesDir string

	// Overrides are applied last, keyed by dotted path ("shell.program")
	Overrides map[string]interface{}
}

// DefaultLoadOptions uses the standard locations from p
func DefaultLoadOptions(p paths.Paths) LoadOptions {
	return LoadOptions{
		UserFile:            p.ConfigFile(),
		LegacyFile:          p.LegacyConfigFile(),
		DefaultTemplatesDir: p.TemplatesDir(),
	}
}

var validate = validator.New()

// Load builds the configuration from all layers
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	// 2. User file
	if opts.UserFile != "" {
		_, statErr := os.Stat(opts.UserFile)
		switch {
		case statErr == nil:
			if err := k.Load(file.Provider(opts.UserFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.UserFile).
					WithDetail("path", opts.UserFile)
			}
			logger.Debug().Str("path", opts.UserFile).Msg("Loaded user configuration")
		case opts.RequireUserFile:
			return nil, errors.Wrapf(statErr, errors.ErrConfigLoad, "config file %s not found", opts.UserFile).
				WithDetail("path", opts.UserFile)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg, opts); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}

	logger.Debug().
		Strs("templatePaths", cfg.Templates.Paths).
		Strs("extensions", cfg.Templates.Extensions).
		Bool("strict", cfg.Arguments.Strict).
		Str("shell", cfg.Shell.Program).
		Msg("Configuration loaded")

	return &cfg, nil
}

// postProcess appends legacy directories, applies the default template
// directory and normalizes every path
func postProcess(cfg *Config, opts LoadOptions) error {
	if opts.LegacyFile != "" {
		legacy, err := ReadLegacyFile(opts.LegacyFile)
		if err != nil {
			return err
		}
		cfg.Templates.Paths = append(cfg.Templates.Paths, legacy...)
	}

	if len(cfg.Templates.Paths) == 0 && opts.DefaultTemplatesDir != "" {
		cfg.Templates.Paths = []string{opts.DefaultTemplatesDir}
	}

	seen := make(map[string]bool)
	normalized := make([]string, 0, len(cfg.Templates.Paths))
	for _, p := range cfg.Templates.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = paths.ExpandHome(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}
	cfg.Templates.Paths = normalized

	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
	return nil
}
