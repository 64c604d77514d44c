package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for templatizer
	EnvConfigDir = "TEMPLATIZER_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for templatizer
	EnvDataDir = "TEMPLATIZER_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the application directories
const (
	// AppDirName is the directory name under each XDG base directory
	AppDirName = "templatizer"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// LegacyConfigName is the pre-XDG configuration file in $HOME.
	// It lists one template directory per line.
	LegacyConfigName = ".templatizer"

	// TemplatesDirName is the default template directory inside DataDir
	TemplatesDirName = "templates"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "templatizer.log"
)

// Paths exposes the locations templatizer reads and writes
type Paths interface {
	ConfigDir() string
	ConfigFile() string
	LegacyConfigFile() string
	DataDir() string
	TemplatesDir() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	home      string
	xdgConfig string
	xdgData   string
	xdgState  string
}

// New resolves all locations from the environment
func New() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
		}
	}

	p := &paths{home: home}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = ExpandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.xdgData = ExpandHome(dir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	p.xdgState = filepath.Join(xdg.StateHome, AppDirName)

	return p, nil
}

func (p *paths) ConfigDir() string { return p.xdgConfig }

func (p *paths) ConfigFile() string { return filepath.Join(p.xdgConfig, ConfigFileName) }

func (p *paths) LegacyConfigFile() string { return filepath.Join(p.home, LegacyConfigName) }

func (p *paths) DataDir() string { return p.xdgData }

// TemplatesDir is the template directory used when none is configured
func (p *paths) TemplatesDir() string { return filepath.Join(p.xdgData, TemplatesDirName) }

func (p *paths) StateDir() string { return p.xdgState }

func (p *paths) LogFilePath() string { return filepath.Join(p.xdgState, LogFileName) }

// NormalizePath expands ~ and makes path absolute and clean
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path).
			WithDetail("path", path)
	}
	return filepath.Clean(abs), nil
}

// ExpandHome replaces a leading ~ or ~/ with the user's home directory.
// ~user forms are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return path
		}
	}

	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
