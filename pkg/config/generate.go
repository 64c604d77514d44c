package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// fileConfig is the on-disk layout written by Generate
type fileConfig struct {
	Templates struct {
		Paths      []string `toml:"paths" comment:"Directories scanned for descriptors, in order"`
		Extensions []string `toml:"extensions" comment:"Descriptor file extensions"`
	} `toml:"templates"`
	Arguments struct {
		Strict bool `toml:"strict" comment:"Fail when a declared argument is not supplied"`
	} `toml:"arguments"`
	Shell struct {
		Program           string `toml:"program" comment:"Shell actions run as <program> -c <command>"`
		Timeout           string `toml:"timeout" comment:"Per-command time limit, 0s means none"`
		ContinueOnFailure bool   `toml:"continue_on_failure" comment:"Keep going after a failed shell command"`
	} `toml:"shell"`
	Output struct {
		Color string `toml:"color" comment:"auto, always or never"`
	} `toml:"output"`
}

// Generate renders cfg as a commented TOML user file
func Generate(cfg *Config) ([]byte, error) {
	var out fileConfig
	out.Templates.Paths = cfg.Templates.Paths
	if out.Templates.Paths == nil {
		out.Templates.Paths = []string{}
	}
	out.Templates.Extensions = cfg.Templates.Extensions
	out.Arguments.Strict = cfg.Arguments.Strict
	out.Shell.Program = cfg.Shell.Program
	out.Shell.Timeout = cfg.Shell.Timeout.String()
	out.Shell.ContinueOnFailure = cfg.Shell.ContinueOnFailure
	out.Output.Color = cfg.Output.Color

	data, err := toml.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
