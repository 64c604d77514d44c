package commands

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/arthur-debert/templatizer/pkg/logging"
)

// options holds every command line flag
type options struct {
	verbosity  int
	debug      bool
	configFile string
	workDir    string
	format     string

	dryRun  bool
	strict  bool
	version bool
	help    bool
}

func addGlobalFlags(fs *pflag.FlagSet, o *options) {
	fs.CountVarP(&o.verbosity, "verbose", "v", MsgFlagVerbose)
	fs.BoolVarP(&o.debug, "debug", "d", false, MsgFlagDebug)
	fs.StringVar(&o.configFile, "config", "", MsgFlagConfig)
	fs.StringVarP(&o.workDir, "dir", "C", "", MsgFlagDir)
	fs.StringVar(&o.format, "format", "auto", MsgFlagFormat)
}

func addRunFlags(fs *pflag.FlagSet, o *options) {
	fs.BoolVar(&o.dryRun, "dry-run", false, MsgFlagDryRun)
	fs.BoolVar(&o.strict, "strict", false, MsgFlagStrict)
}

// parseInvocation parses the raw arguments of commands that accept
// template arguments. Those commands disable cobra's flag parsing, so the
// flags are bound again on a private flag set.
func parseInvocation(o *options, raw []string, withVersion bool) (*invocation, error) {
	fs := pflag.NewFlagSet("templatizer", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addGlobalFlags(fs, o)
	addRunFlags(fs, o)
	fs.BoolVarP(&o.help, "help", "h", false, "")
	if withVersion {
		fs.BoolVar(&o.version, "version", false, MsgFlagVersion)
	}

	flagArgs, inv, err := splitInvocation(fs, raw)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	inv.positional = append(inv.positional, fs.Args()...)
	return inv, nil
}

// effectiveVerbosity folds --debug into the verbose count
func (o *options) effectiveVerbosity() int {
	if o.debug && o.verbosity < 2 {
		return 2
	}
	return o.verbosity
}

func setupLogging(o *options) {
	logging.SetupLogger(o.effectiveVerbosity())
}
