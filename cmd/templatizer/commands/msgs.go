package commands

// Command descriptions
const (
	MsgRootShort = "Generate projects and files from data-driven templates"
	MsgRootLong  = `templatizer runs template descriptors: small JSON or YAML documents that
declare variables, constants and an ordered list of actions. Variables are
computed from --key=value arguments, placeholders are substituted into file
contents, paths and shell commands, and existing files are never overwritten.

Templates are discovered in the directories listed under templates.paths in
the configuration file and in the legacy ~/.templatizer file.`
	MsgRootUse = "templatizer [flags] <template> [--key=value ...]"

	MsgRunShort    = "Run a template (same as the root command)"
	MsgListShort   = "List discovered templates"
	MsgShowShort   = "Show a template's placeholders and actions"
	MsgConfigShort = "Inspect or create the configuration file"
	MsgInitShort   = "Write the default configuration file"
	MsgConfigShow  = "Print the effective configuration"

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"
)

// Flag descriptions
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDebug   = "Enable debug output (same as -vv)"
	MsgFlagConfig  = "Configuration file (default $XDG_CONFIG_HOME/templatizer/config.toml)"
	MsgFlagDir     = "Working directory actions run in (default current directory)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagDryRun  = "Show what would happen without writing files or running commands"
	MsgFlagStrict  = "Fail when a declared argument is not supplied"
	MsgFlagVersion = "Print version information"
	MsgFlagForce   = "Overwrite an existing configuration file"
)

// Status messages
const (
	MsgConfigWritten = "Wrote configuration to %s\n"
	MsgNoTemplate    = "no template specified"
)
