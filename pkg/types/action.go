package types

import "fmt"

// ActionKind identifies the variant of an Action. The values match the
// number of elements an action has in a descriptor.
type ActionKind int

const (
	// ActionShell runs a shell command
	ActionShell ActionKind = 1

	// ActionEmitFile writes a destination file from a processed source template
	ActionEmitFile ActionKind = 2
)

// String returns the kind name used in logs and reports
func (k ActionKind) String() string {
	switch k {
	case ActionShell:
		return "shell"
	case ActionEmitFile:
		return "file"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Action is one step of a resolved template. Shell actions only use
// Command; file actions use Destination and Source.
type Action struct {
	Kind        ActionKind
	Command     string
	Destination string
	Source      string
}

// ShellAction creates a shell action
func ShellAction(command string) Action {
	return Action{Kind: ActionShell, Command: command}
}

// EmitFileAction creates a file emission action
func EmitFileAction(destination, source string) Action {
	return Action{Kind: ActionEmitFile, Destination: destination, Source: source}
}

// Target returns the command for shell actions and the destination for file actions
func (a Action) Target() string {
	if a.Kind == ActionShell {
		return a.Command
	}
	return a.Destination
}

// Description returns a human-readable description of the action
func (a Action) Description() string {
	switch a.Kind {
	case ActionShell:
		return fmt.Sprintf("Run %q", a.Command)
	case ActionEmitFile:
		return fmt.Sprintf("Write %s from %s", a.Destination, a.Source)
	default:
		return fmt.Sprintf("Unknown action %v", a)
	}
}
