package commands

import (
	"github.com/arthur-debert/templatizer/pkg/errors"
)

// Process exit codes
const (
	ExitOK               = 0
	ExitError            = 1
	ExitTemplateNotFound = 2
	ExitInvalidTemplate  = 3
	ExitArgumentRequired = 4
	ExitActionFailed     = 5
)

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.HasErrorCode(err, errors.ErrArgumentRequired):
		return ExitArgumentRequired
	case errors.HasErrorCode(err, errors.ErrTemplateNotFound):
		return ExitTemplateNotFound
	case errors.HasErrorCode(err, errors.ErrInvalidTemplate),
		errors.HasErrorCode(err, errors.ErrExpression):
		return ExitInvalidTemplate
	case errors.HasErrorCode(err, errors.ErrActionExecute),
		errors.HasErrorCode(err, errors.ErrActionSourceMissing):
		return ExitActionFailed
	default:
		return ExitError
	}
}
