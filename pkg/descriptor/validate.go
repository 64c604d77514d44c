package descriptor

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

var validate = validator.New()

// messages maps validation tags to the wording used in InvalidTemplate errors
var messages = map[string]string{
	"required": "%s is required",
	"min":      "%s must have at least %s element(s)",
	"max":      "%s must have at most %s elements",
}

// validateStruct runs the struct tags of a Descriptor and converts the first
// failure into an InvalidTemplate error
func validateStruct(d *Descriptor) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(err, errors.ErrInvalidTemplate, "invalid descriptor")
	}

	fe := verrs[0]
	field := fieldPath(fe)
	msg := fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	if format, ok := messages[fe.Tag()]; ok {
		if strings.Count(format, "%s") == 2 {
			msg = fmt.Sprintf(format, field, fe.Param())
		} else {
			msg = fmt.Sprintf(format, field)
		}
	}

	return errors.New(errors.ErrInvalidTemplate, msg).
		WithDetail("field", field).
		WithDetail("rule", fe.Tag())
}

// fieldPath turns "Descriptor.Actions[2][0]" into "actions[2][0]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return strings.ToLower(ns[:1]) + ns[1:]
}
