package commands

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// invocation is a parsed `<template> [--key=value ...]` command line
type invocation struct {
	positional []string
	arguments  map[string]string
}

// splitInvocation separates raw into known flags, positional arguments and
// template arguments. Template arguments use the --key=value form; any
// --key=value whose key is not a flag of fs becomes one.
func splitInvocation(fs *pflag.FlagSet, raw []string) ([]string, *invocation, error) {
	inv := &invocation{arguments: make(map[string]string)}
	var flagArgs []string

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		switch {
		case arg == "--":
			inv.positional = append(inv.positional, raw[i+1:]...)
			return flagArgs, inv, nil

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			if f := fs.Lookup(name); f != nil {
				flagArgs = append(flagArgs, arg)
				if !hasValue && f.NoOptDefVal == "" && i+1 < len(raw) {
					i++
					flagArgs = append(flagArgs, raw[i])
				}
				continue
			}
			if !hasValue || name == "" {
				return nil, nil, errors.Newf(errors.ErrInvalidInput,
					"unknown flag %s (template arguments use --key=value)", arg).
					WithDetail("flag", arg)
			}
			inv.arguments[name] = value

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flagArgs = append(flagArgs, arg)
			shorthands := arg[1:]
			for j, c := range shorthands {
				var f *pflag.Flag
				if c < 128 {
					f = fs.ShorthandLookup(string(c))
				}
				if f == nil {
					return nil, nil, errors.Newf(errors.ErrInvalidInput, "unknown shorthand flag %q in %s", c, arg).
						WithDetail("flag", arg)
				}
				if f.NoOptDefVal == "" {
					// the value is either attached (-Cdir) or the next argument
					if j == len(shorthands)-1 && i+1 < len(raw) {
						i++
						flagArgs = append(flagArgs, raw[i])
					}
					break
				}
			}

		default:
			inv.positional = append(inv.positional, arg)
		}
	}

	return flagArgs, inv, nil
}
