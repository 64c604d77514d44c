package expression

import (
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// grammar rejects every construct outside the expression language:
// builtins missing from AllowedBuiltins, predicates (map, filter, reduce,
// sum, sortBy...), closures and # pointers, let declarations, statement
// sequences, ranges, array and map literals, and $env.
type grammar struct {
	builtins  map[string]bool
	functions map[string]bool
	violation string
}

func newGrammar() *grammar {
	g := &grammar{builtins: make(map[string]bool), functions: make(map[string]bool)}
	for _, name := range AllowedBuiltins {
		g.builtins[name] = true
	}
	for _, fn := range functions {
		g.functions[fn.name] = true
	}
	return g
}

// check parses expression and reports the first forbidden construct.
// Syntax errors are left to the compiler.
func (g *grammar) check(expression string) error {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil
	}

	g.violation = ""
	ast.Walk(&tree.Node, g)
	if g.violation == "" {
		return nil
	}
	return errors.Newf(errors.ErrExpression, "%s is not allowed in %q", g.violation, expression).
		WithDetail("expression", expression).
		WithDetail("construct", g.violation)
}

// Visit implements ast.Visitor. Children are visited first, so the
// innermost violation is kept.
func (g *grammar) Visit(node *ast.Node) {
	if g.violation != "" {
		return
	}

	switch n := (*node).(type) {
	case *ast.BuiltinNode:
		if !g.builtins[n.Name] {
			g.violation = "builtin " + n.Name
		}
	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); !ok || !g.functions[id.Value] {
			g.violation = "function call"
		}
	case *ast.IdentifierNode:
		if strings.HasPrefix(n.Value, "$") {
			g.violation = n.Value
		}
	case *ast.BinaryNode:
		if n.Operator == ".." {
			g.violation = "range"
		}
	case *ast.PredicateNode, *ast.PointerNode:
		g.violation = "closure"
	case *ast.VariableDeclaratorNode:
		g.violation = "let"
	case *ast.SequenceNode:
		g.violation = "statement sequence"
	case *ast.ArrayNode:
		g.violation = "array literal"
	case *ast.MapNode, *ast.PairNode:
		g.violation = "map literal"
	}
}
