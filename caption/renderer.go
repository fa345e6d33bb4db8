package caption

import (
	"fmt"
	"strings"

	"autocaption/domain"
)

// UnknownVariableError is returned when a template references a name that is not bound.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown template variable %q", e.Name)
}

// SyntaxError reports a malformed template. Offset is a byte offset in the template.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Msg)
}

type Option func(*renderOptions)

type renderOptions struct {
	escape func(string) string
}

// WithEscaper transforms every substituted value, literal template text is untouched.
func WithEscaper(escape func(string) string) Option {
	return func(o *renderOptions) {
		o.escape = escape
	}
}

// Render substitutes {{ name }} and {name} placeholders and evaluates
// {% if name %}, {% if not name %}, {% else %} and {% endif %} blocks.
// A variable is true when its value is not empty.
// Every referenced name must be bound, including names inside branches not taken.
func Render(template string, vars domain.VariableSet, opts ...Option) (string, error) {
	o := renderOptions{escape: func(s string) string { return s }}
	for _, opt := range opts {
		opt(&o)
	}

	nodes, err := parseTemplate(template)
	if err != nil {
		return "", err
	}
	if err := checkNames(nodes, vars); err != nil {
		return "", err
	}

	var sb strings.Builder
	write(&sb, nodes, vars, o)
	return sb.String(), nil
}

// Names lists the variables referenced by template, in order of first appearance.
func Names(template string) ([]string, error) {
	nodes, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var names []string
	walk(nodes, func(name string) bool {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		return true
	})
	return names, nil
}

type nodeKind int

const (
	textNode nodeKind = iota
	varNode
	ifNode
)

type node struct {
	kind      nodeKind
	text      string
	name      string
	negate    bool
	then      []node
	otherwise []node
}

func checkNames(nodes []node, vars domain.VariableSet) error {
	var missing string
	walk(nodes, func(name string) bool {
		if _, ok := vars.Lookup(name); !ok {
			missing = name
			return false
		}
		return true
	})
	if missing != "" {
		return &UnknownVariableError{Name: missing}
	}
	return nil
}

// walk visits every referenced name in document order until visit returns false.
func walk(nodes []node, visit func(name string) bool) bool {
	for _, n := range nodes {
		switch n.kind {
		case varNode:
			if !visit(n.name) {
				return false
			}
		case ifNode:
			if !visit(n.name) || !walk(n.then, visit) || !walk(n.otherwise, visit) {
				return false
			}
		}
	}
	return true
}

func write(sb *strings.Builder, nodes []node, vars domain.VariableSet, o renderOptions) {
	for _, n := range nodes {
		switch n.kind {
		case textNode:
			sb.WriteString(n.text)
		case varNode:
			sb.WriteString(o.escape(vars.Get(n.name)))
		case ifNode:
			truthy := vars.Get(n.name) != ""
			if truthy != n.negate {
				write(sb, n.then, vars, o)
			} else {
				write(sb, n.otherwise, vars, o)
			}
		}
	}
}
