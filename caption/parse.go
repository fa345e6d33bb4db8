package caption

import (
	"strings"
)

// block is an open {% if %} while parsing.
type block struct {
	node   node
	offset int
	inElse bool
	outer  []node
}

func parseTemplate(template string) ([]node, error) {
	var (
		stack   []*block
		current []node
		text    strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			current = append(current, node{kind: textNode, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch {
		case strings.HasPrefix(template[i:], "{%"):
			end := strings.Index(template[i+2:], "%}")
			if end < 0 {
				return nil, &SyntaxError{Offset: i, Msg: "unclosed {%"}
			}
			flush()
			fields := strings.Fields(template[i+2 : i+2+end])
			switch {
			case len(fields) == 2 && fields[0] == "if" && isIdentifier(fields[1]):
				stack = append(stack, &block{
					node:   node{kind: ifNode, name: fields[1]},
					offset: i,
					outer:  current,
				})
				current = nil
			case len(fields) == 3 && fields[0] == "if" && fields[1] == "not" && isIdentifier(fields[2]):
				stack = append(stack, &block{
					node:   node{kind: ifNode, name: fields[2], negate: true},
					offset: i,
					outer:  current,
				})
				current = nil
			case len(fields) == 1 && fields[0] == "else":
				if len(stack) == 0 {
					return nil, &SyntaxError{Offset: i, Msg: "else without if"}
				}
				top := stack[len(stack)-1]
				if top.inElse {
					return nil, &SyntaxError{Offset: i, Msg: "duplicate else"}
				}
				top.node.then = current
				top.inElse = true
				current = nil
			case len(fields) == 1 && fields[0] == "endif":
				if len(stack) == 0 {
					return nil, &SyntaxError{Offset: i, Msg: "endif without if"}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.inElse {
					top.node.otherwise = current
				} else {
					top.node.then = current
				}
				current = append(top.outer, top.node)
			default:
				return nil, &SyntaxError{Offset: i, Msg: "unsupported block " + strings.Join(fields, " ")}
			}
			i += end + 4

		case strings.HasPrefix(template[i:], "{{"):
			end := strings.Index(template[i+2:], "}}")
			if end < 0 {
				return nil, &SyntaxError{Offset: i, Msg: "unclosed {{"}
			}
			name := strings.TrimSpace(template[i+2 : i+2+end])
			if !isIdentifier(name) {
				return nil, &SyntaxError{Offset: i, Msg: "invalid placeholder " + name}
			}
			flush()
			current = append(current, node{kind: varNode, name: name})
			i += end + 4

		case template[i] == '{':
			// Legacy {name}. Any other brace is plain text.
			end := strings.IndexByte(template[i+1:], '}')
			if end >= 0 && isIdentifier(template[i+1:i+1+end]) {
				flush()
				current = append(current, node{kind: varNode, name: template[i+1 : i+1+end]})
				i += end + 2
				continue
			}
			text.WriteByte('{')
			i++

		default:
			text.WriteByte(template[i])
			i++
		}
	}

	if len(stack) > 0 {
		return nil, &SyntaxError{Offset: stack[len(stack)-1].offset, Msg: "if without endif"}
	}
	flush()
	return current, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
