package lang

import (
	"strconv"
	"strings"
	"time"
)

// Format returns the canonical textual form of a syntax tree: lists as
// space-separated parenthesized forms, strings double-quoted with their
// escapes preserved verbatim, date-times as #dt{...} literals.
func Format(n *Node) string {
	var sb strings.Builder

	formatNode(&sb, n)

	return sb.String()
}

// FormatSource parses rule source and re-serializes it canonically,
// normalizing whitespace and quote style.
func FormatSource(source string) (string, error) {
	root, err := Parse(source)
	if err != nil {
		return "", err
	}

	return Format(root), nil
}

func formatNode(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")

		return
	}

	if n.Kind == NodeList {
		sb.WriteByte('(')

		for i, c := range n.Nodes {
			if i > 0 {
				sb.WriteByte(' ')
			}

			formatNode(sb, c)
		}

		sb.WriteByte(')')

		return
	}

	if n.isIdent() {
		sb.WriteString(n.Tok.Text)

		return
	}

	formatValue(sb, n.Val)
}

func formatValue(sb *strings.Builder, v Value) {
	switch v.Kind {
	case KindText:
		sb.WriteByte('"')
		sb.WriteString(v.Text)
		sb.WriteByte('"')
	case KindTime:
		sb.WriteString("#dt{")
		sb.WriteString(v.Time.Format(time.RFC3339))
		sb.WriteByte('}')
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		sb.WriteString(s)

		// A float literal keeps its decimal point so it re-parses
		// as a float.
		if !strings.Contains(s, ".") {
			sb.WriteString(".0")
		}
	default:
		sb.WriteString(v.String())
	}
}
