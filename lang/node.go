package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// NodeKind identifies the shape of a syntax tree node.
type NodeKind int

const (
	// NodeLeaf is an atom: a literal value or an identifier reference.
	NodeLeaf NodeKind = iota

	// NodeList is a parenthesized form whose first element is the
	// operator position.
	NodeList
)

// Node is a syntax tree node. A leaf carries the token it was scanned
// from and, for literals, the value it casts to; a list carries its
// ordered child nodes.
type Node struct {
	Nodes []*Node
	Tok   Token
	Val   Value
	Kind  NodeKind
}

// NewListNode constructs a list node over the given children.
// An empty argument list evaluates to nil.
func NewListNode(nodes ...*Node) *Node {
	return &Node{Kind: NodeList, Nodes: nodes}
}

// NewValueNode constructs a leaf node that evaluates to the given value
// unconditionally.
func NewValueNode(v Value) *Node {
	return &Node{Kind: NodeLeaf, Val: v}
}

// NewIdent constructs a leaf node that evaluates by resolving name in the
// binding environment.
func NewIdent(name string) *Node {
	return &Node{
		Kind: NodeLeaf,
		Tok:  Token{Kind: TokenSymbol, Text: name},
	}
}

// leaf constructs a leaf node from a scanned token, casting literal
// tokens to their runtime value. Symbols and keywords remain unresolved
// until evaluation.
func leaf(tok Token) (*Node, error) {
	n := &Node{Kind: NodeLeaf, Tok: tok}

	switch tok.Kind {
	case TokenNumber:
		v, err := castNumber(tok.Text)
		if err != nil {
			return nil, err
		}

		n.Val = v

	case TokenTime:
		t, err := parseTime(tok.Text)
		if err != nil {
			return nil, err
		}

		n.Val = Time(t)

	case TokenString:
		n.Val = Text(tok.Text)

	case TokenSymbol, TokenKeyword:
		// Resolved against the environment at evaluation time.

	default:
		return nil, ErrSyntax.With(
			slog.String("token", tok.Kind.String()),
			slog.String("text", tok.Text),
		)
	}

	return n, nil
}

// castNumber casts a number literal to an integer value, or to a float
// when the literal carries a fractional part.
func castNumber(text string) (Value, error) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Nil(), ErrSyntax.Wrap(err).
				With(slog.String("literal", text))
		}

		return Float(f), nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Nil(), ErrSyntax.Wrap(err).
			With(slog.String("literal", text))
	}

	return Int(i), nil
}

// isIdent reports whether the leaf resolves through the environment
// rather than evaluating to a fixed value.
func (n *Node) isIdent() bool {
	return n.Kind == NodeLeaf &&
		(n.Tok.Kind == TokenSymbol || n.Tok.Kind == TokenKeyword)
}
