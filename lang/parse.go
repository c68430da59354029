package lang

// Parse scans and parses rule source text into a syntax tree. A single
// top-level form is consumed; trailing tokens are ignored.
func Parse(source string) (*Node, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	root, _, err := parseForm(toks, 0)

	return root, err
}

// parseForm parses one form starting at toks[pos] and returns the node
// and the position following it. Empty input and a leading unmatched
// closer both parse as the empty list, which evaluates to nil.
func parseForm(toks []Token, pos int) (*Node, int, error) {
	if pos >= len(toks) {
		return NewListNode(), pos, nil
	}

	switch toks[pos].Kind {
	case TokenLParen:
		return parseList(toks, pos+1)

	case TokenRParen:
		return NewListNode(), pos + 1, nil

	default:
		n, err := leaf(toks[pos])

		return n, pos + 1, err
	}
}

// parseList parses list elements until the matching closer. An opener
// left unmatched at end of input closes implicitly.
func parseList(toks []Token, pos int) (*Node, int, error) {
	nodes := []*Node{}

	for pos < len(toks) {
		if toks[pos].Kind == TokenRParen {
			return &Node{Kind: NodeList, Nodes: nodes}, pos + 1, nil
		}

		n, next, err := parseForm(toks, pos)
		if err != nil {
			return nil, next, err
		}

		nodes = append(nodes, n)
		pos = next
	}

	return &Node{Kind: NodeList, Nodes: nodes}, pos, nil
}
