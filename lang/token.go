package lang

import (
	"log/slog"
	"regexp"
	"time"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenNone is the zero kind, held by leaves constructed
	// programmatically rather than scanned from source.
	TokenNone TokenKind = iota

	// TokenLParen is an opening parenthesis.
	TokenLParen

	// TokenRParen is a closing parenthesis.
	TokenRParen

	// TokenKeyword is the reserved word "fn". It is scanned ahead of
	// identifiers but carries no evaluation semantics.
	TokenKeyword

	// TokenSymbol is an identifier or operator symbol.
	TokenSymbol

	// TokenNumber is an integer or decimal literal.
	TokenNumber

	// TokenTime is a #dt{...} date-time literal; the token text is the
	// interior between the braces.
	TokenTime

	// TokenSpace is a whitespace run. It is consumed but never emitted.
	TokenSpace

	// TokenString is a quoted string; the token text excludes the
	// delimiters, with backslash escapes preserved verbatim.
	TokenString
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenKeyword:
		return "Keyword"
	case TokenSymbol:
		return "Symbol"
	case TokenNumber:
		return "Number"
	case TokenTime:
		return "Time"
	case TokenSpace:
		return "Space"
	case TokenString:
		return "String"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit of rule source text.
// Tokens are immutable once produced.
type Token struct {
	Kind TokenKind
	Text string
}

// tokenRule pairs a token kind with its anchored pattern. The capture index
// selects a subgroup as the token text (0 keeps the whole match); discard
// consumes the match without emitting a token.
type tokenRule struct {
	kind    TokenKind
	pattern *regexp.Regexp
	capture int
	discard bool
}

// tokenRules is tried in order at each position; the first pattern matching
// at the position wins. The ordering is load-bearing: several patterns
// overlap and priority, not maximal munch, disambiguates them.
//
//nolint:gochecknoglobals
var tokenRules = []tokenRule{
	{TokenLParen, regexp.MustCompile(`^\(`), 0, false},
	{TokenRParen, regexp.MustCompile(`^\)`), 0, false},
	{TokenKeyword, regexp.MustCompile(`^fn`), 0, false},
	{TokenSymbol, regexp.MustCompile(`^[A-Za-z_><+!=*/%-]+`), 0, false},
	{TokenNumber, regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?`), 0, false},
	{TokenTime, regexp.MustCompile(`^#dt\{([^}]+)\}`), 1, false},
	{TokenSpace, regexp.MustCompile(`^\s+`), 0, true},
	{TokenString, regexp.MustCompile(`^"((?:\\.|[^"])*)"`), 1, false},
	{TokenString, regexp.MustCompile(`^'((?:\\.|[^'])*)'`), 1, false},
}

// Tokenize scans rule source text into an ordered token sequence.
// Whitespace is consumed but never emitted. If no rule matches at some
// position, the whole tokenization fails with [ErrInvalidToken] carrying
// the unrecognized remaining text.
func Tokenize(source string) ([]Token, error) {
	toks := make([]Token, 0, len(source)/2)

	pos := 0
	for pos < len(source) {
		rest := source[pos:]
		matched := false

		for _, rule := range tokenRules {
			loc := rule.pattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				continue
			}

			if !rule.discard {
				lo, hi := loc[2*rule.capture], loc[2*rule.capture+1]
				toks = append(toks, Token{
					Kind: rule.kind,
					Text: rest[lo:hi],
				})
			}

			pos += loc[1]
			matched = true

			break
		}

		if !matched {
			return nil, ErrInvalidToken.With(
				slog.Int("offset", pos),
				slog.String("remaining", rest),
			)
		}
	}

	return toks, nil
}

// timeLayouts are tried in order when casting a #dt{...} literal.
//
//nolint:gochecknoglobals
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses the interior text of a date-time literal as a calendar
// date-time.
func parseTime(text string) (time.Time, error) {
	var firstErr error

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, ErrInvalidDate.Wrap(firstErr).
		With(slog.String("literal", text))
}
