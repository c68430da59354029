package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/bitland/interrotron/lang"
)

// contextKey stores a [kong.Context] value in a [context.Context].
type contextKey struct{}

// WithContext returns a new context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok {
		return nil
	}

	return ktx
}

// stdout returns the parser's output writer when available, so command
// output respects redirection configured on the kong context.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named file, or stdin for "-". The caller owns the
// returned file unless it is stdin.
func openSource(path string) (*os.File, func(), error) {
	if path == stdinSource {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return file, func() { file.Close() }, nil
}

// parseBindings converts repeated name=value flags to a binding frame.
// Values parse as integer, float, boolean, or nil when they look like
// one, and fall back to text.
func parseBindings(pairs []string) (lang.Frame, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	frame := make(lang.Frame, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, ErrBindValue.With(slog.String("binding", pair))
		}

		frame[name] = parseBindValue(value)
	}

	return frame, nil
}

// parseBindValue infers a runtime value from flag text.
func parseBindValue(s string) lang.Value {
	switch s {
	case "nil", "null":
		return lang.Nil()
	case "true":
		return lang.Bool(true)
	case "false":
		return lang.Bool(false)
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return lang.Int(i)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return lang.Float(f)
	}

	return lang.Text(s)
}

// loadBindFile reads a YAML mapping of names to values and converts it to
// a binding frame.
func loadBindFile(path string) (lang.Frame, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrBindFile.Wrap(err).
			With(slog.String("path", path))
	}

	var raw map[string]any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrBindFile.Wrap(err).
			With(slog.String("path", path))
	}

	frame := make(lang.Frame, len(raw))

	for name, value := range raw {
		v, err := lang.From(normalizeYAML(value))
		if err != nil {
			return nil, ErrBindFile.Wrap(err).
				With(slog.String("name", name))
		}

		frame[name] = v
	}

	return frame, nil
}

// normalizeYAML maps YAML decoder types onto the types accepted by
// [lang.From]. Nested mappings have no runtime value equivalent and pass
// through to fail there.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}

		return out
	default:
		return v
	}
}

// mergeFrames overlays later frames on earlier ones.
func mergeFrames(frames ...lang.Frame) lang.Frame {
	merged := lang.Frame{}

	for _, f := range frames {
		for name, value := range f {
			merged[name] = value
		}
	}

	return merged
}
