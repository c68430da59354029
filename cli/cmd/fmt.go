package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bitland/interrotron/lang"
)

// Fmt reads rule source, parses it, and prints the canonical form.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Rule source file or '-' for stdin" name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	file, done, err := openSource(f.Source)
	if err != nil {
		return err
	}
	defer done()

	src, err := io.ReadAll(file)
	if err != nil {
		return lang.ErrReadInput.Wrap(err).
			With(slog.String("source", f.Source))
	}

	formatted, err := lang.FormatSource(string(src))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "fmt"))
	}

	fmt.Fprintln(stdout(ctx), formatted)

	return nil
}
