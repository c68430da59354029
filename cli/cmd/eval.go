package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/bitland/interrotron/lang"
)

// Eval compiles a rule and evaluates it once against the given bindings.
type Eval struct {
	Rule string `arg:"" help:"Rule text to evaluate" name:"rule" optional:""`

	File     string   `       default:"" help:"Rule source file or '-' for stdin"    short:"f"`
	Bind     []string `       help:"Bind a variable as name=value (repeatable)"      name:"bind"      short:"b"`
	BindFile string   `       help:"YAML file of variable bindings"                  name:"bind-file"`
	MaxOps   int      `       default:"10000" help:"Evaluation operations ceiling (0 disables)"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	fileVars, err := loadBindFile(e.BindFile)
	if err != nil {
		return err
	}

	flagVars, err := parseBindings(e.Bind)
	if err != nil {
		return err
	}

	eng := lang.New(lang.WithMaxOps(e.MaxOps))

	rule, err := e.compile(ctx, eng)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	// Flag bindings shadow file bindings.
	result, err := rule.Call(ctx, mergeFrames(fileVars, flagVars))
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("rule", rule.Source()),
			)
	}

	fmt.Fprintln(stdout(ctx), result.String())

	return nil
}

// compile resolves the rule source: the positional argument wins, then
// --file, then stdin when either names it.
func (e *Eval) compile(ctx context.Context, eng *lang.Engine) (*lang.Rule, error) {
	if e.Rule != "" && e.Rule != stdinSource {
		return eng.Compile(ctx, e.Rule)
	}

	path := e.File
	if path == "" {
		if e.Rule != stdinSource {
			return nil, ErrNoRule
		}

		path = stdinSource
	}

	file, done, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer done()

	return eng.CompileReader(ctx, bufio.NewReader(file))
}
