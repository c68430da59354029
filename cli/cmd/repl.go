package cmd

import (
	"context"

	"github.com/bitland/interrotron/cli/cmd/repl"
	"github.com/bitland/interrotron/lang"
	"github.com/bitland/interrotron/log"
)

// Repl starts an interactive rule console.
type Repl struct {
	Bind     []string `help:"Bind a variable as name=value (repeatable)"       name:"bind"      short:"b"`
	BindFile string   `help:"YAML file of variable bindings"                   name:"bind-file"`
	MaxOps   int      `default:"10000" help:"Evaluation operations ceiling (0 disables)"`

	Cache string `default:"${cache}" help:"Cache directory for history" hidden:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	fileVars, err := loadBindFile(r.BindFile)
	if err != nil {
		return err
	}

	flagVars, err := parseBindings(r.Bind)
	if err != nil {
		return err
	}

	eng := lang.New(
		lang.WithVars(mergeFrames(fileVars, flagVars)),
		lang.WithMaxOps(r.MaxOps),
		lang.WithLogger(log.Default()),
	)

	return repl.Run(ctx, eng, r.Cache, log.Default())
}
