package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bitland/interrotron/cli/cmd"
	"github.com/bitland/interrotron/pkg"
)

// CLI is the top-level command-line interface for interrotron.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Fmt  cmd.Fmt  `cmd:"" help:"Format rule source"`
	Repl cmd.Repl `cmd:"" help:"Interactive rule console"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate a rule"`
}

// Run executes the interrotron CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.CacheIdentifier: cacheDir(),
		"version":           strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so early configuration applies regardless
	// of flag position. TextUnmarshaler on logFormat/logLevel handles
	// those flags during normal parsing, but this early scan also catches
	// boolean flags like --log-caller.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
