package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bitland/interrotron/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so the format takes effect early enough to
// shape error messages emitted during parsing.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
	)
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before kong begins parsing. The TextUnmarshaler types on
// logLevel and logFormat handle those flags during normal parsing, but
// boolean flags like --log-caller do not go through that interface.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		consumeValue := func() string {
			if assigned {
				return value
			}

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++

				return args[i]
			}

			return ""
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(consumeValue()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(consumeValue()))

		case "--log-caller", "--no-log-caller":
			enable := name == "--log-caller"

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v == enable
			}

			f.Caller = enable

			log.Config(log.WithCaller(enable))
		}
	}
}
