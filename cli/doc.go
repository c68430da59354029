// Package cli contains the command line interface for interrotron.
//
// # Usage
//
//	interrotron [flags] <rule> [--bind name=value ...]
//	interrotron fmt [source]
//	interrotron repl
//
// The default command evaluates a rule given as an argument, from a file,
// or from stdin:
//
//	interrotron '(if (> total 100) "flag" "pass")' -b total=250
//	interrotron -f rule.tron --bind-file vars.yaml
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
