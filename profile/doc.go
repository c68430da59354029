// Package profile provides optional runtime profiling for the interrotron
// command.
//
// It integrates [github.com/pkg/profile] behind conditional compilation.
// Profiling must be enabled at build time with the "pprof" build tag; when
// built without it (the default), all operations are no-ops with zero
// runtime overhead.
//
// Supported modes when built with the pprof tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve the
// list programmatically. Profile files are written to the configured output
// directory with names matching the mode (e.g., cpu.pprof) and analyzed
// with:
//
//	go tool pprof ./interrotron /path/to/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
