// Package cmd implements the interrotron subcommands: eval, fmt, and
// repl.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
var CacheIdentifier = "cache"
