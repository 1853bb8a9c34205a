// Package cmd implements the nudhi command: it wires a [lang.Interpreter] to
// the host (files, shell, terminal) and runs one script.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
