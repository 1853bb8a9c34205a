// Package cli contains the command line interface for nudhi.
//
// # Usage
//
//	nudhi [flags] <script>
//
// Exactly one script is run. The exit status is 0 when the script completes
// or reaches nudhi_die, 1 when it cannot be read or stops on a fatal error,
// 2 for invalid arguments, and 130 when interrupted.
//
// # Script Options
//
//   - --dump: print every variable as json or yaml after the script ends
//   - --dump-indent: indent width of the dump; 0 prints it on one line
//   - --path: directory prepended to PATH for nudhi_do (repeatable)
//   - --prompt: auto, tty or line; auto uses the terminal prompter when
//     standard input is a terminal
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn (default) or error
//   - --log-format: text (default) or json
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize text output
//
// Logs are written to standard error, separate from script output.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: profile output directory (default
//     $XDG_CACHE_HOME/nudhi/pprof)
//
// # Configuration
//
// Flags may be preset in $XDG_CONFIG_HOME/nudhi/config.yaml, a flat YAML
// mapping of flag names to values, or in config.yaml.json next to it.
// Flags given on the command line take precedence:
//
//	log_level: debug
//	dump: yaml
package cli
