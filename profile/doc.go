// Package profile starts optional runtime profiling for nudhi.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only when the
// binary is built with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a Stopper
// that does nothing.
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Dir: "/tmp/nudhi"}
//	defer p.Start().Stop()
//
// Profile data is written to Dir with a file name matching the mode (for
// example cpu.pprof or mem.pprof). The nudhi command exposes the same
// settings as --pprof-mode and --pprof-dir; the default directory is
// $XDG_CACHE_HOME/nudhi/pprof.
//
// # Analysis
//
//	go tool pprof -http=: /tmp/nudhi/cpu.pprof
//
// Execution traces (mode "trace") are opened with go tool trace instead.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
