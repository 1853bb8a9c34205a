package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ardnew/nudhi/log"
)

// Env is the process environment a command runs in.
type Env struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	CacheDir string // answer history lives here; empty disables it
	Logger   log.Logger
}

type envKey struct{}

// WithEnv returns a new context.Context carrying env.
func WithEnv(ctx context.Context, env Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// envFrom returns the Env stored by WithEnv with unset streams defaulted to
// the process's standard streams.
func envFrom(ctx context.Context) Env {
	env, _ := ctx.Value(envKey{}).(Env)

	if env.Stdin == nil {
		env.Stdin = os.Stdin
	}

	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}

	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}

	return env
}
