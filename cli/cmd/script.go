package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/nudhi/cli/cmd/prompt"
	"github.com/ardnew/nudhi/lang"
	"github.com/ardnew/nudhi/log"
)

// Prompt modes accepted by --prompt.
const (
	PromptAuto = "auto"
	PromptTTY  = "tty"
	PromptLine = "line"
)

// defaultDirMode is the permission mode of the created cache directory.
const defaultDirMode os.FileMode = 0o700

// Script runs one nudhi script.
type Script struct {
	File       string   `arg:""         help:"Script file to run."                                                 name:"script" type:"path"`
	Dump       string   `default:"none" enum:"${dumpEnum}" help:"Print all variables when the script ends."    placeholder:"${enum}"`
	DumpIndent int      `default:"2"                       help:"Indent width of --dump output; 0 is compact."`
	Path       []string `help:"Directory prepended to PATH for nudhi_do (repeatable)."                          placeholder:"DIR"     type:"path"`
	Prompt     string   `default:"auto" enum:"auto,tty,line" help:"How nudhi_ask reads answers."                 placeholder:"${enum}"`
}

// Run executes the script, then writes the variable dump if requested.
func (s *Script) Run(ctx context.Context) error {
	env := envFrom(ctx)
	logger := env.Logger

	format, err := lang.ParseDumpFormat(s.Dump)
	if err != nil {
		return err
	}

	in := lang.New(
		lang.WithStdout(env.Stdout),
		lang.WithStderr(env.Stderr),
		lang.WithShell(lang.SystemShell{
			IO:  lang.IOBindings{Stdin: env.Stdin, Stdout: env.Stdout, Stderr: env.Stderr},
			Env: s.shellEnv(ctx, logger),
		}),
		lang.WithPrompter(s.prompter(ctx, env)),
		lang.WithLogger(logger),
	)

	runErr := in.RunFile(ctx, s.File)
	if errors.Is(runErr, lang.ErrReadScript) {
		return runErr
	}

	if err := in.Store().Format(ctx, env.Stdout, format, s.DumpIndent); err != nil {
		return errors.Join(runErr, ErrDump.Wrap(err).With(slog.String("format", s.Dump)))
	}

	return runErr
}

// shellEnv returns the environment for nudhi_do commands, or nil to inherit
// the process environment unchanged.
func (s *Script) shellEnv(ctx context.Context, logger log.Logger) []string {
	if len(s.Path) == 0 {
		return nil
	}

	path := composePath(os.Getenv("PATH"), s.Path...)

	logger.DebugContext(ctx, "command search path",
		slog.String("PATH", path),
	)

	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "PATH=") {
			env = append(env, kv)
		}
	}

	return append(env, "PATH="+path)
}

// composePath prepends the existing directories among dirs to the
// PATH-like list current.
func composePath(current string, dirs ...string) string {
	return mung.Make(
		mung.WithSubjectItems(current),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// prompter selects the nudhi_ask input source for the --prompt mode.
func (s *Script) prompter(ctx context.Context, env Env) lang.Prompter {
	mode := s.Prompt
	if mode == PromptAuto || mode == "" {
		mode = PromptLine
		if isTerminal(env.Stdin) {
			mode = PromptTTY
		}
	}

	env.Logger.DebugContext(ctx, "prompter selected", slog.String("mode", mode))

	if mode != PromptTTY {
		return lang.NewLinePrompter(env.Stdin, env.Stdout)
	}

	return prompt.NewTerminal(env.Stdin, env.Stdout,
		prompt.WithHistory(loadHistory(ctx, env)),
		prompt.WithLogger(env.Logger),
	)
}

// loadHistory opens the answer history in the cache directory. Any failure
// degrades to an in-memory history.
func loadHistory(ctx context.Context, env Env) *prompt.History {
	if env.CacheDir == "" {
		return prompt.NewHistory("")
	}

	if err := os.MkdirAll(env.CacheDir, defaultDirMode); err != nil {
		env.Logger.WarnContext(ctx, "answer history disabled",
			slog.Any("error", ErrCacheDir.Wrap(err).With(slog.String("dir", env.CacheDir))),
		)

		return prompt.NewHistory("")
	}

	h := prompt.NewHistory(filepath.Join(env.CacheDir, prompt.BaseHistory))
	if err := h.Load(); err != nil {
		env.Logger.WarnContext(ctx, "answer history not loaded", slog.Any("error", err))
	}

	return h
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
