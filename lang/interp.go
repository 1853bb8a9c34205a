package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/nudhi/log"
)

// Reserved verbs.
const (
	VerbAsk        = "nudhi_ask"
	VerbChangeCase = "nudhi_change_case"
	VerbDo         = "nudhi_do"
	VerbDie        = "nudhi_die"
	VerbRead       = "nudhi_read"
	VerbSay        = "nudhi_say"
	VerbWrite      = "nudhi_write"
)

// constructAssign and constructUnknown name the failing construct in
// diagnostics for lines that do not start with a verb.
const (
	constructAssign  = "assignment"
	constructUnknown = "command"
)

// assignOperators route a verb-less line to the assignment handler when any
// of them appears in it.
const assignOperators = "=+-*/"

// minSuggestLen is the shortest unknown word that is matched against the
// verb table.
const minSuggestLen = 3

type handler func(in *Interpreter, ctx context.Context, line string) error

// verbs is checked in order; the first prefix match wins.
var verbs = []struct {
	name string
	run  handler
}{
	{VerbAsk, (*Interpreter).ask},
	{VerbChangeCase, (*Interpreter).changeCase},
	{VerbDo, (*Interpreter).do},
	{VerbDie, (*Interpreter).die},
	{VerbRead, (*Interpreter).read},
	{VerbSay, (*Interpreter).say},
	{VerbWrite, (*Interpreter).write},
}

// Verbs returns the reserved verbs in dispatch order.
func Verbs() []string {
	names := make([]string, len(verbs))
	for i, v := range verbs {
		names[i] = v.name
	}

	return names
}

type options struct {
	stdout   io.Writer
	stderr   io.Writer
	files    Files
	shell    Shell
	prompter Prompter
	store    *Store
	logger   log.Logger
}

// Option configures an [Interpreter].
type Option func(options) options

// WithStdout sets the stream for nudhi_say output and line prompts.
func WithStdout(w io.Writer) Option {
	return func(o options) options {
		o.stdout = w

		return o
	}
}

// WithStderr sets the stream for diagnostics.
func WithStderr(w io.Writer) Option {
	return func(o options) options {
		o.stderr = w

		return o
	}
}

// WithFiles sets the filesystem used by nudhi_read and nudhi_write.
func WithFiles(f Files) Option {
	return func(o options) options {
		o.files = f

		return o
	}
}

// WithShell sets the command runner used by nudhi_do.
func WithShell(s Shell) Option {
	return func(o options) options {
		o.shell = s

		return o
	}
}

// WithPrompter sets the input source used by nudhi_ask.
func WithPrompter(p Prompter) Option {
	return func(o options) options {
		o.prompter = p

		return o
	}
}

// WithStore makes the interpreter operate on an existing store.
func WithStore(s *Store) Option {
	return func(o options) options {
		o.store = s

		return o
	}
}

// WithLogger sets the logger used for tracing. The zero [log.Logger]
// discards everything.
func WithLogger(l log.Logger) Option {
	return func(o options) options {
		o.logger = l

		return o
	}
}

// Interpreter executes nudhi scripts one line at a time against a single
// variable store.
type Interpreter struct {
	options

	line int // 1-based number of the line being executed
}

// New returns an Interpreter with an empty store. Unset collaborators default
// to the process's standard streams, the host filesystem, and the platform
// shell.
func New(opts ...Option) *Interpreter {
	var o options

	for _, opt := range opts {
		o = opt(o)
	}

	if o.stdout == nil {
		o.stdout = os.Stdout
	}

	if o.stderr == nil {
		o.stderr = os.Stderr
	}

	if o.files == nil {
		o.files = OSFiles{}
	}

	if o.shell == nil {
		o.shell = SystemShell{
			IO: IOBindings{Stdin: os.Stdin, Stdout: o.stdout, Stderr: o.stderr},
		}
	}

	if o.prompter == nil {
		o.prompter = NewLinePrompter(os.Stdin, o.stdout)
	}

	if o.store == nil {
		o.store = NewStore()
	}

	return &Interpreter{options: o}
}

// Store returns the interpreter's variable store.
func (in *Interpreter) Store() *Store { return in.store }

// RunFile reads the script at path and runs it. A script that cannot be read
// returns [ErrReadScript] before any line executes.
func (in *Interpreter) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return ErrReadScript.Wrap(err).With(slog.String("script", path))
	}

	in.logger.DebugContext(ctx, "script loaded",
		slog.String("script", path),
		slog.Int("bytes", len(src)),
	)

	return in.Run(ctx, string(src))
}

// Run executes src line by line. Non-fatal errors are reported on the
// diagnostic stream and execution continues with the next line.
//
// Run returns nil when every line has executed or nudhi_die was reached,
// and the first fatal error otherwise.
func (in *Interpreter) Run(ctx context.Context, src string) error {
	for i, raw := range strings.Split(src, "\n") {
		if err := ctx.Err(); err != nil {
			return ErrInterrupted.Wrap(err).With(slog.Int("line", i+1))
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		in.line = i + 1

		construct, err := in.exec(ctx, line)

		switch {
		case err == nil:

		case errors.Is(err, ErrHalt):
			in.logger.DebugContext(ctx, "script halted", slog.Int("line", in.line))

			return nil

		case IsFatal(err):
			return WrapError(err).With(
				slog.Int("line", in.line),
				slog.String("verb", construct),
			)

		default:
			in.report(ctx, construct, err)
		}
	}

	return nil
}

// Exec executes a single line. Unlike [Interpreter.Run], every error is
// returned to the caller, including [ErrHalt] from nudhi_die.
func (in *Interpreter) Exec(ctx context.Context, line string) error {
	_, err := in.exec(ctx, strings.TrimSpace(line))

	return err
}

// exec dispatches a trimmed, non-empty line and returns the name of the
// construct that handled it.
func (in *Interpreter) exec(ctx context.Context, line string) (string, error) {
	for _, v := range verbs {
		if strings.HasPrefix(line, v.name) {
			in.logger.TraceContext(ctx, "dispatch",
				slog.Int("line", in.line),
				slog.String("verb", v.name),
			)

			return v.name, v.run(in, ctx, line)
		}
	}

	if strings.ContainsAny(line, assignOperators) {
		name, v, err := Assign(in.store, line)
		if err == nil {
			in.logger.TraceContext(ctx, "assign",
				slog.Int("line", in.line),
				slog.String("name", name),
				slog.String("kind", v.Kind().String()),
			)
		}

		return constructAssign, err
	}

	err := ErrUnrecognized.Wrapf("%s", line)
	if s := suggest(line); s != "" {
		err = ErrUnrecognized.Wrapf("%s (did you mean %s?)", line, s)
	}

	return constructUnknown, err
}

// report writes a one-line diagnostic for a non-fatal error.
func (in *Interpreter) report(ctx context.Context, construct string, err error) {
	in.logger.DebugContext(ctx, "diagnostic",
		slog.Int("line", in.line),
		slog.String("verb", construct),
		slog.Any("error", err),
	)

	_, _ = fmt.Fprintf(in.stderr, "line %d: %s: %v\n", in.line, construct, err)
}

// suggest returns the verb closest to the first word of line, or "" when
// nothing matches.
func suggest(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields[0]) < minSuggestLen {
		return ""
	}

	matches := fuzzy.Find(fields[0], Verbs())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
