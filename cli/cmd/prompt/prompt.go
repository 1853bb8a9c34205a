// Package prompt reads nudhi_ask answers from an interactive terminal.
package prompt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/nudhi/lang"
	"github.com/ardnew/nudhi/log"
)

// Terminal is a [lang.Prompter] that shows each prompt in a line editor with
// a recallable history of previous answers.
type Terminal struct {
	in      io.Reader
	out     io.Writer
	history *History
	logger  log.Logger
}

// Option configures a [Terminal].
type Option func(*Terminal)

// WithHistory enables answer recall from h and records new answers in it.
func WithHistory(h *History) Option {
	return func(t *Terminal) { t.history = h }
}

// WithLogger sets the logger used for tracing.
func WithLogger(l log.Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// NewTerminal returns a Terminal reading keys from in and drawing on out.
// Nil streams default to the process's standard input and output.
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	t := &Terminal{in: in, out: out}

	for _, opt := range opts {
		opt(t)
	}

	if t.history == nil {
		t.history = NewHistory("")
	}

	return t
}

// Prompt implements [lang.Prompter]. Ctrl+C and Esc return
// [lang.ErrInterrupted]; Ctrl+D on an empty line answers with "".
func (t *Terminal) Prompt(ctx context.Context, text string) (string, error) {
	p := tea.NewProgram(newModel(text, t.history),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return "", lang.ErrInterrupted.Wrap(err)
		}

		return "", err
	}

	m, ok := final.(model)
	if !ok {
		return "", lang.ErrPrompt.Wrapf("unexpected model %T", final)
	}

	return t.finish(ctx, m)
}

func (t *Terminal) finish(ctx context.Context, m model) (string, error) {
	if m.result == interrupted {
		return "", lang.ErrInterrupted
	}

	answer := m.answer()

	if err := t.history.Add(answer); err != nil {
		t.logger.WarnContext(ctx, "answer history not saved",
			slog.String("path", t.history.path),
			slog.Any("error", err),
		)
	}

	return answer, nil
}
