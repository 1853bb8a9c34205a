package prompt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/nudhi/lang"
)

func TestTerminal_Prompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	term := NewTerminal(strings.NewReader("Ada\r"), &out)

	got, err := term.Prompt(t.Context(), "name?")
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}

	if got != "Ada" {
		t.Errorf("Prompt() = %q, want Ada", got)
	}

	if term.history.Len() != 1 {
		t.Errorf("answer not recorded in history")
	}
}

func TestTerminal_Finish(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), BaseHistory)
	term := NewTerminal(nil, nil, WithHistory(NewHistory(path)))

	m := newModel("", term.history)
	m.result = interrupted

	if _, err := term.finish(t.Context(), m); !errors.Is(err, lang.ErrInterrupted) {
		t.Errorf("interrupted finish error = %v, want ErrInterrupted", err)
	}

	m.result = closed

	got, err := term.finish(t.Context(), m)
	if err != nil || got != "" {
		t.Errorf("closed finish = %q, %v; want empty answer", got, err)
	}

	m, _ = press(t, newModel("", term.history), runes("42"))
	m.result = answered

	got, err = term.finish(t.Context(), m)
	if err != nil || got != "42" {
		t.Errorf("answered finish = %q, %v", got, err)
	}

	if term.history.Len() != 1 {
		t.Errorf("history Len() = %d, want 1", term.history.Len())
	}
}
