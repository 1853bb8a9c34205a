package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/nudhi/cli/cmd/prompt"
	"github.com/ardnew/nudhi/lang"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.nudhi")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestScript_Run(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	ctx := WithEnv(t.Context(), Env{
		Stdin:  strings.NewReader("Ada\n"),
		Stdout: &stdout,
		Stderr: &stderr,
	})

	s := Script{
		File:   writeScript(t, "nudhi_ask \"Name?\" who\nnudhi_say who\nn = 6 * 7\nbogus"),
		Dump:   "json",
		Prompt: PromptAuto,
	}

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := "Name?\nAda\n{\"n\":42,\"who\":\"Ada\"}\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if !strings.HasPrefix(stderr.String(), "line 4: command:") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestScript_RunFatalStillDumps(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	ctx := WithEnv(t.Context(), Env{Stdout: &stdout, Stderr: io.Discard})

	s := Script{
		File:       writeScript(t, "a = 1\nb = a / 0\nc = 3"),
		Dump:       "yaml",
		DumpIndent: 2,
	}

	if err := s.Run(ctx); !errors.Is(err, lang.ErrDivideByZero) {
		t.Fatalf("Run error = %v", err)
	}

	if got := stdout.String(); got != "a: 1\n" {
		t.Errorf("dump = %q", got)
	}
}

func TestScript_RunErrors(t *testing.T) {
	t.Parallel()

	ctx := WithEnv(t.Context(), Env{Stdout: io.Discard, Stderr: io.Discard})

	missing := Script{File: filepath.Join(t.TempDir(), "missing.nudhi"), Dump: "json"}
	if err := missing.Run(ctx); !errors.Is(err, lang.ErrReadScript) {
		t.Errorf("missing script: %v", err)
	}

	format := Script{File: writeScript(t, ""), Dump: "xml"}
	if err := format.Run(ctx); !errors.Is(err, lang.ErrInvalidFormat) {
		t.Errorf("invalid dump format: %v", err)
	}
}

func TestComposePath(t *testing.T) {
	t.Parallel()

	first, second := t.TempDir(), t.TempDir()
	missing := filepath.Join(first, "missing")
	sep := string(os.PathListSeparator)

	got := composePath(strings.Join([]string{second, "/usr/bin"}, sep), first, missing)
	items := strings.Split(got, sep)

	if len(items) == 0 || items[0] != first {
		t.Errorf("composePath() = %q, want %q first", got, first)
	}

	if strings.Contains(got, missing) {
		t.Errorf("composePath() kept a missing directory: %q", got)
	}
}

func TestIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f")

	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]bool{
		dir:                        true,
		file:                       false,
		filepath.Join(dir, "none"): false,
	} {
		if got := isDir(path); got != want {
			t.Errorf("isDir(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestScript_Prompter(t *testing.T) {
	t.Parallel()

	env := Env{Stdin: strings.NewReader(""), Stdout: io.Discard}

	tests := []struct {
		mode string
		tty  bool
	}{
		{PromptAuto, false},
		{PromptLine, false},
		{PromptTTY, true},
	}

	for _, tt := range tests {
		s := Script{Prompt: tt.mode}

		_, isTTY := s.prompter(t.Context(), env).(*prompt.Terminal)
		if isTTY != tt.tty {
			t.Errorf("prompter(%s) terminal = %v, want %v", tt.mode, isTTY, tt.tty)
		}
	}
}

func TestLoadHistory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")

	h := loadHistory(t.Context(), Env{CacheDir: dir})
	if err := h.Add("Ada"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, prompt.BaseHistory)); err != nil {
		t.Errorf("history file not created: %v", err)
	}

	if h := loadHistory(t.Context(), Env{}); h.Len() != 0 {
		t.Errorf("in-memory history has %d entries", h.Len())
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := ErrDump.Wrap(cause)

	if !errors.Is(err, ErrDump) || !errors.Is(err, cause) {
		t.Error("wrapped error lost its sentinel or cause")
	}

	if errors.Is(err, ErrCacheDir) {
		t.Error("ErrDump matches ErrCacheDir")
	}

	if got := err.Error(); got != "dump variables: disk full" {
		t.Errorf("Error() = %q", got)
	}

	with := err.With()
	if len(with.LogValue().Group()) != 2 {
		t.Errorf("LogValue() = %v", with.LogValue())
	}
}

func TestEnvFrom_Defaults(t *testing.T) {
	t.Parallel()

	env := envFrom(t.Context())
	if env.Stdin != os.Stdin || env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("unset streams are not the process streams")
	}
}
