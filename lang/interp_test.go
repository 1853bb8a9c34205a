package lang

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/nudhi/log"
)

// answers replies to prompts from a fixed list and reports EOF afterwards.
type answers struct {
	lines   []string
	prompts []string
	err     error
}

func (a *answers) Prompt(_ context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)

	if a.err != nil {
		return "", a.err
	}

	if len(a.lines) == 0 {
		return "", io.EOF
	}

	line := a.lines[0]
	a.lines = a.lines[1:]

	return line, nil
}

// recorder remembers commands instead of running them. The command "false"
// fails.
type recorder struct {
	commands []string
}

func (r *recorder) Run(_ context.Context, command string) error {
	r.commands = append(r.commands, command)
	if command == "false" {
		return errors.New("exit status 1")
	}

	return nil
}

type harness struct {
	in     *Interpreter
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
	ask    *answers
	shell  *recorder
}

func newHarness(t *testing.T, replies ...string) *harness {
	t.Helper()

	h := &harness{
		dir:   t.TempDir(),
		ask:   &answers{lines: replies},
		shell: &recorder{},
	}

	h.in = New(
		WithStdout(&h.stdout),
		WithStderr(&h.stderr),
		WithFiles(OSFiles{Dir: h.dir}),
		WithShell(h.shell),
		WithPrompter(h.ask),
	)

	return h
}

func (h *harness) run(t *testing.T, script string) error {
	t.Helper()

	return h.in.Run(t.Context(), script)
}

func (h *harness) value(name string) Value {
	v, _ := h.in.Store().Get(name)

	return v
}

func TestInterpreter_Script(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "42")

	err := h.run(t, strings.Join([]string{
		`name = Ada`,
		`nudhi_say "hello"`,
		`nudhi_say name`,
		``,
		`x = 2 + 3`,
		`nudhi_say x`,
		`nudhi_ask "Age?" age`,
		`nudhi_write "out.txt" "saved text"`,
		`nudhi_read "out.txt" content`,
		`nudhi_change_case name upper`,
		`nudhi_do "echo hi"`,
		`nudhi_die`,
		`nudhi_say "unreachable"`,
	}, "\n"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got, want := h.stdout.String(), "hello\nAda\n5\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if h.stderr.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", h.stderr.String())
	}

	want := map[string]Value{
		"name":    Str("ADA"),
		"x":       Int(5),
		"age":     Int(42),
		"content": Str("saved text"),
	}

	for name, v := range want {
		if got := h.value(name); !got.Equal(v) {
			t.Errorf("%s = %#v, want %#v", name, got, v)
		}
	}

	if !slices.Equal(h.ask.prompts, []string{"Age?"}) {
		t.Errorf("prompts = %q", h.ask.prompts)
	}

	if !slices.Equal(h.shell.commands, []string{"echo hi"}) {
		t.Errorf("commands = %q", h.shell.commands)
	}

	buf, err := os.ReadFile(filepath.Join(h.dir, "out.txt"))
	if err != nil || string(buf) != "saved text" {
		t.Errorf("out.txt = %q, %v", buf, err)
	}
}

func TestInterpreter_Diagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown", "\n\nbogus line", "line 3: command: nudhi does not know that: bogus line\n"},
		{"suggestion", "say hello", "did you mean nudhi_say?"},
		{"undefined variable", "nudhi_say ghost", `line 1: nudhi_say: variable not found: "ghost"`},
		{"unterminated", `nudhi_say "oops`, "line 1: nudhi_say: unterminated string"},
		{"say usage", "nudhi_say a b", "usage: nudhi_say"},
		{"ask without name", `nudhi_ask "Name?"`, "usage: nudhi_ask"},
		{"ask at end of input", `nudhi_ask "Name?" who`, "line 1: nudhi_ask: read input: EOF"},
		{"read missing file", `nudhi_read "nope.txt" v`, "line 1: nudhi_read: read file"},
		{"read usage", `nudhi_read "a.txt"`, "usage: nudhi_read"},
		{"write undefined", `nudhi_write "a.txt" ghost`, "variable not found"},
		{"write usage", `nudhi_write "a.txt"`, "usage: nudhi_write"},
		{"command failure", `nudhi_do "false"`, "line 1: nudhi_do: command failed: exit status 1"},
		{"do without quote", "nudhi_do ls", "missing opening quote"},
		{"change int", "n = 5\nnudhi_change_case n upper", "line 2: nudhi_change_case: variable is not a string"},
		{"change mode", "s = abc\nnudhi_change_case s title", `invalid case type: "title"`},
		{"change undefined", "nudhi_change_case ghost lower", "variable not found"},
		{"bad name", "two words = 1", "line 1: assignment: invalid variable name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)

			if err := h.run(t, tt.script); err != nil {
				t.Fatalf("Run error: %v", err)
			}

			if got := h.stderr.String(); !strings.Contains(got, tt.want) {
				t.Errorf("stderr = %q, want %q", got, tt.want)
			}

			if strings.Count(h.stderr.String(), "\n") != 1 {
				t.Errorf("want one diagnostic line, got %q", h.stderr.String())
			}
		})
	}
}

func TestInterpreter_ContinuesAfterError(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	if err := h.run(t, "nudhi_say ghost\nnudhi_say \"after\""); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if h.stdout.String() != "after\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestInterpreter_DivideByZero(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.run(t, "a = 1\n\nq = a / 0\nnudhi_say \"after\"")
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("Run error = %v, want %v", err, ErrDivideByZero)
	}

	if h.stdout.Len() != 0 {
		t.Errorf("execution continued: %q", h.stdout.String())
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not *Error", err)
	}

	attrs := map[string]string{}
	for _, a := range e.Attrs() {
		attrs[a.Key] = a.Value.String()
	}

	if attrs["line"] != "3" || attrs["verb"] != constructAssign {
		t.Errorf("attrs = %v", attrs)
	}

	if _, ok := h.in.Store().Get("q"); ok {
		t.Error("q was assigned")
	}
}

func TestInterpreter_Interrupted(t *testing.T) {
	t.Parallel()

	t.Run("prompt", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.ask.err = ErrInterrupted

		err := h.run(t, "nudhi_ask \"Name?\" who\nnudhi_say \"after\"")
		if !errors.Is(err, ErrInterrupted) || h.stdout.Len() != 0 {
			t.Errorf("Run error = %v, stdout = %q", err, h.stdout.String())
		}
	})

	t.Run("context", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := h.in.Run(ctx, `nudhi_say "never"`)
		if !errors.Is(err, ErrInterrupted) || !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v", err)
		}
	})
}

func TestInterpreter_Exec(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	if err := h.in.Exec(t.Context(), "  n = 7 % 4  "); err != nil {
		t.Fatalf("Exec error: %v", err)
	}

	if got := h.value("n"); !got.Equal(Int(3)) {
		t.Errorf("n = %#v", got)
	}

	if err := h.in.Exec(t.Context(), "nudhi_die now"); !errors.Is(err, ErrHalt) {
		t.Errorf("Exec(nudhi_die) = %v, want %v", err, ErrHalt)
	}

	if err := h.in.Exec(t.Context(), "nudhi_say ghost"); !errors.Is(err, ErrVariableNotFound) {
		t.Errorf("Exec(nudhi_say ghost) = %v", err)
	}
}

func TestInterpreter_Ask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reply string
		want  Value
	}{
		{"30", Int(30)},
		{"  -12 ", Int(-12)},
		{"Ada Lovelace", Str("Ada Lovelace")},
		{"", Str("")},
		{"99999999999", Str("99999999999")},
	}

	for _, tt := range tests {
		h := newHarness(t, tt.reply)

		if err := h.run(t, `nudhi_ask "What is it?" answer`); err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if got := h.value("answer"); !got.Equal(tt.want) {
			t.Errorf("reply %q stored %#v, want %#v", tt.reply, got, tt.want)
		}
	}
}

func TestInterpreter_WriteVariable(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.run(t, "n = 6 * 7\nnudhi_write \"n.txt\" n\nnudhi_write \"s.txt\" \"a \"quoted\" word\"")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for name, want := range map[string]string{
		"n.txt": "42",
		"s.txt": `a "quoted" word`,
	} {
		buf, err := os.ReadFile(filepath.Join(h.dir, name))
		if err != nil || string(buf) != want {
			t.Errorf("%s = %q, %v; want %q", name, buf, err, want)
		}
	}
}

func TestInterpreter_ChangeCase(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	err := h.run(t, strings.Join([]string{
		`s = "Grüße aus Köln"`,
		`nudhi_change_case s upper`,
		`nudhi_change_case s upper`,
		`nudhi_change_case s lower`,
	}, "\n"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got := h.value("s"); !got.Equal(Str("grüsse aus köln")) {
		t.Errorf("s = %#v", got)
	}

	h2 := newHarness(t)
	if err := h2.run(t, "w = MiXeD\nnudhi_change_case w upper\nnudhi_change_case w upper"); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got := h2.value("w"); !got.Equal(Str("MIXED")) {
		t.Errorf("w = %#v after upper twice", got)
	}
}

func TestInterpreter_RunFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	script := filepath.Join(h.dir, "hello.nudhi")
	if err := os.WriteFile(script, []byte("nudhi_say \"hi\"\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := h.in.RunFile(t.Context(), script); err != nil {
		t.Fatalf("RunFile error: %v", err)
	}

	if h.stdout.String() != "hi\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}

	err := h.in.RunFile(t.Context(), filepath.Join(h.dir, "missing.nudhi"))
	if !errors.Is(err, ErrReadScript) || !IsFatal(err) {
		t.Errorf("RunFile(missing) = %v", err)
	}
}

func TestInterpreter_Logging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	in := New(
		WithStdout(io.Discard),
		WithStderr(io.Discard),
		WithShell(&recorder{}),
		WithPrompter(&answers{}),
		WithLogger(log.Make(&logs, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))),
	)

	if err := in.Run(t.Context(), "x = 1\nnudhi_say x"); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for _, want := range []string{`"msg":"assign"`, `"verb":"nudhi_say"`, `"line":2`} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("trace output missing %s:\n%s", want, logs.String())
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"say hello":    VerbSay,
		"writ a b":     VerbWrite,
		"xy":           "",
		"zzz":          "",
		"":             "",
	}

	for line, want := range tests {
		if got := suggest(line); got != want {
			t.Errorf("suggest(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestVerbs(t *testing.T) {
	t.Parallel()

	want := []string{VerbAsk, VerbChangeCase, VerbDo, VerbDie, VerbRead, VerbSay, VerbWrite}
	if got := Verbs(); !slices.Equal(got, want) {
		t.Errorf("Verbs() = %v", got)
	}
}
