package lang

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Files reads and writes whole text files for nudhi_read and nudhi_write.
type Files interface {
	ReadFile(name string) (string, error)
	WriteFile(name, content string) error
}

// Shell runs a command line for nudhi_do and waits for it to exit.
type Shell interface {
	Run(ctx context.Context, command string) error
}

// Prompter shows a prompt and reads one line of input for nudhi_ask.
type Prompter interface {
	Prompt(ctx context.Context, prompt string) (string, error)
}

// defaultFileMode is the permission mode of files created by nudhi_write.
const defaultFileMode os.FileMode = 0o644

// OSFiles accesses the host filesystem. Relative names are resolved against
// Dir when it is set, and against the working directory otherwise.
type OSFiles struct {
	Dir string
}

func (f OSFiles) path(name string) string {
	if f.Dir == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(f.Dir, name)
}

// ReadFile returns the entire content of the named file.
func (f OSFiles) ReadFile(name string) (string, error) {
	buf, err := os.ReadFile(f.path(name))
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// WriteFile replaces the content of the named file, creating it if needed.
func (f OSFiles) WriteFile(name, content string) error {
	return os.WriteFile(f.path(name), []byte(content), defaultFileMode)
}

// IOBindings are the standard streams inherited by child processes.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// SystemShell runs commands with the platform shell: "sh -c" on Unix-like
// systems and "cmd /C" on Windows.
type SystemShell struct {
	IO  IOBindings
	Env []string // nil inherits the interpreter's environment
	Dir string
}

// Run executes command and waits for it to exit. A non-zero exit status is
// reported as an error carrying the status.
func (s SystemShell) Run(ctx context.Context, command string) error {
	name, flag := "sh", "-c"
	if runtime.GOOS == "windows" {
		name, flag = "cmd", "/C"
	}

	cmd := exec.CommandContext(ctx, name, flag, command)
	cmd.Stdin = s.IO.Stdin
	cmd.Stdout = s.IO.Stdout
	cmd.Stderr = s.IO.Stderr
	cmd.Env = s.Env
	cmd.Dir = s.Dir

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("exit status %d", exitErr.ExitCode())
	}

	return err
}

// LinePrompter writes the prompt on its own line and reads the reply from a
// buffered reader shared by every prompt.
type LinePrompter struct {
	w       io.Writer
	r       *bufio.Reader
	mu      sync.Mutex
	pending chan lineResult // read still in flight after a cancelled prompt
}

type lineResult struct {
	line string
	err  error
}

// NewLinePrompter returns a LinePrompter reading from r and writing to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{w: w, r: bufio.NewReader(r)}
}

// Prompt prints prompt and returns the next input line without its line
// terminator. Reaching end of input yields whatever was read, possibly the
// empty string.
//
// Cancelling ctx abandons the wait but not the read; a line that arrives
// afterwards answers the next prompt.
func (p *LinePrompter) Prompt(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintln(p.w, prompt); err != nil {
		return "", err
	}

	if p.pending == nil {
		p.pending = make(chan lineResult, 1)

		go func(out chan<- lineResult) {
			line, err := p.r.ReadString('\n')
			out <- lineResult{line, err}
		}(p.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case res := <-p.pending:
		p.pending = nil

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", res.err
		}

		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
