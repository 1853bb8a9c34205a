package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Usage lines reported with syntax errors.
const (
	usageSay        = `usage: nudhi_say "text" | nudhi_say name`
	usageAsk        = `usage: nudhi_ask "prompt" name`
	usageRead       = `usage: nudhi_read "file" name`
	usageWrite      = `usage: nudhi_write "file" "text" | nudhi_write "file" name`
	usageChangeCase = `usage: nudhi_change_case name upper|lower`
)

// say prints a quoted literal or the value of a variable.
func (in *Interpreter) say(_ context.Context, line string) error {
	if strings.ContainsRune(line, '"') {
		text, _, err := quoted(line)
		if err != nil {
			return err
		}

		return in.println(text)
	}

	toks := tokenize(line)
	if len(toks) != 2 {
		return ErrSyntax.Wrapf(usageSay)
	}

	v, ok := in.store.Get(toks[1].text)
	if !ok {
		return ErrVariableNotFound.Wrapf("%q", toks[1].text)
	}

	return in.println(v.String())
}

// ask prompts for one line of input and stores it under the name following
// the closing quote, as an Int when it is a literal integer.
func (in *Interpreter) ask(ctx context.Context, line string) error {
	prompt, end, err := quoted(line)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(line[end+1:])
	if !isName(name) {
		return ErrSyntax.Wrapf(usageAsk)
	}

	input, err := in.prompter.Prompt(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrInterrupted) {
			return err
		}

		if ctx.Err() != nil {
			return ErrInterrupted.Wrap(err)
		}

		return ErrPrompt.Wrap(err)
	}

	in.store.Set(name, typed(strings.TrimSpace(input)))

	return nil
}

// do runs the quoted command line and waits for it to finish.
func (in *Interpreter) do(ctx context.Context, line string) error {
	command, _, err := quoted(line)
	if err != nil {
		return err
	}

	err = in.shell.Run(ctx, command)
	if err != nil {
		if ctx.Err() != nil {
			return ErrInterrupted.Wrap(err)
		}

		return ErrCommand.Wrap(err).With(slog.String("command", command))
	}

	return nil
}

// die stops the script.
func (in *Interpreter) die(context.Context, string) error {
	return ErrHalt
}

// read stores the content of a file as a Str.
func (in *Interpreter) read(_ context.Context, line string) error {
	toks := tokenize(line)
	if len(toks) != 3 {
		return ErrSyntax.Wrapf(usageRead)
	}

	path, _, err := quoted(toks[1].text)
	if err != nil {
		return err
	}

	content, err := in.files.ReadFile(path)
	if err != nil {
		return ErrReadFile.Wrap(err).With(slog.String("file", path))
	}

	in.store.Set(toks[2].text, Str(content))

	return nil
}

// write replaces the content of a file with a quoted literal or with the
// value of a variable.
func (in *Interpreter) write(_ context.Context, line string) error {
	toks := tokenize(line)
	if len(toks) < 3 {
		return ErrSyntax.Wrapf(usageWrite)
	}

	path, _, err := quoted(toks[1].text)
	if err != nil {
		return err
	}

	var content string

	if rest := strings.TrimSpace(line[toks[1].end:]); strings.HasPrefix(rest, `"`) {
		content, _, err = quoted(rest)
		if err != nil {
			return err
		}
	} else {
		if len(toks) != 3 {
			return ErrSyntax.Wrapf(usageWrite)
		}

		v, ok := in.store.Get(toks[2].text)
		if !ok {
			return ErrVariableNotFound.Wrapf("%q", toks[2].text)
		}

		content = v.String()
	}

	err = in.files.WriteFile(path, content)
	if err != nil {
		return ErrWriteFile.Wrap(err).With(slog.String("file", path))
	}

	return nil
}

// changeCase converts a Str variable to upper or lower case in place.
func (in *Interpreter) changeCase(_ context.Context, line string) error {
	toks := tokenize(line)
	if len(toks) != 3 || toks[0].text != VerbChangeCase {
		return ErrSyntax.Wrapf(usageChangeCase)
	}

	name, mode := toks[1].text, toks[2].text

	v, ok := in.store.Get(name)
	if !ok {
		return ErrVariableNotFound.Wrapf("%q", name)
	}

	s, ok := v.Str()
	if !ok {
		return ErrNotString.Wrapf("%q", name)
	}

	var caser cases.Caser

	switch mode {
	case "upper":
		caser = cases.Upper(language.Und)
	case "lower":
		caser = cases.Lower(language.Und)
	default:
		return ErrInvalidCase.Wrapf("%q", mode)
	}

	in.store.Set(name, Str(caser.String(s)))

	return nil
}

func (in *Interpreter) println(s string) error {
	_, err := fmt.Fprintln(in.stdout, s)

	return err
}
