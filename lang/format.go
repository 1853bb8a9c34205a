package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// DumpFormat selects how [Store.Format] renders variables.
type DumpFormat string

const (
	DumpNone DumpFormat = "none"
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// DumpFormats returns the accepted dump format names.
func DumpFormats() []string {
	return []string{string(DumpNone), string(DumpJSON), string(DumpYAML)}
}

// ErrInvalidFormat is returned for an unknown dump format.
var ErrInvalidFormat = NewError("invalid format")

// ParseDumpFormat parses a case-insensitive dump format name.
func ParseDumpFormat(s string) (DumpFormat, error) {
	f := DumpFormat(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(DumpFormats(), string(f)) {
		return DumpNone, ErrInvalidFormat.Wrapf(
			"%q (expected one of: %s)", s, strings.Join(DumpFormats(), ", "),
		)
	}

	return f, nil
}

// Format writes every variable in s to w, ordered by name.
func (s *Store) Format(
	ctx context.Context,
	w io.Writer,
	format DumpFormat,
	indent int,
) error {
	switch format {
	case DumpNone, "":
		return nil
	case DumpJSON:
		return s.FormatJSON(w, indent)
	case DumpYAML:
		return s.FormatYAML(ctx, w, indent)
	default:
		return ErrInvalidFormat.Wrapf("%q", format)
	}
}

// FormatJSON writes the variables as a JSON object.
func (s *Store) FormatJSON(w io.Writer, indent int) error {
	vars := make(map[string]Value, s.Len())
	for name, v := range s.All() {
		vars[name] = v
	}

	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(vars, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(vars)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the variables as a YAML mapping.
func (s *Store) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	vars := make(yaml.MapSlice, 0, s.Len())
	for name, v := range s.All() {
		vars = append(vars, yaml.MapItem{Key: name, Value: v.Native()})
	}

	yamlData, err := yaml.MarshalContext(ctx, vars, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
