package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/nudhi/log"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// The document is a flat mapping from flag names to values. Hyphens in flag
// names may be written as underscores:
//
//	log_level: debug
//	log_pretty: false
//	dump: yaml
//	path:
//	  - ~/bin
//
// Command-line flags override config file values. A malformed file is
// logged and ignored.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("configuration ignored", slog.String("error", err.Error()))
		}

		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] over decoded configuration values.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := r[name]; ok {
			return flagValue(value), nil
		}
	}

	return nil, nil //nolint:nilnil
}

// flagValue converts decoded numbers to strings, which kong parses with the
// flag's own mapper.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out
	case bool, string, nil:
		return v
	default:
		return fmt.Sprint(v)
	}
}
