package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nudhi/cli/cmd"
	"github.com/ardnew/nudhi/lang"
	"github.com/ardnew/nudhi/log"
	"github.com/ardnew/nudhi/pkg"
)

// Exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// CLI is the top-level command-line interface for nudhi.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	cmd.Script `embed:""`
}

// host is everything Run takes from the process.
type host struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	cacheDir   string
}

// Run parses args and runs the selected script. The exit function is called
// by flags that end the process early, such as --help and --version.
//
// Use [ExitCode] to map the returned error to a process exit status.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, host{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		configFile: configPath(baseConfig),
		cacheDir:   cacheDir(),
	}, exit, args)
}

func run(ctx context.Context, h host, exit func(code int), args []string) error {
	var cli CLI

	log.Config(log.WithOutput(h.stderr))

	vars := kong.Vars{
		cmd.ConfigIdentifier: h.configFile,
		cmd.CacheIdentifier:  h.cacheDir,
		"version":            pkg.Name + " " + pkg.Version,
		"dumpEnum":           strings.Join(lang.DumpFormats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Exit(exit),
		kong.Writers(h.stdout, h.stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:   true,
				Summary:   true,
				FlagsLast: false,
			}),
		kong.Configuration(kong.JSON, h.configFile+".json"),
		kong.Configuration(loadYAML, h.configFile),
		vars,
	)
	if err != nil {
		return err
	}

	_, err = parser.Parse(args)
	if err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}

		return err
	}

	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithEnv(ctx, cmd.Env{
		Stdin:    h.stdin,
		Stdout:   h.stdout,
		Stderr:   h.stderr,
		CacheDir: h.cacheDir,
		Logger:   log.Default(),
	})

	return cli.Script.Run(ctx)
}

// ExitCode maps an error returned by [Run] to a process exit status: usage
// errors are 2, interruptions 130, and every other error 1.
func ExitCode(err error) int {
	var parseErr *kong.ParseError

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &parseErr):
		return ExitUsage
	case errors.Is(err, lang.ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
