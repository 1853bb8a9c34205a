package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/nudhi/log"
)

func Example_text() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false),
		log.WithLevel(log.LevelInfo))

	logger.Info("script loaded", slog.String("script", "hello.nudhi"))
	logger.Debug("not written")
	// Output:
	// level=INFO msg="script loaded" script=hello.nudhi
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithFormat(log.FormatJSON),
		log.WithLevel(log.LevelTrace))

	logger.With(slog.Int("line", 3)).Trace("dispatch", slog.String("verb", "nudhi_say"))
	// Output:
	// {"level":"TRACE","msg":"dispatch","line":3,"verb":"nudhi_say"}
}
