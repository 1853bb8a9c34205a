// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is configured once, with functional options, and is immutable
// afterwards:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
//	logger.Debug("script loaded", slog.String("script", path))
//
// Attributes are [slog.Attr] values, never loose key/value pairs.
//
// # Levels
//
// Five levels are defined. [LevelTrace] sits below [LevelDebug] and is used
// for per-line interpreter tracing. [DefaultLevel] is [LevelWarn].
//
// # Formats
//
// [FormatText] writes key=value records; when pretty output is enabled (the
// default) keys and values are colorized and strings are not quoted.
// [FormatJSON] writes one JSON object per record.
//
// # Package logger
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// default Logger that targets standard error. [Config] reconfigures it.
package log
