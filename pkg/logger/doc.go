// Package logger builds log/slog loggers for the service.
//
// New applies functional options on top of production defaults (JSON, INFO).
// WithEnvironment switches to human readable text output at DEBUG level for
// development. Context extractors registered with WithContextExtractors are
// evaluated on every record, which is how request ids and the environment
// name reach log lines without being passed around explicitly.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Development, "progenglish"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "user logged in", logger.UserID(42), logger.Component("auth"))
package logger
