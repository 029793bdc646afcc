// Package logger builds log/slog loggers with environment presets and
// request-scoped attributes.
//
// Loggers are created with functional options:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "pagebridge"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Context extractors run on every record, so values stored in the request
// context (request id, environment) are attached without passing them around.
// The attribute helpers (Error, Component, Event, ...) keep key names
// consistent across packages; helpers taking optional values return an empty
// slog.Attr, which slog drops, for nil input.
package logger
