// Package logging builds log/slog loggers and carries them through request
// contexts.
//
// The API server configures its logger from config.LogConfig:
//
//	logger := logging.New(cfg.Log.Options())
//	slog.SetDefault(logger)
//
// Handlers pick up a logger tagged with the request ID:
//
//	logging.WithRequestID(r.Context(), logger).Info("page fetched",
//	    slog.String("url", pageURL))
package logging
