package commands

import (
	"io"
	"log/slog"
	"os"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/logging"
	"tableflip.dev/notes/pkg/store"
)

// env is what every verb needs: the configuration, an open store and a
// logger. close releases the store and the log file.
type env struct {
	cfg    *store.FileConfig
	p      store.Persistence
	logger *slog.Logger
	closer io.Closer
}

// openEnv loads the configuration and opens the store. Logs go to the
// configured file, or to logFallback when none is set.
func openEnv(logFallback io.Writer) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile, logFallback)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	logger.Debug("store opened", "driver", cfg.Driver(), "path", cfg.BasePath())
	return &env{cfg: cfg, p: p, logger: logger, closer: closer}, nil
}

func (e *env) service() *app.Service {
	return &app.Service{Persistence: e.p}
}

func (e *env) close() {
	if err := e.p.Close(); err != nil {
		e.logger.Warn("closing store", "error", err)
	}
	_ = e.closer.Close()
}

func stderr() io.Writer { return os.Stderr }
