package observability

import (
	"log/slog"
	"os"

	"github.com/fairyhunter13/resume-screener/internal/config"
)

// SetupLogger configures the process-wide JSON logger for the screening
// service. Dev runs at debug with source locations; every other
// environment logs at info. The service and env attributes ride on every
// record so screening runs can be filtered per deployment.
func SetupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	h := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
