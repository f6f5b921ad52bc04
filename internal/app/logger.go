package app

import (
	"io"
	"log/slog"

	"github.com/felixgeelhaar/recruita/pkg/config"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// NewLogger builds the process logger from the LOG_* settings. Development
// defaults to debug when LOG_LEVEL was left at info.
func NewLogger(cfg *config.Config, service string, out io.Writer) *slog.Logger {
	level := cfg.LogLevel
	if cfg.IsDevelopment() && (level == "" || level == "info") {
		level = "debug"
	}
	return observability.NewLogger(observability.LogConfig{
		Level:          level,
		Format:         observability.LogFormat(cfg.LogFormat),
		Output:         out,
		AddSource:      cfg.LogAddSource,
		ServiceName:    service,
		ServiceVersion: cfg.ServiceVersion,
	})
}
