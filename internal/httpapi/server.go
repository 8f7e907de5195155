package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/config"
)

// NewServer wraps mux with request logging. WriteTimeout leaves room for a
// synchronous delivery triggered over the API.
func NewServer(cfg config.Config, mux *http.ServeMux, logger *slog.Logger) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}
