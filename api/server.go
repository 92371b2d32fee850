package api

import (
	"net/http"

	"github.com/angelmondragon/foodgram-backend/pkg/config"
)

// NewServer wraps handler in an http.Server carrying the configured address
// and timeouts.
func NewServer(cfg config.AppConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
