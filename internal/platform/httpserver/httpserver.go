package httpserver

import (
	"net/http"
	"time"
)

// New builds the consentd HTTP server. Approval calls sit on the authorization
// path, so reads and writes are bounded tightly.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
