package httpserver

import (
	"context"
	"net/http"
	"time"
)

// Timeouts sized for the ledger's small JSON bodies; nothing the service
// serves streams or uploads in bulk.
const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second

	// ShutdownTimeout bounds the graceful drain on SIGTERM. Requests
	// still open when it expires are cut off.
	ShutdownTimeout = 10 * time.Second
)

// New builds the HTTP server for the ledger API.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Shutdown drains in-flight requests, giving up after ShutdownTimeout.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
