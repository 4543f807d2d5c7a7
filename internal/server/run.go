package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Serve runs httpServer on lis together with the history worker until ctx is
// done or serving fails. The worker is stopped only after Shutdown returns,
// so records from requests still in flight at shutdown are saved.
func (s *Server) Serve(ctx context.Context, httpServer *http.Server, lis net.Listener) error {
	historyCtx, stopHistory := context.WithCancel(context.Background())
	defer stopHistory()
	historyDone := make(chan struct{})
	go func() {
		defer close(historyDone)
		s.RunHistory(historyCtx)
	}()

	errs := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errs:
	}

	s.log.Info("stop calculator server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("shutdown", "error", err)
	}

	stopHistory()
	<-historyDone
	return serveErr
}
