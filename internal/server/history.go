package server

import (
	"context"
	"time"

	"github.com/XJIeI5/flatcalc/internal/storage"
)

const drainTimeout = 5 * time.Second

// RunHistory writes queued records to the store until ctx is done, then
// flushes whatever is still queued. It returns immediately without a store.
func (s *Server) RunHistory(ctx context.Context) {
	if s.store == nil {
		return
	}
	for {
		rec, err := s.history.Dequeue(ctx)
		if err != nil {
			break
		}
		s.save(ctx, rec)
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		rec, err := s.history.TryDequeue()
		if err != nil {
			return
		}
		s.save(drainCtx, rec)
	}
}

func (s *Server) save(ctx context.Context, rec storage.Record) {
	id, err := s.store.Save(ctx, rec)
	if err != nil {
		s.log.Error("save history record", "expression", rec.Expression, "error", err)
		return
	}
	s.metrics.historySaved.Inc()
	s.log.Debug("history record saved", "id", id, "status", rec.Status)
}
