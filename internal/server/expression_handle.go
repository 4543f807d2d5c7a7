package server

import (
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/XJIeI5/flatcalc/internal/calc"
	"github.com/XJIeI5/flatcalc/internal/parser"
	"github.com/XJIeI5/flatcalc/internal/storage"
	"github.com/gorilla/mux"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	reasonBadRequest = "bad_request"
	reasonNonFinite  = "non_finite"
)

type calculateRequest struct {
	Expression string `json:"expression"`
}

type calculateResponse struct {
	Result float64 `json:"result"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// writeJSON logs encode failures; the status line is already sent by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

func (s *Server) writeInvalidExpression(w http.ResponseWriter) {
	s.writeError(w, http.StatusBadRequest, calc.InvalidExpressionMessage)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if t, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || t != "application/json" {
		s.metrics.observe(reasonBadRequest, 0)
		s.writeInvalidExpression(w)
		return
	}

	req := calculateRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.log.Debug("bad request body", "error", err)
		s.metrics.observe(reasonBadRequest, 0)
		s.writeInvalidExpression(w)
		return
	}

	start := time.Now()
	res, postfix, err := calc.Evaluate(req.Expression)
	reason := calc.Reason(err)
	if err == nil && (math.IsInf(res, 0) || math.IsNaN(res)) {
		reason = reasonNonFinite
	}
	s.metrics.observe(reason, time.Since(start))
	s.record(req.Expression, postfix, res, reason)

	if reason != calc.ReasonOK {
		s.log.Debug("expression rejected",
			"expression", req.Expression,
			"reason", reason,
			"error", err)
		s.writeInvalidExpression(w)
		return
	}
	s.writeJSON(w, http.StatusOK, calculateResponse{Result: res})
}

// record hands the outcome to the history worker without blocking.
func (s *Server) record(expr string, postfix []parser.Token, res float64, reason string) {
	if s.store == nil {
		return
	}
	rec := storage.Record{
		Expression: expr,
		Postfix:    parser.Format(postfix),
		Status:     storage.StatusOK,
		CreatedAt:  time.Now(),
	}
	if reason == calc.ReasonOK {
		rec.Result = &res
	} else {
		rec.Status = storage.StatusError
		rec.Reason = reason
	}
	if !s.history.Enqueue(rec) {
		s.metrics.historyDropped.Inc()
		s.log.Warn("history queue full, record dropped", "expression", expr)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "history is disabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.Error("list history", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "history is disabled")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no expression with id "+strconv.FormatInt(id, 10))
		return
	}
	if err != nil {
		s.log.Error("get history record", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
