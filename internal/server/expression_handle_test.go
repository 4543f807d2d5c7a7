package server

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	s := New(Options{Logger: slog.New(slog.NewJSONHandler(&buf, nil))})

	w := httptest.NewRecorder()
	s.writeJSON(w, http.StatusOK, calculateResponse{Result: math.Inf(1)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"msg":"encode response"`)
	assert.Contains(t, buf.String(), "unsupported value")
}
