package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gomemo/internal/testutil"
)

func TestLogging_RecordsRequest(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.HandleFunc("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	entries := logs.Entries()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/sessions/abc", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(len("short and stout")), entry["size"])
	assert.Equal(t, "abc", entry["resource_id"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["request_id"])
}

func TestLogging_KeepsCallerRequestID(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get(RequestIDHeader))
	require.Len(t, logs.Entries(), 1)
	assert.Equal(t, "INFO", logs.Entries()[0]["level"])
	assert.NotContains(t, logs.Entries()[0], "resource_id")
}

func TestLogging_FlushesThroughWrapper(t *testing.T) {
	flushed := false
	handler := Logging(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		flusher.Flush()
		flushed = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.True(t, flushed)
	assert.True(t, rec.Flushed)
}

func TestRecovery_CallsHandler(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	var recovered any
	handler := Recovery(logger, func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("board out of sync")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/abc/moves", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "board out of sync", recovered)

	entries := logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "panic recovered", entries[0]["msg"])
	assert.Equal(t, "/sessions/abc/moves", entries[0]["path"])
}

func TestRecovery_RepanicsOnAbort(t *testing.T) {
	handler := Recovery(testutil.NopLogger(), func(http.ResponseWriter, *http.Request, any) {
		t.Fatal("abort must not be handled")
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
