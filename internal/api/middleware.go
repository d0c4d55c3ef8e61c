package api

import (
	"delivery-driver-service/internal/platform/obs"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

const (
	requestIDHeader   = "X-Request-ID"
	maxRequestIDBytes = 64
)

// responseRecorder remembers the status and body size a handler produced.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestIDMiddleware propagates the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > maxRequestIDBytes {
			id = obs.NewRequestID()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(obs.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware writes one access line per request. A panicking handler is
// logged with its stack and answered with 500 if nothing was written yet;
// http.ErrAbortHandler is passed on to the server untouched.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		reqID := obs.RequestID(r.Context())

		defer func() {
			p := recover()
			if p != nil && p != http.ErrAbortHandler {
				log.Printf("req_id=%s panic=%v\n%s", reqID, p, debug.Stack())
				if rec.status == 0 {
					http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}

			log.Printf(
				"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
				reqID, r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start).Milliseconds(),
			)

			// net/http aborts the response silently on this sentinel.
			if p == http.ErrAbortHandler {
				panic(p)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
