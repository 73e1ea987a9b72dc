package logging

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

var recorderPool = sync.Pool{
	New: func() any {
		return &responseRecorder{statusCode: http.StatusOK}
	},
}

// quietPaths are polled by probes and scrapers and are not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggingMiddleware logs one line per HTTP request. Server errors are logged
// at error level, client errors at warn, the rest at info.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			rec := recorderPool.Get().(*responseRecorder)
			rec.ResponseWriter = w
			rec.statusCode = http.StatusOK
			rec.bytesWritten = 0
			defer func() {
				rec.ResponseWriter = nil
				recorderPool.Put(rec)
			}()

			next.ServeHTTP(rec, r)

			requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
			if !ok || requestID == "" {
				requestID = "unknown"
			}

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status_code", rec.statusCode,
				"bytes_written", rec.bytesWritten,
				"duration_ms", time.Since(start).Milliseconds(),
			}

			level := slog.LevelInfo
			switch {
			case rec.statusCode >= 500:
				level = slog.LevelError
			case rec.statusCode >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "HTTP request", attrs...)
		})
	}
}

// responseRecorder captures status code and bytes written
type responseRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *responseRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseRecorder) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bytesWritten += n
	return n, err
}
