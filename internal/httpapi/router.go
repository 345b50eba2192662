package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxLoggedResponseBytes caps how much of an error response body ends up in
// the request log.
const maxLoggedResponseBytes = 512

func NewRouter(api *API) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/quizzes", api.HandleQuizCollection)
	mux.HandleFunc("/quizzes/{quiz_id}", api.HandleQuizItem)
	mux.HandleFunc("/quizzes/{quiz_id}/attempts", api.HandleQuizAttempt)
	mux.HandleFunc("/flashcards", api.HandleFlashcards)
	mux.HandleFunc("/flashcards/random", api.HandleRandomFlashcard)
	mux.HandleFunc("/favorites", api.HandleFavorites)
	mux.HandleFunc("/favorites/toggle", api.HandleToggleFavorite)

	return withRequestLogging(api.logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	logBody      bytes.Buffer
	maxLogBytes  int
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		if len(p) > remaining {
			r.logBody.Write(p[:remaining])
			r.truncated = true
		} else {
			r.logBody.Write(p)
		}
	} else if len(p) > 0 {
		r.truncated = true
	}

	written, err := r.ResponseWriter.Write(p)
	r.bytesWritten += written
	return written, err
}

func withRequestLogging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxLoggedResponseBytes,
		}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.statusCode),
			zap.Int("bytes", recorder.bytesWritten),
			zap.Duration("duration", time.Since(start)),
		}
		if recorder.statusCode >= http.StatusInternalServerError {
			body := recorder.logBody.String()
			if recorder.truncated {
				body += "..."
			}
			logger.Error("request failed", append(fields, zap.String("body", body))...)
			return
		}
		logger.Info("request", fields...)
	})
}
