package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Logger logs one line per request: method, path, response status, duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		// Method and path are attacker-controlled; strip CR/LF so a crafted
		// request cannot forge extra log lines.
		clean := strings.NewReplacer("\n", "", "\r", "").Replace
		log.Printf("%s %s %d %s",
			clean(r.Method),
			clean(r.URL.Path),
			recorder.status,
			time.Since(start),
		)
	})
}

// statusRecorder captures the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
