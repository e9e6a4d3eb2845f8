// Command compileserver exposes the neopath compiler as a placeholder
// database-session surface: a single HTTP endpoint that accepts a
// builder script and returns the compiled Cypher query and parameter
// map as JSON. It never executes against a real database; the Non-goals
// exclude connection handling, result decoding, and query execution.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ritamzico/neopath/internal/script"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
			"remote":   r.RemoteAddr,
		}).Info("handled request")
	})
}

func compileHandler(log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Script string `json:"script"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.Script) == "" {
			writeError(w, http.StatusBadRequest, "missing field: script")
			return
		}

		q, err := script.ApplyScript(strings.Split(body.Script, "\n"))
		if err != nil {
			log.WithError(err).Warn("script rejected")
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		cypher, params := q.Build()
		writeJSON(w, http.StatusOK, struct {
			Cypher string         `json:"cypher"`
			Params map[string]any `json:"params"`
		}{cypher, params})
	}
}

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded, falling back to flags/defaults")
	}

	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/compile", compileHandler(log))

	addr := fmt.Sprintf(":%d", *port)
	log.WithField("addr", addr).Info("compileserver listening")
	handler := corsMiddleware(loggingMiddleware(log, mux))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
