package platforms

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cp_stats/internal/platform/logger"
	"cp_stats/internal/platform/session"
)

// newTestDeps points a handler at a fake upstream.
func newTestDeps(t *testing.T, handler http.HandlerFunc) Deps {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return Deps{
		BaseURL: server.URL,
		Logger:  logger.Discard(),
		Session: session.New(session.Options{
			Platform:  "test",
			UserAgent: "cp-stats-test",
			Timeout:   2 * time.Second,
		}),
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
