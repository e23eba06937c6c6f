// Package platforms holds one stats handler per supported judge and the
// registry that picks between them.
package platforms

import (
	"context"
	"net/url"

	"cp_stats/internal/domain/model"
	"cp_stats/internal/platform/session"

	log "github.com/sirupsen/logrus"
)

// Handler fetches and normalizes one user's statistics from a single platform.
// It returns either stats or an error, never both.
type Handler interface {
	GetUserStats(ctx context.Context, username string) (*model.StatsResult, error)
}

// Deps are what every handler is built from.
type Deps struct {
	BaseURL string
	Session *session.Session
	Logger  log.FieldLogger
}

func (d Deps) logger(platform, username string) log.FieldLogger {
	l := d.Logger
	if l == nil {
		l = log.StandardLogger()
	}
	return l.WithFields(log.Fields{"platform": platform, "username": username})
}

func escape(username string) string {
	return url.PathEscape(username)
}

// logUnavailable records a best-effort call that produced nothing usable;
// the caller keeps its defaults.
func logUnavailable(logger log.FieldLogger, call string, resp *session.Response, err error) {
	entry := logger.WithField("call", call)
	if err != nil {
		entry = entry.WithError(err)
	} else if resp != nil {
		entry = entry.WithField("status", resp.StatusCode)
	}
	entry.Warn("best-effort call failed, using defaults")
}
