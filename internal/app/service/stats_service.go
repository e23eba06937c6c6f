package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cp_stats/internal/app/platforms"
	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"
	"cp_stats/internal/platform/metrics"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Resolver is the part of the platform registry the service needs.
type Resolver interface {
	Resolve(platform string) (platforms.Handler, error)
	Platforms() []string
}

type StatsService struct {
	registry Resolver
	log      log.FieldLogger
}

func NewStatsService(registry Resolver, logger log.FieldLogger) *StatsService {
	return &StatsService{registry: registry, log: logger}
}

type ProfileRequest struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

func (s *StatsService) Platforms() []string {
	return s.registry.Platforms()
}

// GetUserStats resolves platform and returns the user's normalized stats.
func (s *StatsService) GetUserStats(ctx context.Context, platform, username string) (*model.StatsResult, error) {
	platform = strings.TrimSpace(platform)
	username = strings.TrimSpace(username)
	if platform == "" || username == "" {
		return nil, common.BadRequest("Platform and username are required")
	}

	lookupID := chiMiddleware.GetReqID(ctx)
	if lookupID == "" {
		lookupID = uuid.NewString()
	}
	logger := s.log.WithFields(log.Fields{"lookup_id": lookupID, "platform": platform, "username": username})

	handler, err := s.registry.Resolve(platform)
	if err != nil {
		metrics.Lookups.WithLabelValues("unknown", metrics.OutcomeUnsupported).Inc()
		logger.WithError(err).Warn("unsupported platform requested")
		return nil, err
	}
	label := platforms.Normalize(platform)

	stats, err := callHandler(ctx, handler, username)
	if err == nil && stats == nil {
		err = fmt.Errorf("%w: platform handler returned no stats", common.ErrInternalServer)
	}
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, common.ErrUserNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		metrics.Lookups.WithLabelValues(label, outcome).Inc()
		logger.WithError(err).WithField("cause", errors.Unwrap(err)).Warn("stats lookup failed")
		return nil, err
	}

	metrics.Lookups.WithLabelValues(label, metrics.OutcomeSuccess).Inc()
	logger.WithField("solved", stats.Solved).Info("stats lookup finished")
	return stats, nil
}

// callHandler keeps a handler panic from escaping the lookup.
func callHandler(ctx context.Context, h platforms.Handler, username string) (stats *model.StatsResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats = nil
			err = fmt.Errorf("%w: platform handler panicked: %v", common.ErrInternalServer, r)
		}
	}()
	return h.GetUserStats(ctx, username)
}
