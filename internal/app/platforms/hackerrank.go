package platforms

import (
	"context"
	"net/http"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const unknownLanguage = "Unknown"

type HackerRankHandler struct {
	deps Deps
}

func NewHackerRankHandler(deps Deps) *HackerRankHandler {
	return &HackerRankHandler{deps: deps}
}

func (h *HackerRankHandler) headers(username string) http.Header {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Referer", h.deps.BaseURL+"/"+escape(username))
	header.Set("Origin", h.deps.BaseURL)
	return header
}

func (h *HackerRankHandler) GetUserStats(ctx context.Context, username string) (*model.StatsResult, error) {
	logger := h.deps.logger(model.PlatformHackerRank, username)
	header := h.headers(username)
	base := h.deps.BaseURL + "/rest/hackers/" + escape(username)

	solved, err := h.fetchProfile(ctx, base+"/profile", header, logger)
	if err != nil {
		return nil, err
	}

	result := model.NewStatsResult(username)
	result.Rating = model.IntMetric(0)

	// The two remaining calls are best-effort and fill disjoint fields.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.LanguageStats = h.fetchLanguageTally(gctx, base+"/recent_challenges", header, logger)
		return nil
	})
	g.Go(func() error {
		result.Rating, result.Rank = h.fetchLatestContest(gctx, base+"/contest_participation", header, logger)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Warn("hackerrank best-effort calls failed")
	}

	result.Solved = solved
	if solved == 0 && len(result.LanguageStats) > 0 {
		result.Solved = result.LanguageTotal()
		logger.WithField("solved", result.Solved).Info("hackerrank profile reported no solves, using language tally")
	}

	logger.WithFields(log.Fields{"solved": result.Solved, "rating": result.Rating.String(), "rank": result.Rank.String()}).
		Info("hackerrank stats normalized")
	return result, nil
}

func (h *HackerRankHandler) fetchProfile(ctx context.Context, url string, header http.Header, logger log.FieldLogger) (int, error) {
	resp, err := h.deps.Session.Get(ctx, "profile", url, header)
	if err != nil {
		return 0, common.Upstream("Failed to fetch profile data", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return 0, common.NotFound("User not found")
	}
	if !resp.OK() {
		logger.WithField("status", resp.StatusCode).Warn("hackerrank profile returned non-200")
		return 0, common.Upstream("Failed to fetch profile data", nil)
	}

	var envelope fields
	if err := resp.DecodeJSON(&envelope); err != nil {
		logger.WithError(err).Warn("hackerrank profile payload undecodable")
		return 0, common.Upstream("Failed to parse profile data", err)
	}
	profile := envelope.object("model")
	if len(profile) == 0 {
		return 0, common.NotFound("User not found")
	}

	solved, ok := profile.integer("total_solved_challenges")
	if !ok && profile.raw("total_solved_challenges") != nil {
		logger.Debug("hackerrank total_solved_challenges not an integer")
	}
	return solved, nil
}

func (h *HackerRankHandler) fetchLanguageTally(ctx context.Context, url string, header http.Header, logger log.FieldLogger) map[string]int {
	tally := map[string]int{}
	resp, err := h.deps.Session.Get(ctx, "recent_challenges", url, header)
	if err != nil || !resp.OK() {
		logUnavailable(logger, "recent_challenges", resp, err)
		return tally
	}
	var challenges fields
	if err := resp.DecodeJSON(&challenges); err != nil {
		logger.WithError(err).Warn("hackerrank recent challenges undecodable")
		return tally
	}
	for _, c := range challenges.objects("models") {
		lang := c.str("language")
		if lang == "" {
			lang = unknownLanguage
		}
		tally[lang]++
	}
	return tally
}

func (h *HackerRankHandler) fetchLatestContest(ctx context.Context, url string, header http.Header, logger log.FieldLogger) (model.Metric, model.Metric) {
	rating, rank := model.IntMetric(0), model.NotAvailable
	resp, err := h.deps.Session.Get(ctx, "contest_participation", url, header)
	if err != nil || !resp.OK() {
		logUnavailable(logger, "contest_participation", resp, err)
		return rating, rank
	}
	var contests fields
	if err := resp.DecodeJSON(&contests); err != nil {
		logger.WithError(err).Warn("hackerrank contest participation undecodable")
		return rating, rank
	}
	models := contests.objects("models")
	if len(models) == 0 {
		return rating, rank
	}
	latest := models[0]
	return model.ParseMetric(latest.raw("contest_rating"), rating), model.ParseMetric(latest.raw("global_rank"), rank)
}
