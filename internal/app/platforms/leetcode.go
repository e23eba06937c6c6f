package platforms

import (
	"context"
	"net/http"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"

	log "github.com/sirupsen/logrus"
)

const leetCodeProfileQuery = `
query userPublicProfile($username: String!) {
    matchedUser(username: $username) {
        username
        submitStats: submitStatsGlobal {
            acSubmissionNum {
                difficulty
                count
                submissions
            }
        }
        profile {
            ranking
            reputation
        }
        languageProblemCount {
            languageName
            problemsSolved
        }
    }
}`

type LeetCodeHandler struct {
	deps Deps
}

func NewLeetCodeHandler(deps Deps) *LeetCodeHandler {
	return &LeetCodeHandler{deps: deps}
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

func (h *LeetCodeHandler) GetUserStats(ctx context.Context, username string) (*model.StatsResult, error) {
	logger := h.deps.logger(model.PlatformLeetCode, username)

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Referer", h.deps.BaseURL+"/"+escape(username))
	header.Set("Origin", h.deps.BaseURL)

	resp, err := h.deps.Session.PostJSON(ctx, "graphql", h.deps.BaseURL+"/graphql", graphQLRequest{
		Query:     leetCodeProfileQuery,
		Variables: map[string]string{"username": username},
	}, header)
	if err != nil {
		return nil, common.Upstream("Failed to fetch data", err)
	}
	if !resp.OK() {
		logger.WithField("status", resp.StatusCode).Warn("leetcode graphql returned non-200")
		return nil, common.Upstream("Failed to fetch data", nil)
	}

	var payload fields
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, common.Upstream(err.Error(), err)
	}
	user := payload.object("data").object("matchedUser")
	if user == nil {
		return nil, common.NotFound("User not found")
	}

	result := model.NewStatsResult(username)
	for _, lang := range user.objects("languageProblemCount") {
		if solved, _ := lang.integer("problemsSolved"); solved > 0 {
			result.LanguageStats[lang.str("languageName")] = solved
		}
	}
	for _, bucket := range user.object("submitStats").objects("acSubmissionNum") {
		if count, _ := bucket.integer("count"); count > 0 {
			result.Solved += count
		}
	}
	profile := user.object("profile")
	result.Rating = model.ParseMetric(profile.raw("reputation"), model.NotAvailable)
	result.Rank = model.ParseMetric(profile.raw("ranking"), model.NotAvailable)

	logger.WithFields(log.Fields{"solved": result.Solved, "languages": len(result.LanguageStats)}).
		Info("leetcode stats normalized")
	return result, nil
}
