package platforms

import (
	"context"
	"fmt"
	"net/url"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"

	log "github.com/sirupsen/logrus"
)

const (
	codeForcesStatusOK     = "OK"
	codeForcesVerdictOK    = "OK"
	codeForcesRecentWindow = 100
)

type CodeForcesHandler struct {
	deps Deps
}

func NewCodeForcesHandler(deps Deps) *CodeForcesHandler {
	return &CodeForcesHandler{deps: deps}
}

type codeForcesSubmission struct {
	contestID      *int
	problemsetName string
	index          string
	name           string
	verdict        string
	language       string
}

func newCodeForcesSubmission(f fields) codeForcesSubmission {
	problem := f.object("problem")
	s := codeForcesSubmission{
		problemsetName: problem.str("problemsetName"),
		index:          problem.str("index"),
		name:           problem.str("name"),
		verdict:        f.str("verdict"),
		language:       f.str("programmingLanguage"),
	}
	if id, ok := problem.integer("contestId"); ok {
		s.contestID = &id
	}
	return s
}

// problemKey identifies a problem across submissions: contest id plus index,
// or problemset plus name for problems that belong to no contest.
func (s codeForcesSubmission) problemKey() string {
	if s.contestID != nil {
		return fmt.Sprintf("%d/%s", *s.contestID, s.index)
	}
	return s.problemsetName + "/" + s.index + "/" + s.name
}

func (h *CodeForcesHandler) GetUserStats(ctx context.Context, username string) (*model.StatsResult, error) {
	logger := h.deps.logger(model.PlatformCodeForces, username)

	infoURL := h.deps.BaseURL + "/api/user.info?" + url.Values{"handles": {username}}.Encode()
	resp, err := h.deps.Session.Get(ctx, "user.info", infoURL, nil)
	if err != nil {
		return nil, common.Upstream("Failed to fetch user data", err)
	}
	if !resp.OK() {
		logger.WithField("status", resp.StatusCode).Info("codeforces user.info returned non-200")
		return nil, common.NotFound("User not found")
	}

	var info fields
	if err := resp.DecodeJSON(&info); err != nil {
		return nil, common.Upstream(err.Error(), err)
	}
	if info.str("status") != codeForcesStatusOK {
		logger.WithField("comment", info.str("comment")).Warn("codeforces user.info status not OK")
		return nil, common.Upstream("Failed to fetch user data", nil)
	}
	users := info.objects("result")
	if len(users) == 0 {
		return nil, common.NotFound("User not found")
	}

	result := model.NewStatsResult(username)
	result.Rating = model.ParseMetric(users[0].raw("rating"), model.NotAvailable)
	result.Rank = model.ParseMetric(users[0].raw("rank"), model.NotAvailable)

	if submissions, ok := h.fetchRecentSubmissions(ctx, username, logger); ok {
		tallyAccepted(result, submissions)
	}

	logger.WithFields(log.Fields{"solved": result.Solved, "rating": result.Rating.String(), "rank": result.Rank.String()}).
		Info("codeforces stats normalized")
	return result, nil
}

func (h *CodeForcesHandler) fetchRecentSubmissions(ctx context.Context, username string, logger log.FieldLogger) ([]codeForcesSubmission, bool) {
	query := url.Values{
		"handle": {username},
		"from":   {"1"},
		"count":  {fmt.Sprint(codeForcesRecentWindow)},
	}
	resp, err := h.deps.Session.Get(ctx, "user.status", h.deps.BaseURL+"/api/user.status?"+query.Encode(), nil)
	if err != nil || !resp.OK() {
		logUnavailable(logger, "user.status", resp, err)
		return nil, false
	}
	var status fields
	if err := resp.DecodeJSON(&status); err != nil {
		logger.WithError(err).Warn("codeforces submissions undecodable")
		return nil, false
	}
	if s := status.str("status"); s != codeForcesStatusOK {
		logger.WithField("status", s).Warn("codeforces user.status not OK")
		return nil, false
	}
	entries := status.objects("result")
	submissions := make([]codeForcesSubmission, 0, len(entries))
	for _, e := range entries {
		submissions = append(submissions, newCodeForcesSubmission(e))
	}
	return submissions, true
}

// tallyAccepted counts each accepted problem once, attributing it to the
// language of the first accepted submission seen.
func tallyAccepted(result *model.StatsResult, submissions []codeForcesSubmission) {
	seen := make(map[string]struct{}, len(submissions))
	for _, s := range submissions {
		if s.verdict != codeForcesVerdictOK {
			continue
		}
		key := s.problemKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result.LanguageStats[s.language]++
		result.Solved++
	}
}
