package platforms

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hackerRankFixture struct {
	profileStatus int
	profile       string
	challenges    string
	contests      string
}

func (f hackerRankFixture) serve(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/profile"):
			status := f.profileStatus
			if status == 0 {
				status = http.StatusOK
			}
			writeJSON(w, status, f.profile)
		case strings.HasSuffix(r.URL.Path, "/recent_challenges"):
			if f.challenges == "" {
				writeJSON(w, http.StatusInternalServerError, `{}`)
				return
			}
			writeJSON(w, http.StatusOK, f.challenges)
		case strings.HasSuffix(r.URL.Path, "/contest_participation"):
			if f.contests == "" {
				writeJSON(w, http.StatusInternalServerError, `{}`)
				return
			}
			writeJSON(w, http.StatusOK, f.contests)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestHackerRankFallsBackToLanguageTally(t *testing.T) {
	deps := newTestDeps(t, hackerRankFixture{
		profile: `{"model":{"username":"carol","total_solved_challenges":0}}`,
		challenges: `{"models":[
			{"name":"a","language":"Python"},{"name":"b","language":"Python"},{"name":"c","language":"Python"},
			{"name":"d","language":"Java"},{"name":"e","language":"Java"}]}`,
	}.serve(t))

	res, err := NewHackerRankHandler(deps).GetUserStats(context.Background(), "carol")

	require.NoError(t, err)
	assert.Equal(t, 5, res.Solved)
	assert.Equal(t, map[string]int{"Python": 3, "Java": 2}, res.LanguageStats)
	assert.Equal(t, model.IntMetric(0), res.Rating)
	assert.Equal(t, model.NotAvailable, res.Rank)
}

func TestHackerRankUsesProfileCountAndLatestContest(t *testing.T) {
	deps := newTestDeps(t, hackerRankFixture{
		profile:    `{"model":{"total_solved_challenges":42}}`,
		challenges: `{"models":[{"language":"cpp14"},{"name":"no language"}]}`,
		contests:   `{"models":[{"contest_rating":1523.45,"global_rank":88},{"contest_rating":1400,"global_rank":120}]}`,
	}.serve(t))

	res, err := NewHackerRankHandler(deps).GetUserStats(context.Background(), "dave")

	require.NoError(t, err)
	assert.Equal(t, 42, res.Solved)
	assert.Equal(t, map[string]int{"cpp14": 1, "Unknown": 1}, res.LanguageStats)
	assert.Equal(t, model.NumberMetric("1523.45"), res.Rating)
	assert.Equal(t, model.IntMetric(88), res.Rank)
}

func TestHackerRankBestEffortCallsDegrade(t *testing.T) {
	deps := newTestDeps(t, hackerRankFixture{
		profile: `{"model":{"total_solved_challenges":0}}`,
	}.serve(t))

	res, err := NewHackerRankHandler(deps).GetUserStats(context.Background(), "erin")

	require.NoError(t, err)
	assert.Equal(t, 0, res.Solved)
	assert.Empty(t, res.LanguageStats)
	assert.Equal(t, model.IntMetric(0), res.Rating)
	assert.Equal(t, model.NotAvailable, res.Rank)
}

func TestHackerRankProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		fixture hackerRankFixture
		kind    error
		message string
	}{
		{"404", hackerRankFixture{profileStatus: http.StatusNotFound, profile: `{}`}, common.ErrUserNotFound, "User not found"},
		{"500", hackerRankFixture{profileStatus: http.StatusInternalServerError, profile: `{}`}, common.ErrUpstreamFailure, "Failed to fetch profile data"},
		{"model absent", hackerRankFixture{profile: `{"status":true}`}, common.ErrUserNotFound, "User not found"},
		{"model empty", hackerRankFixture{profile: `{"model":{}}`}, common.ErrUserNotFound, "User not found"},
		{"model null", hackerRankFixture{profile: `{"model":null}`}, common.ErrUserNotFound, "User not found"},
		{"not json", hackerRankFixture{profile: `<html></html>`}, common.ErrUpstreamFailure, "Failed to parse profile data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, tt.fixture.serve(t))

			res, err := NewHackerRankHandler(deps).GetUserStats(context.Background(), "frank")

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.kind)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestHackerRankToleratesMistypedFields(t *testing.T) {
	deps := newTestDeps(t, hackerRankFixture{
		profile:    `{"model":{"username":"gina","total_solved_challenges":"12"}}`,
		challenges: `{"models":[{"language":5},{"language":"Python"},"junk"]}`,
		contests:   `{"models":[{"contest_rating":[1500],"global_rank":"77"}]}`,
	}.serve(t))

	res, err := NewHackerRankHandler(deps).GetUserStats(context.Background(), "gina")

	require.NoError(t, err)
	assert.Equal(t, 2, res.Solved)
	assert.Equal(t, map[string]int{"Unknown": 1, "Python": 1}, res.LanguageStats)
	assert.Equal(t, model.IntMetric(0), res.Rating)
	assert.Equal(t, model.TextMetric("77"), res.Rank)
}
