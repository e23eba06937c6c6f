package platforms

import (
	"context"
	"testing"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"
	"cp_stats/internal/platform/config"
	"cp_stats/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct{ name string }

func (s *stubHandler) GetUserStats(ctx context.Context, username string) (*model.StatsResult, error) {
	return model.NewStatsResult(username), nil
}

func TestRegistryRejectsUnknownPlatforms(t *testing.T) {
	r := NewDefaultRegistry(config.FromEnv(), logger.Discard())

	for _, id := range []string{
		"atcoder", "", "leet code", "topcoder", "codeforces2",
		"leetcode!", "léetcode", "¿codeforces?", "hackerrank...", "--leetcode--", "code.chef", "code-chef",
	} {
		h, err := r.Resolve(id)
		assert.Nil(t, h, id)
		assert.ErrorIs(t, err, common.ErrUnsupportedPlatform, id)
	}
}

func TestRegistryIsCaseInsensitive(t *testing.T) {
	r := NewDefaultRegistry(config.FromEnv(), logger.Discard())

	lower, err := r.Resolve("leetcode")
	require.NoError(t, err)
	mixed, err := r.Resolve("LeetCode")
	require.NoError(t, err)
	upper, err := r.Resolve("LEETCODE")
	require.NoError(t, err)

	assert.IsType(t, &LeetCodeHandler{}, lower)
	assert.Same(t, lower, mixed)
	assert.Same(t, lower, upper)

	for _, id := range []string{"HackerRank", "CodeChef", "CodeForces"} {
		_, err := r.Resolve(id)
		assert.NoError(t, err, id)
	}
}

func TestRegistryBuildsHandlersLazily(t *testing.T) {
	built := 0
	r := NewRegistry(map[string]Factory{
		"stub": func() Handler {
			built++
			return &stubHandler{name: "stub"}
		},
	})
	assert.Equal(t, 0, built)

	_, err := r.Resolve("Stub")
	require.NoError(t, err)
	_, err = r.Resolve("stub")
	require.NoError(t, err)

	assert.Equal(t, 1, built)
}

func TestRegistryIgnoresSurroundingWhitespace(t *testing.T) {
	r := NewDefaultRegistry(config.FromEnv(), logger.Discard())

	h, err := r.Resolve("  CodeChef ")
	require.NoError(t, err)
	assert.IsType(t, &CodeChefHandler{}, h)
}

func TestNewRegistryRejectsNonSlugIDs(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(map[string]Factory{"Leet Code": func() Handler { return &stubHandler{} }})
	})
}

func TestRegistryPlatforms(t *testing.T) {
	r := NewDefaultRegistry(config.FromEnv(), logger.Discard())
	assert.Equal(t, []string{"codechef", "codeforces", "hackerrank", "leetcode"}, r.Platforms())
}
