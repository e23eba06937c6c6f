package platforms

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"
	"cp_stats/internal/platform/config"
	"cp_stats/internal/platform/session"

	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"
)

// Factory builds a handler the first time its platform is resolved.
type Factory func() Handler

type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	handlers  map[string]Handler
}

// NewRegistry panics when an id is not a slug; ids end up in URLs and
// metric labels.
func NewRegistry(factories map[string]Factory) *Registry {
	r := &Registry{
		factories: make(map[string]Factory, len(factories)),
		handlers:  make(map[string]Handler, len(factories)),
	}
	for id, f := range factories {
		key := Normalize(id)
		if !slug.IsSlug(key) {
			panic(fmt.Sprintf("platforms: invalid platform id %q", id))
		}
		r.factories[key] = f
	}
	return r
}

// NewDefaultRegistry wires the four supported platforms against cfg.
func NewDefaultRegistry(cfg *config.Config, logger log.FieldLogger) *Registry {
	deps := func(platform, baseURL string) Deps {
		return Deps{
			BaseURL: baseURL,
			Logger:  logger,
			Session: session.New(session.Options{
				Platform:         platform,
				UserAgent:        cfg.UserAgent,
				Timeout:          cfg.UpstreamTimeout,
				MaxResponseBytes: cfg.MaxResponseBytes,
				Logger:           logger,
			}),
		}
	}
	return NewRegistry(map[string]Factory{
		model.PlatformLeetCode: func() Handler {
			return NewLeetCodeHandler(deps(model.PlatformLeetCode, cfg.LeetCodeBaseURL))
		},
		model.PlatformHackerRank: func() Handler {
			return NewHackerRankHandler(deps(model.PlatformHackerRank, cfg.HackerRankBaseURL))
		},
		model.PlatformCodeChef: func() Handler {
			return NewCodeChefHandler(deps(model.PlatformCodeChef, cfg.CodeChefBaseURL))
		},
		model.PlatformCodeForces: func() Handler {
			return NewCodeForcesHandler(deps(model.PlatformCodeForces, cfg.CodeForcesBaseURL))
		},
	})
}

// Normalize maps a user-supplied platform name onto a registry key. Only
// case and surrounding whitespace are ignored.
func Normalize(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// Resolve returns the handler for platform, matching case-insensitively and
// otherwise exactly.
func (r *Registry) Resolve(platform string) (Handler, error) {
	id := Normalize(platform)

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.handlers[id]; ok {
		return h, nil
	}
	f, ok := r.factories[id]
	if !ok {
		return nil, common.UnsupportedPlatform(platform)
	}
	h := f()
	r.handlers[id] = h
	return h, nil
}

// Platforms lists the supported identifiers in sorted order.
func (r *Registry) Platforms() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
