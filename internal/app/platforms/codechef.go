package platforms

import (
	"bytes"
	"context"
	"strings"

	"cp_stats/internal/common"
	"cp_stats/internal/domain/model"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const fullySolvedMarker = "Fully Solved"

type CodeChefHandler struct {
	deps Deps
}

func NewCodeChefHandler(deps Deps) *CodeChefHandler {
	return &CodeChefHandler{deps: deps}
}

func (h *CodeChefHandler) GetUserStats(ctx context.Context, username string) (*model.StatsResult, error) {
	logger := h.deps.logger(model.PlatformCodeChef, username)

	resp, err := h.deps.Session.Get(ctx, "profile_page", h.deps.BaseURL+"/users/"+escape(username), nil)
	if err != nil {
		return nil, common.Upstream("Failed to fetch profile page", err)
	}
	if !resp.OK() {
		logger.WithField("status", resp.StatusCode).Info("codechef profile page returned non-200")
		return nil, common.NotFound("User not found")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, common.Upstream(err.Error(), err)
	}

	result := parseCodeChefProfile(doc, username)
	logger.WithFields(log.Fields{"solved": result.Solved, "rating": result.Rating.String(), "rank": result.Rank.String()}).
		Info("codechef stats normalized")
	return result, nil
}

// parseCodeChefProfile reads the public profile page. Missing blocks leave
// their defaults; only "Fully Solved" lists count towards solved.
func parseCodeChefProfile(doc *goquery.Document, username string) *model.StatsResult {
	result := model.NewStatsResult(username)

	if rating := doc.Find(".rating-number").First(); rating.Length() > 0 {
		if text := strings.TrimSpace(rating.Text()); text != "" {
			result.Rating = model.TextMetric(text)
		}
	}
	if rank := doc.Find(".rating-ranks").First().Find("strong").First(); rank.Length() > 0 {
		if text := strings.TrimSpace(rank.Text()); text != "" {
			result.Rank = model.TextMetric(text)
		}
	}

	doc.Find(".problems-solved").Each(func(_ int, section *goquery.Selection) {
		section.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, header *goquery.Selection) {
			if !strings.Contains(header.Text(), fullySolvedMarker) {
				return
			}
			list := header.NextAllFiltered("div").First()
			list.Find("a").Each(func(_ int, problem *goquery.Selection) {
				result.Solved++
				if lang := problem.Find(`[title="Language"]`).First(); lang.Length() > 0 {
					result.LanguageStats[strings.TrimSpace(lang.Text())]++
				}
			})
		})
	})
	return result
}
