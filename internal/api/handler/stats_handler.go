package handler

import (
	"encoding/json"
	"net/http"

	"cp_stats/internal/app/service"
	"cp_stats/internal/common"

	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(ss *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/platforms", h.listPlatforms)                       // GET /api/platforms
	r.Get("/user-stats/{platform}/{username}", h.getUserStats) // GET /api/user-stats/codeforces/tourist
	r.Post("/profile", h.getProfile)                           // POST /api/profile
}

func (h *StatsHandler) listPlatforms(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string][]string{"platforms": h.statsService.Platforms()})
}

func (h *StatsHandler) getUserStats(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	username := chi.URLParam(r, "username")

	stats, err := h.statsService.GetUserStats(r.Context(), platform, username)
	if err != nil {
		common.RespondWithLookupError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), req.Platform, req.Username)
	if err != nil {
		common.RespondWithLookupError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
