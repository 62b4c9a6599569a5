package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-contracts/internal/api/respond"
	"github.com/albapepper/scoracle-contracts/internal/report"
)

const (
	keySC     = "sc"
	keyTenure = "tenure"
)

// GetSC returns the full Starter Criteria snapshot.
func (h *Handler) GetSC(w http.ResponseWriter, r *http.Request) {
	h.serveRaw(w, r, keySC, h.paths.SC)
}

// GetSCPlayer returns one player's Starter Criteria record.
func (h *Handler) GetSCPlayer(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NAME", "Player name is required")
		return
	}

	data, _, _, err := h.load(keySC, h.paths.SC)
	if err != nil {
		h.writeLoadError(w, keySC, err)
		return
	}
	var doc report.SC
	if err := json.Unmarshal(data, &doc); err != nil {
		h.writeLoadError(w, keySC, err)
		return
	}

	rec, ok := doc.Players[name]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "No SC record for "+name)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"updated":         doc.Updated,
		"current_season":  doc.CurrentSeason,
		"previous_season": doc.PreviousSeason,
		"name":            name,
		"sc":              rec,
	})
}

// GetTenure returns the full tenure snapshot.
func (h *Handler) GetTenure(w http.ResponseWriter, r *http.Request) {
	h.serveRaw(w, r, keyTenure, h.paths.Tenure)
}

// GetTenureTeam returns one team's players, longest tenure first.
func (h *Handler) GetTenureTeam(w http.ResponseWriter, r *http.Request) {
	abbr := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "abbr")))
	if abbr == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM", "Team abbreviation is required")
		return
	}

	data, _, _, err := h.load(keyTenure, h.paths.Tenure)
	if err != nil {
		h.writeLoadError(w, keyTenure, err)
		return
	}
	var doc report.Tenure
	if err := json.Unmarshal(data, &doc); err != nil {
		h.writeLoadError(w, keyTenure, err)
		return
	}

	players := doc.Players.Team(abbr)
	if len(players) == 0 {
		respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", "No players for team "+abbr)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"updated": doc.Updated,
		"season":  doc.Season,
		"team":    abbr,
		"players": players,
	})
}
