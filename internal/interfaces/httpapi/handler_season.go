package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-growth/internal/usecase"
)

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Create(ctx, scope, usecase.CreateSeasonInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "team_id", scope.ActiveTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.seasonService.List(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "team_id", scope.ActiveTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	item, err := h.seasonService.Get(ctx, scope, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	item, err := h.seasonService.Update(ctx, scope, seasonID, usecase.UpdateSeasonInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateSeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	item, err := h.seasonService.SetActive(ctx, scope, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "activate season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	if err := h.seasonService.Delete(ctx, scope, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

// ValidateMatchDate lets clients check a date before creating a match.
func (h *Handler) ValidateMatchDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateMatchDate")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req validateDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchDate, err := parseDate("match_date", req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	if err := h.seasonService.ValidateMatchDate(ctx, scope, seasonID, matchDate); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"valid": true, "match_date": formatDate(matchDate)})
}
