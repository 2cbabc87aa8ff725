package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-growth/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchDate, err := parseDate("match_date", req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, scope, usecase.CreateMatchInput{
		SeasonID:      req.SeasonID,
		Opponent:      req.Opponent,
		MatchDate:     matchDate,
		TeamScore:     req.TeamScore,
		OpponentScore: req.OpponentScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) ListMatchesBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesBySeason")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := pathValue(r, "seasonID")
	items, err := h.matchService.ListBySeason(ctx, scope, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	item, err := h.matchService.Get(ctx, scope, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateMatchInput{
		Opponent:      req.Opponent,
		TeamScore:     req.TeamScore,
		OpponentScore: req.OpponentScore,
	}
	if req.MatchDate != nil {
		matchDate, err := parseDate("match_date", *req.MatchDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.MatchDate = &matchDate
	}

	matchID := pathValue(r, "matchID")
	item, err := h.matchService.Update(ctx, scope, matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	if err := h.matchService.Delete(ctx, scope, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
