package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-growth/internal/usecase"
)

func (h *Handler) SaveReflection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveReflection")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reflectionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	playerID := pathValue(r, "playerID")
	result, err := h.reflectionService.Save(ctx, scope, usecase.SaveReflectionInput{
		MatchID:  matchID,
		PlayerID: playerID,
		Text:     req.Text,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save reflection failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reflectionResultDTO{
		State:     string(result.State),
		Unlocked:  result.Unlocked,
		Length:    result.Length,
		Threshold: result.Threshold,
	})
}

// GetMatchReview returns the gated review; feedback fields are null while
// the reflection gate is closed.
func (h *Handler) GetMatchReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchReview")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	playerID := pathValue(r, "playerID")
	review, err := h.reflectionService.Review(ctx, scope, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match review failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reviewToDTO(review))
}
