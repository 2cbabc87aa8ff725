package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-growth/internal/usecase"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	formations := h.lineupService.Formations()
	out := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		out = append(out, formationToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLineupByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupByMatch")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	item, err := h.lineupService.GetByMatch(ctx, scope, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.lineupService.BenchSize()))
}

func (h *Handler) SelectFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectFormation")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectFormationRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	item, err := h.lineupService.SelectFormation(ctx, scope, usecase.SelectFormationInput{
		MatchID:      matchID,
		Formation:    req.Formation,
		ConfirmClear: req.ConfirmClear,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "select formation failed", "match_id", matchID, "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.lineupService.BenchSize()))
}

func (h *Handler) AssignLineupSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignLineupSlot")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignSlotRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lineupID := pathValue(r, "lineupID")
	slotCode := pathValue(r, "slotCode")
	item, err := h.lineupService.AssignPlayer(ctx, scope, usecase.AssignPlayerInput{
		LineupID: lineupID,
		SlotCode: slotCode,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign lineup slot failed",
			"lineup_id", lineupID,
			"slot", slotCode,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.lineupService.BenchSize()))
}

func (h *Handler) UnassignLineupSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignLineupSlot")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lineupID := pathValue(r, "lineupID")
	slotCode := pathValue(r, "slotCode")
	item, err := h.lineupService.UnassignSlot(ctx, scope, lineupID, slotCode)
	if err != nil {
		h.logger.WarnContext(ctx, "unassign lineup slot failed", "lineup_id", lineupID, "slot", slotCode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.lineupService.BenchSize()))
}
