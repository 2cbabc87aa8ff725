package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

// SubmitPlayerStats grades one player for one match. Stat validation is left
// to the usecase so every failing field is reported together.
func (h *Handler) SubmitPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPlayerStats")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var raw matchstats.RawStats
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	matchID := pathValue(r, "matchID")
	playerID := pathValue(r, "playerID")
	result, err := h.statsService.Submit(ctx, scope, usecase.SubmitStatsInput{
		MatchID:  matchID,
		PlayerID: playerID,
		Stats:    raw,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit player stats failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsResultToDTO(result))
}

// SubmitBatchStats reports one row per entry. Entry failures do not fail the
// request; only request-level problems do.
func (h *Handler) SubmitBatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitBatchStats")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req batchStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.BatchStatsEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, usecase.BatchStatsEntry{PlayerID: entry.PlayerID, Stats: entry.Stats})
	}

	matchID := pathValue(r, "matchID")
	results, err := h.statsService.SubmitBatch(ctx, scope, matchID, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "submit batch stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]batchEntryDTO, 0, len(results))
	for _, row := range results {
		item := batchEntryDTO{PlayerID: row.PlayerID}
		if row.Err != nil {
			mapped := mapError(row.Err)
			message := row.Err.Error()
			if mapped.HTTPStatus == http.StatusInternalServerError {
				h.logger.ErrorContext(ctx, "batch stats entry failed", "match_id", matchID, "player_id", row.PlayerID, "error", row.Err)
				message = "internal server error"
			}
			item.Error = &batchEntryErrorDTO{
				Code:    mapped.HTTPStatus,
				Status:  mapped.Status,
				Reason:  mapped.Reason,
				Message: message,
				Details: mapped.Details,
			}
		} else {
			dto := statsResultToDTO(row.Result)
			item.Result = &dto
		}
		out = append(out, item)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	items, err := h.statsService.ListByMatch(ctx, scope, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]statRecordDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statRecordToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSuggestions")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := pathValue(r, "matchID")
	playerID := pathValue(r, "playerID")
	record, err := h.suggestionService.Generate(ctx, scope, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate suggestions failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statRecordToDTO(record))
}
