package httpapi

import (
	"net/http"

	"github.com/riskibarqy/team-growth/internal/domain/timeline"
)

func (h *Handler) GetPlayerGrowth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerGrowth")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := pathValue(r, "playerID")
	history, err := h.growthService.History(ctx, scope, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player growth failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]snapshotDTO, 0, len(history))
	for _, item := range history {
		out = append(out, snapshotToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetPlayerGrowthChart accepts width, height, padding and min_spacing query
// overrides in pixels.
func (h *Handler) GetPlayerGrowthChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerGrowthChart")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	opts, err := chartOptions(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := pathValue(r, "playerID")
	chart, err := h.growthService.Chart(ctx, scope, playerID, opts)
	if err != nil {
		h.logger.WarnContext(ctx, "get player growth chart failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chart)
}

func (h *Handler) GetTeamGrowthBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamGrowthBoard")
	defer span.End()

	scope, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.growthService.TeamBoard(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team growth board failed", "team_id", scope.ActiveTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerGrowthDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerGrowthDTO{
			Player:  playerToDTO(row.Player),
			Matches: row.Matches,
			Chart:   row.Chart,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func chartOptions(r *http.Request) (timeline.Options, error) {
	opts := timeline.Options{Padding: timeline.UnsetPadding}
	var err error
	if opts.AvailableWidth, err = queryFloat(r, "width"); err != nil {
		return timeline.Options{}, err
	}
	if opts.Height, err = queryFloat(r, "height"); err != nil {
		return timeline.Options{}, err
	}
	if r.URL.Query().Has("padding") {
		if opts.Padding, err = queryFloat(r, "padding"); err != nil {
			return timeline.Options{}, err
		}
	}
	if opts.MinSpacing, err = queryFloat(r, "min_spacing"); err != nil {
		return timeline.Options{}, err
	}
	return opts, nil
}
