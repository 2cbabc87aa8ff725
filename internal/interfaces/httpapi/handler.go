package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	seasonService     *usecase.SeasonService
	matchService      *usecase.MatchService
	lineupService     *usecase.LineupService
	statsService      *usecase.StatsService
	reflectionService *usecase.ReflectionService
	suggestionService *usecase.SuggestionService
	growthService     *usecase.GrowthService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	matchService *usecase.MatchService,
	lineupService *usecase.LineupService,
	statsService *usecase.StatsService,
	reflectionService *usecase.ReflectionService,
	suggestionService *usecase.SuggestionService,
	growthService *usecase.GrowthService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:     seasonService,
		matchService:      matchService,
		lineupService:     lineupService,
		statsService:      statsService,
		reflectionService: reflectionService,
		suggestionService: suggestionService,
		growthService:     growthService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest strictly decodes the JSON body and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func requestScope(ctx context.Context) (usecase.RequestScope, error) {
	scope, ok := scopeFromContext(ctx)
	if !ok {
		return usecase.RequestScope{}, fmt.Errorf("%w: request scope is missing from request context", usecase.ErrUnauthorized)
	}
	return scope, nil
}

func pathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be formatted as %s", usecase.ErrInvalidInput, field, dateLayout)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// queryFloat reads an optional positive float query parameter; zero means unset.
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
