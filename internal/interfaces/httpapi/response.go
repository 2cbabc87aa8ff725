package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "team-growth"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
	Details any               `json:"details,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Details    any
}

type dateBoundsDetails struct {
	MatchDate string `json:"match_date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type slotConflictDetails struct {
	Slot       string   `json:"slot"`
	Formation  string   `json:"formation"`
	ValidSlots []string `json:"valid_slots"`
}

type duplicatePlayerDetails struct {
	PlayerID      string `json:"player_id"`
	ExistingSlot  string `json:"existing_slot"`
	RequestedSlot string `json:"requested_slot"`
}

type validationDetails struct {
	Fields []matchstats.FieldError `json:"fields"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	markSpanError(ctx, mapped.HTTPStatus, mapped.Reason, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
			Details: mapped.Details,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	mapped := mapStatus(err)
	mapped.Details = errorDetails(err)
	return mapped
}

func mapStatus(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

// errorDetails exposes the structured part of typed domain errors so clients
// can correct their input without parsing messages.
func errorDetails(err error) any {
	var boundsErr *season.DateOutOfBoundsError
	if errors.As(err, &boundsErr) {
		return dateBoundsDetails{
			MatchDate: formatDate(boundsErr.MatchDate),
			StartDate: formatDate(boundsErr.Start),
			EndDate:   formatDate(boundsErr.End),
		}
	}

	var slotErr *lineup.SlotConflictError
	if errors.As(err, &slotErr) {
		return slotConflictDetails{
			Slot:       slotErr.Slot,
			Formation:  string(slotErr.Formation),
			ValidSlots: slotErr.ValidSlots,
		}
	}

	var dupErr *lineup.DuplicatePlayerError
	if errors.As(err, &dupErr) {
		return duplicatePlayerDetails{
			PlayerID:      dupErr.PlayerID,
			ExistingSlot:  dupErr.ExistingSlot,
			RequestedSlot: dupErr.RequestedSlot,
		}
	}

	var validationErr *matchstats.ValidationError
	if errors.As(err, &validationErr) {
		return validationDetails{Fields: validationErr.Fields}
	}

	return nil
}
