package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type errorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code,omitempty"`
	CurrentAmount string `json:"current_amount,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. State
// conflicts are expected under concurrency and carry the retry context
// (conflict code plus the now-current amount for bid races); anything
// unrecognized is logged and returned as an opaque 500.
func writeError(c echo.Context, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	}

	var ineligibleErr *domain.IneligibleActorError
	if errors.As(err, &ineligibleErr) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: ineligibleErr.Error()})
	}

	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}

	var conflictErr *domain.StateConflictError
	if errors.As(err, &conflictErr) {
		resp := errorResponse{Error: conflictErr.Reason, Code: conflictErr.Code}
		if !conflictErr.CurrentAmount.IsZero() {
			resp.CurrentAmount = conflictErr.CurrentAmount.StringFixed(2)
		}
		return c.JSON(http.StatusConflict, resp)
	}

	slog.Error("request failed", "path", c.Path(), "error", err.Error())
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
