package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	clientdomain "insurance-brokerage/internal/domain/client"
	policydomain "insurance-brokerage/internal/domain/policy"
	productdomain "insurance-brokerage/internal/domain/product"
	clientuc "insurance-brokerage/internal/usecase/client"
	policyuc "insurance-brokerage/internal/usecase/policy"
	productuc "insurance-brokerage/internal/usecase/product"
)

// writeError maps usecase and domain errors onto status codes. A failed store write is a 500
// carrying the store's message; anything else unmapped is a 500 whose text is not echoed back.
func writeError(c echo.Context, err error) error {
	var pve *policyuc.ValidationError
	if errors.As(err, &pve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: pve.Error(), Details: fromMap(pve.Fields)})
	}
	var cve *clientuc.ValidationError
	if errors.As(err, &cve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: cve.Error(), Details: fromMap(cve.Fields)})
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, policyuc.ErrMissingIdentity):
		code = http.StatusUnauthorized
	case errors.Is(err, policydomain.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, policydomain.ErrNotFound),
		errors.Is(err, policydomain.ErrRejectionNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, policydomain.ErrInvalidTransition),
		errors.Is(err, policydomain.ErrAlreadyRejected),
		errors.Is(err, clientdomain.ErrDuplicateEmail):
		code = http.StatusConflict
	case errors.Is(err, policyuc.ErrUnknownProduct),
		errors.Is(err, productuc.ErrUnknownRuleCode):
		code = http.StatusUnprocessableEntity
	}
	if code != http.StatusInternalServerError {
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	}
	var se *policyuc.StoreError
	if errors.As(err, &se) {
		return c.JSON(code, ErrorResponse{Error: se.Error()})
	}
	return c.JSON(code, ErrorResponse{Error: "internal error"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
}
