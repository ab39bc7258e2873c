// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants and the mapping from
// service-layer sentinel errors to HTTP responses (via the `fail()` helper in
// this package). These codes provide clients with a stable, machine-readable
// error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., insufficient_inventory, not_eligible) convey
//     business outcomes that a bare status cannot.
//   - All error responses must include both an HTTP status and one of these codes.

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeInvalidBloodGroup      = "invalid_blood_group"
	ErrCodeInvalidUnits           = "invalid_units"
	ErrCodeInsufficientInventory  = "insufficient_inventory"
	ErrCodeInvalidAssignmentState = "invalid_assignment_state"
	ErrCodeRequestFulfilled       = "request_fulfilled"
	ErrCodeDuplicateAssignment    = "duplicate_assignment"
	ErrCodeNotEligible            = "not_eligible"
	ErrCodePersistenceFailure     = "persistence_failure"
	ErrCodeMethodNotAllowed       = "method_not_allowed"
)

// failErr translates a service-layer error into the matching HTTP status and
// stable code. Unknown errors map to a generic 500.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDonorNotFound),
		errors.Is(err, services.ErrRequestorNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidBloodGroup):
		fail(c, http.StatusBadRequest, ErrCodeInvalidBloodGroup, err.Error())
	// ErrRequestFulfilled wraps ErrInvalidUnits, so it must be matched
	// before the generic unit-count case to keep its 409.
	case errors.Is(err, services.ErrRequestFulfilled):
		fail(c, http.StatusConflict, ErrCodeRequestFulfilled, err.Error())
	case errors.Is(err, services.ErrInvalidUnits), errors.Is(err, ledger.ErrInvalidUnits):
		fail(c, http.StatusBadRequest, ErrCodeInvalidUnits, err.Error())
	case errors.Is(err, services.ErrInvalidDonor),
		errors.Is(err, services.ErrInvalidRequestor),
		errors.Is(err, services.ErrInvalidRequest):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInsufficientInventory):
		fail(c, http.StatusConflict, ErrCodeInsufficientInventory, err.Error())
	case errors.Is(err, services.ErrInvalidAssignmentState):
		fail(c, http.StatusConflict, ErrCodeInvalidAssignmentState, err.Error())
	case errors.Is(err, services.ErrDuplicateAssignment):
		fail(c, http.StatusConflict, ErrCodeDuplicateAssignment, err.Error())
	case errors.Is(err, services.ErrDonorNotEligible):
		fail(c, http.StatusUnprocessableEntity, ErrCodeNotEligible, err.Error())
	case errors.Is(err, store.ErrPersistenceFailure):
		fail(c, http.StatusBadGateway, ErrCodePersistenceFailure, "failed to persist changes")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
