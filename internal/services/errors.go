// Package services defines the business logic for donors, requestors, blood
// requests, assignments, donations, and statistics. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrDonorNotFound indicates that the referenced donor does not exist.
	ErrDonorNotFound = errors.New("donor not found")

	// ErrRequestorNotFound indicates that the referenced requestor does not
	// exist.
	ErrRequestorNotFound = errors.New("requestor not found")

	// ErrRequestNotFound indicates that the referenced blood request does not
	// exist.
	ErrRequestNotFound = errors.New("blood request not found")

	// ErrAssignmentNotFound indicates that the referenced assignment does not
	// exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrInvalidAssignmentState is returned when an assignment transition is
	// attempted from a terminal state (already confirmed or cancelled).
	ErrInvalidAssignmentState = errors.New("assignment is not in an accepted state")

	// ErrInvalidUnits is returned when a unit count is non-positive or would
	// overshoot what the target request still needs.
	ErrInvalidUnits = errors.New("invalid unit count")

	// ErrRequestFulfilled is returned when a donation is confirmed against a
	// request that has already reached its needed units. It wraps
	// ErrInvalidUnits: a fulfilled request is the terminal case of a unit
	// count that would overshoot, so errors.Is matches both sentinels.
	ErrRequestFulfilled = fmt.Errorf("%w: request already fulfilled", ErrInvalidUnits)

	// ErrDuplicateAssignment is returned when a donor already holds an active
	// assignment for the same request.
	ErrDuplicateAssignment = errors.New("donor already assigned to this request")

	// ErrDonorNotEligible is returned for walk-in donations attempted inside
	// the minimum interval since the donor's last donation.
	ErrDonorNotEligible = errors.New("donor not eligible to donate yet")

	// ErrInvalidDonor is returned when donor registration data is outside the
	// accepted bounds (age 18-65, weight at least 50kg).
	ErrInvalidDonor = errors.New("invalid donor details")

	// ErrInvalidRequestor is returned when requestor registration data is
	// incomplete.
	ErrInvalidRequestor = errors.New("invalid requestor details")

	// ErrInvalidRequest is returned when blood request creation data is
	// invalid (unknown urgency, missing requestor, non-positive units).
	ErrInvalidRequest = errors.New("invalid blood request details")
)
