package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// correct settlement workflow.
//
// State transitions:
//
//	Pending ──┬──> Completed   (delivered quantity reached ordered quantity)
//	          ├──> Cancelled   (owner withdrew the order)
//	          └──> Expired     (expiry sweep refunded the order)
//
// Completed, Cancelled, and Expired are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status accept deliveries and can be cancelled or expired.
	Pending

	// Completed indicates the full ordered quantity has been delivered.
	Completed

	// Cancelled indicates the owner withdrew the order before completion.
	Cancelled

	// Expired indicates the order passed its expiry and was settled by the sweep.
	Expired
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Expired:   "Expired",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Expired:   "Expired",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, Completed, Cancelled, and Expired.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones, which render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is an end state.
// Terminal statuses never transition again.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Expired
}

// ValidateActive checks that the status still accepts lifecycle mutations.
// Only Pending orders may receive deliveries, be cancelled, or be expired.
func (s Status) ValidateActive() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not an active status", s.String()),
		)
	}
	return nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Pending -> Completed (full quantity delivered)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Complete() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (owner withdrew the order)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - Pending -> Expired (expiry sweep settled the order)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Expire() (Status, error) {
	if err := s.ValidateActive(); err != nil {
		return 0, err
	}

	return Expired, nil
}
