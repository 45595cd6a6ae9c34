package domain

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors below match one of these with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrTransactionFailure  = errors.New("transaction failure")
)

// Sentinel errors for missing entities.
var (
	ErrDealerNotFound     = fmt.Errorf("dealer %w", ErrNotFound)
	ErrVehicleNotFound    = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrEmployeeNotFound   = fmt.Errorf("employee %w", ErrNotFound)
	ErrLeadNotFound       = fmt.Errorf("lead %w", ErrNotFound)
	ErrSalarySlipNotFound = fmt.Errorf("salary slip %w", ErrNotFound)
	ErrWebsiteNotFound    = fmt.Errorf("website content %w", ErrNotFound)
)

// Authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrAccountPending     = errors.New("account is awaiting approval")
)

// ConflictError is returned when a write hits a uniqueness constraint.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s is already in use", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s %s %q is already in use", e.Entity, e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Machine Machine
	Event   Event
	Current string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s event %q is not valid from state %q", e.Machine, e.Event, e.Current)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// TxError wraps a failure to begin or commit a multi-row mutation.
// No partial effect of Op is visible when it is returned.
type TxError struct {
	Op  string
	Err error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("%s: transaction failed: %v", e.Op, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

func (e *TxError) Is(target error) bool {
	return target == ErrTransactionFailure
}

// ValidationError reports malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AccountDeactivatedError is returned when a deactivated dealer tries to log in.
type AccountDeactivatedError struct {
	Reason string
}

func (e *AccountDeactivatedError) Error() string {
	if e.Reason == "" {
		return "account is deactivated"
	}
	return "account is deactivated: " + e.Reason
}
