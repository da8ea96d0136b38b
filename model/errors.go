package model

import (
	"errors"
	"fmt"
)

// ErrDeletionFailures is returned when --fail-on-delete-error is set and at
// least one snapshot could not be deleted.
var ErrDeletionFailures = errors.New("one or more snapshot deletions failed")

// PrerequisiteError means required tooling or authentication is unavailable
type PrerequisiteError struct {
	Prerequisite string
	Err          error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite missing: %s: %v", e.Prerequisite, e.Err)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

// AuthorizationError means the identity cannot access a subscription
type AuthorizationError struct {
	SubscriptionID string
	Err            error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("cannot access subscription %s: %v", e.SubscriptionID, e.Err)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

// ConnectivityError means a listing call against the cloud API failed
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
