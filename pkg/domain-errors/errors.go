// Package domainerrors provides code-carrying errors for domain and
// validation failures. Stores return sentinel errors (pkg/platform/sentinel)
// for infrastructure facts; services translate them into these.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for callers and the HTTP layer.
type Code string

// Generic codes.
const (
	CodeValidation         Code = "validation"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal"
	CodeInvariantViolation Code = "invariant_violation"
)

// Ledger state machine codes. Each one names a deterministic rejection of a
// whole action; none of them is retried internally and none invalidates the
// shared state.
const (
	CodeInvalidAmount          Code = "invalid_amount"
	CodeAlreadyRegistered      Code = "already_registered"
	CodeAlreadyApproved        Code = "already_approved"
	CodeAlreadyInitialized     Code = "already_initialized"
	CodeCandidateNotRegistered Code = "candidate_not_registered"
	CodeNotApproved            Code = "not_approved"
	CodeDuplicateVote          Code = "duplicate_vote"
	CodeInsufficientPayment    Code = "insufficient_payment"
	CodeInsufficientSupply     Code = "insufficient_supply"
	CodeWrongRecipient         Code = "wrong_recipient"
	CodeWrongAsset             Code = "wrong_asset"
	CodeAssetNotInitialized    Code = "asset_not_initialized"
)

// Error is a domain error with a classification code and an optional cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap annotates an underlying error with a domain code and message. The
// cause stays reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the classification code.
func (e *Error) Code() Code {
	return e.code
}

// Is reports whether err carries the given domain code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// CodeOf extracts the code from err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// HTTPStatus maps a domain code to an HTTP status for the transport layer.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeInvalidInput, CodeBadRequest, CodeInvalidAmount:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeCandidateNotRegistered:
		return http.StatusNotFound
	case CodeConflict, CodeAlreadyRegistered, CodeAlreadyApproved,
		CodeAlreadyInitialized, CodeDuplicateVote, CodeNotApproved:
		return http.StatusConflict
	case CodeInsufficientPayment:
		return http.StatusPaymentRequired
	case CodeInsufficientSupply, CodeWrongRecipient, CodeWrongAsset,
		CodeAssetNotInitialized:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
