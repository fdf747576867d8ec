// Package models holds the issuer registry's records and request types.
package models

import (
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// IssuerAccount is the per-account registry record. Records are created on
// first write and never deleted; absent records read as the zero value.
type IssuerAccount struct {
	Address    domain.Address
	Registered bool
	Approved   bool
	VoteCount  uint64
}

// Status collapses the record into the tri-state the registry exposes.
func (a *IssuerAccount) Status() domain.IssuerStatus {
	switch {
	case a == nil || !a.Registered:
		return domain.IssuerStatusNotRegistered
	case a.Approved:
		return domain.IssuerStatusApproved
	default:
		return domain.IssuerStatusPending
	}
}

// RegisterRequest applies for issuer status.
type RegisterRequest struct {
	Caller domain.Address
}

// Validate enforces request invariants at the trust boundary.
func (r *RegisterRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	return nil
}

// VoteRequest casts one vote for a pending candidate.
type VoteRequest struct {
	Caller    domain.Address
	Candidate domain.Address
}

// Validate enforces request invariants at the trust boundary.
func (r *VoteRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Candidate.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "candidate is required")
	}
	return nil
}

// ApproveRequest grants issuer status by admin fiat or quorum.
type ApproveRequest struct {
	Caller    domain.Address
	Candidate domain.Address
}

// Validate enforces request invariants at the trust boundary.
func (r *ApproveRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Candidate.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "candidate is required")
	}
	return nil
}

// RevokeRequest withdraws issuer status. Admin only.
type RevokeRequest struct {
	Caller  domain.Address
	Account domain.Address
}

// Validate enforces request invariants at the trust boundary.
func (r *RevokeRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Account.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "account is required")
	}
	return nil
}

// StatusResult is the read-only view of one account.
type StatusResult struct {
	Account   domain.Address      `json:"account"`
	Status    domain.IssuerStatus `json:"status"`
	VoteCount uint64              `json:"vote_count"`
}
