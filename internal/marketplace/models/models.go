// Package models holds the marketplace's request and result types.
package models

import (
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// InitAssetRequest binds the deployment to its backing token. Write-once.
type InitAssetRequest struct {
	Caller domain.Address
	Asset  domain.AssetID
}

// Validate enforces request invariants at the trust boundary.
func (r *InitAssetRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Asset.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "asset is required")
	}
	return nil
}

// BuyRequest purchases credits against the bonding curve. The payment rides
// in the same atomic group as the call.
type BuyRequest struct {
	Caller domain.Address
	Group  settlement.GroupID
	Amount uint64
}

// Validate enforces request invariants at the trust boundary. Amount range
// is the state machine's concern (InvalidAmount), not the transport's.
func (r *BuyRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Group.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "atomic group is required")
	}
	return nil
}

// MintRequest deposits backing tokens into custody (token mode, Group names
// the inbound transfer) or mints counter credits (legacy mode, Amount).
type MintRequest struct {
	Caller domain.Address
	Group  settlement.GroupID
	Amount uint64
}

// Validate enforces request invariants at the trust boundary.
func (r *MintRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	return nil
}

// Stats is the read-only marketplace view.
type Stats struct {
	BoundAsset     domain.AssetID `json:"bound_asset"`
	TotalCredits   uint64         `json:"total_credits"`
	RetiredCredits uint64         `json:"retired_credits"`
	UnitPrice      uint64         `json:"unit_price"`
}
