// Package models defines the retirement manager's request and view types.
package models

import (
	"github.com/Eklavvyaaaaa/Carbonx/internal/settlement"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// InitAssetRequest binds the credit token the manager verifies burns against.
type InitAssetRequest struct {
	Caller domain.Address
	Asset  domain.AssetID
}

// Validate checks the request fields.
func (r InitAssetRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	if r.Asset.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "asset is required")
	}
	return nil
}

// AddSupplyRequest grows the retireable pool in direct-counter mode.
type AddSupplyRequest struct {
	Caller domain.Address
	Amount uint64
}

// Validate checks the request fields.
func (r AddSupplyRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	return nil
}

// RetireRequest permanently removes credits from circulation. In
// token-verified mode Group names the atomic group carrying the burn
// transfer and Amount is ignored; in direct-counter mode Amount is the
// requested retirement and Group is unused.
type RetireRequest struct {
	Caller domain.Address
	Group  settlement.GroupID
	Amount uint64
}

// Validate checks the request fields.
func (r RetireRequest) Validate() error {
	if r.Caller.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "caller is required")
	}
	return nil
}

// Stats is the read-only retirement view.
type Stats struct {
	BoundAsset      domain.AssetID `json:"bound_asset"`
	TotalSupply     uint64         `json:"total_supply"`
	RetiredCredits  uint64         `json:"retired_credits"`
	AvailableSupply uint64         `json:"available_supply"`
}
