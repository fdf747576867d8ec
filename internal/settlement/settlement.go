// Package settlement models the external layer that actually moves value.
// The state machines validate against it and request transfers through it;
// signing, submission and account funding are deployment concerns that live
// entirely on the other side of this boundary.
package settlement

//go:generate mockgen -source=settlement.go -destination=mocks/mocks.go -package=mocks Ledger

import (
	"context"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
)

// GroupID identifies an atomic action group on the settlement layer. Every
// transfer-verified action (marketplace buy/mint, token-verified retire)
// names the group its accompanying transfer was submitted in.
type GroupID string

// IsNil returns true if no group was named.
func (g GroupID) IsNil() bool {
	return g == ""
}

// Transfer is a payment or asset transfer observed inside an atomic group.
// A zero Asset means a native-unit payment rather than a token transfer.
type Transfer struct {
	Sender   domain.Address
	Receiver domain.Address
	Asset    domain.AssetID
	Amount   uint64
}

// IsPayment reports whether the transfer moves native units.
func (t Transfer) IsPayment() bool {
	return t.Asset.IsZero()
}

// Ledger is the settlement collaborator consumed by the state machines.
//
// The layer guarantees that every action in a group commits together or the
// whole group is discarded, and that an outward transfer either completes
// before the action finalizes or fails the whole action.
type Ledger interface {
	// GroupTransfer returns the transfer co-submitted in the given atomic
	// group, or ok=false when the group carries none.
	GroupTransfer(ctx context.Context, group GroupID) (Transfer, bool, error)

	// HasBalance reports whether the account holds a positive balance of
	// the asset. Used for governance-token-gated voting.
	HasBalance(ctx context.Context, account domain.Address, asset domain.AssetID) (bool, error)

	// Transfer moves amount units of asset from this deployment's custody
	// to the recipient. A returned error fails the whole action.
	Transfer(ctx context.Context, asset domain.AssetID, recipient domain.Address, amount uint64) error
}
