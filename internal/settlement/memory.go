package settlement

import (
	"context"
	"sync"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

// MemoryLedger is an in-process Ledger for tests and local deployments. It
// holds account balances, staged atomic groups, and a record of outward
// transfers so tests can assert what the contract asked the layer to move.
type MemoryLedger struct {
	mu        sync.RWMutex
	balances  map[domain.Address]map[domain.AssetID]uint64
	groups    map[GroupID]Transfer
	custodian domain.Address
	outward   []Transfer
}

// NewMemoryLedger creates an empty ledger with the given custody account
// (the deployment's own address, debited by outward transfers).
func NewMemoryLedger(custodian domain.Address) *MemoryLedger {
	return &MemoryLedger{
		balances:  make(map[domain.Address]map[domain.AssetID]uint64),
		groups:    make(map[GroupID]Transfer),
		custodian: custodian,
	}
}

// Credit adds balance to an account. Test and bootstrap helper.
func (l *MemoryLedger) Credit(account domain.Address, asset domain.AssetID, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	assets := l.balances[account]
	if assets == nil {
		assets = make(map[domain.AssetID]uint64)
		l.balances[account] = assets
	}
	assets[asset] += amount
}

// StageGroup registers the transfer co-submitted in an atomic group, as the
// settlement layer would present it to the contract call in that group.
func (l *MemoryLedger) StageGroup(group GroupID, transfer Transfer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups[group] = transfer
}

// GroupTransfer returns the staged transfer for a group, if any.
func (l *MemoryLedger) GroupTransfer(ctx context.Context, group GroupID) (Transfer, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.groups[group]
	return t, ok, nil
}

// HasBalance reports whether the account holds a positive balance of asset.
func (l *MemoryLedger) HasBalance(ctx context.Context, account domain.Address, asset domain.AssetID) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account][asset] > 0, nil
}

// Transfer debits the custody account and credits the recipient. Fails with
// sentinel.ErrInvalidState when custody holds less than amount, which fails
// the calling action as the real layer would.
func (l *MemoryLedger) Transfer(ctx context.Context, asset domain.AssetID, recipient domain.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	held := l.balances[l.custodian][asset]
	if held < amount {
		return sentinel.ErrInvalidState
	}
	custody := l.balances[l.custodian]
	if custody == nil {
		custody = make(map[domain.AssetID]uint64)
		l.balances[l.custodian] = custody
	}
	custody[asset] = held - amount

	assets := l.balances[recipient]
	if assets == nil {
		assets = make(map[domain.AssetID]uint64)
		l.balances[recipient] = assets
	}
	assets[asset] += amount

	l.outward = append(l.outward, Transfer{
		Sender:   l.custodian,
		Receiver: recipient,
		Asset:    asset,
		Amount:   amount,
	})
	return nil
}

// Outward returns a copy of the outward transfers requested so far.
func (l *MemoryLedger) Outward() []Transfer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transfer, len(l.outward))
	copy(out, l.outward)
	return out
}

// Balance returns the current balance of an account for an asset.
func (l *MemoryLedger) Balance(account domain.Address, asset domain.AssetID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account][asset]
}
