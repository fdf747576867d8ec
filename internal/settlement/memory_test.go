package settlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
	"github.com/Eklavvyaaaaa/Carbonx/pkg/platform/sentinel"
)

func TestMemoryLedgerGroups(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("contract")

	_, ok, err := l.GroupTransfer(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	staged := Transfer{Sender: "alice", Receiver: "contract", Amount: 500}
	l.StageGroup("g1", staged)

	got, ok, err := l.GroupTransfer(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, staged, got)
	assert.True(t, got.IsPayment())
}

func TestMemoryLedgerBalances(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("contract")

	holds, err := l.HasBalance(ctx, "alice", 1008)
	require.NoError(t, err)
	assert.False(t, holds)

	l.Credit("alice", 1008, 1)
	holds, err = l.HasBalance(ctx, "alice", 1008)
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestMemoryLedgerTransfer(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger("contract")

	t.Run("zero-amount transfer succeeds with empty custody", func(t *testing.T) {
		require.NoError(t, l.Transfer(ctx, 2001, "contract", 0))
	})

	t.Run("transfer beyond custody fails the action", func(t *testing.T) {
		err := l.Transfer(ctx, 2001, "alice", 10)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
		assert.EqualValues(t, 0, l.Balance("alice", 2001))
	})

	t.Run("funded transfer moves balance and is recorded", func(t *testing.T) {
		l.Credit("contract", 2001, 100)
		require.NoError(t, l.Transfer(ctx, 2001, "alice", 30))

		assert.EqualValues(t, 70, l.Balance("contract", 2001))
		assert.EqualValues(t, 30, l.Balance("alice", 2001))

		outward := l.Outward()
		require.NotEmpty(t, outward)
		last := outward[len(outward)-1]
		assert.Equal(t, domain.Address("alice"), last.Receiver)
		assert.EqualValues(t, 30, last.Amount)
	})
}
