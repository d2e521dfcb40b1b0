//go:build unit

package ledger_test

import (
	"testing"

	"lessonbook/internal/domain/ledger"
	"lessonbook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructEntry(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewLedgerEntryBuilder()
		entry, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, b.ID, entry.ID())
		assert.Equal(t, b.StudentID, entry.StudentID())
		assert.Equal(t, b.CourseID, entry.CourseID())
		assert.Equal(t, "order-0001", entry.OrderRef())
		assert.Equal(t, 10, entry.Remaining())
	})

	t.Run("quantity bounds", func(t *testing.T) {
		cases := []struct {
			name        string
			total, used int
			errIs       error
		}{
			{name: "fully consumed entry", total: 5, used: 5},
			{name: "single unit", total: 1, used: 0},
			{name: "zero total", total: 0, used: 0, errIs: ledger.ErrInvalidQuantity},
			{name: "negative total", total: -1, used: 0, errIs: ledger.ErrInvalidQuantity},
			{name: "negative used", total: 5, used: -1, errIs: ledger.ErrUsedOutOfRange},
			{name: "used exceeds total", total: 5, used: 6, errIs: ledger.ErrUsedOutOfRange},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				entry, err := builder.NewLedgerEntryBuilder().WithQuantities(tc.total, tc.used).BuildDomain()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					assert.Nil(t, entry)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.total-tc.used, entry.Remaining())
			})
		}
	})
}

func TestConsume(t *testing.T) {
	t.Run("decrements remaining by one", func(t *testing.T) {
		entry, err := builder.NewLedgerEntryBuilder().WithQuantities(3, 1).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entry.Consume())
		assert.Equal(t, 2, entry.QuantityUsed())
		assert.Equal(t, 1, entry.Remaining())
	})

	t.Run("consuming the last unit then one more", func(t *testing.T) {
		entry, err := builder.NewLedgerEntryBuilder().WithQuantities(2, 1).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entry.Consume())
		assert.Equal(t, 0, entry.Remaining())
		assert.ErrorIs(t, entry.Consume(), ledger.ErrNoRemainingBalance)
		assert.Equal(t, 2, entry.QuantityUsed())
	})
}

func TestRelease(t *testing.T) {
	t.Run("returns one unit", func(t *testing.T) {
		entry, err := builder.NewLedgerEntryBuilder().WithQuantities(3, 2).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entry.Release())
		assert.Equal(t, 1, entry.QuantityUsed())
		assert.Equal(t, 2, entry.Remaining())
	})

	t.Run("release below zero is rejected", func(t *testing.T) {
		entry, err := builder.NewLedgerEntryBuilder().WithQuantities(3, 0).BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, entry.Release(), ledger.ErrReleaseBelowZero)
		assert.Equal(t, 0, entry.QuantityUsed())
	})

	t.Run("consume then release round-trips", func(t *testing.T) {
		entry, err := builder.NewLedgerEntryBuilder().WithQuantities(4, 0).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entry.Consume())
		require.NoError(t, entry.Release())
		assert.Equal(t, 4, entry.Remaining())
	})
}
