package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

func TestOrderLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("pending to paid to fulfilled", func(t *testing.T) {
		o := &models.Order{Status: string(InitialStatus())}

		require.NoError(t, MarkPaid(o, now))
		assert.Equal(t, string(StatusPaid), o.Status)
		require.NotNil(t, o.PaidAt)

		require.NoError(t, Fulfill(o, now))
		assert.Equal(t, string(StatusFulfilled), o.Status)
		require.NotNil(t, o.FulfilledAt)
	})

	t.Run("cancel only from pending", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		require.NoError(t, Cancel(o, now))
		assert.Equal(t, string(StatusCancelled), o.Status)

		paid := &models.Order{Status: string(StatusPaid)}
		err := Cancel(paid, now)
		require.Error(t, err)
		assert.Equal(t, "invalid_state", httperr.BusinessCode(err))
	})

	t.Run("fulfill requires payment", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		err := Fulfill(o, now)
		require.Error(t, err)
		assert.Equal(t, "invalid_state", httperr.BusinessCode(err))
	})

	t.Run("paying twice fails", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		require.NoError(t, MarkPaid(o, now))
		require.Error(t, MarkPaid(o, now))
	})
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusPaid))
	assert.True(t, IsValidStatus(StatusFulfilled))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.False(t, IsValidStatus(Status("shipped")))
}

func TestNewNumber(t *testing.T) {
	re := regexp.MustCompile(`^ORD-[0-9a-f]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := NewNumber()
		assert.Regexp(t, re, n)
		assert.False(t, seen[n], "numbers should not repeat")
		seen[n] = true
	}
}

func TestSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{UnitPriceCents: 2500, Quantity: 2},
		{UnitPriceCents: 1000, Quantity: 3},
	}
	assert.Equal(t, int64(8000), Subtotal(items))
	assert.Equal(t, int64(0), Subtotal(nil))
}
