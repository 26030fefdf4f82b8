package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

func validOffering() *models.ServiceOffering {
	return &models.ServiceOffering{
		Name:        "Haircut",
		DurationMin: 30,
		PriceCents:  5000,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid offering", func(t *testing.T) {
		require.NoError(t, Validate(validOffering()))
	})

	t.Run("free offering is allowed", func(t *testing.T) {
		s := validOffering()
		s.PriceCents = 0
		require.NoError(t, Validate(s))
	})

	t.Run("zero duration", func(t *testing.T) {
		s := validOffering()
		s.DurationMin = 0
		err := Validate(s)
		require.Error(t, err)
		assert.Equal(t, "invalid_duration", httperr.BusinessCode(err))
	})

	t.Run("negative price", func(t *testing.T) {
		s := validOffering()
		s.PriceCents = -1
		err := Validate(s)
		require.Error(t, err)
		assert.Equal(t, "invalid_price", httperr.BusinessCode(err))
	})

	t.Run("deposit required without amount", func(t *testing.T) {
		s := validOffering()
		s.DepositRequired = true
		err := Validate(s)
		require.Error(t, err)
		assert.Equal(t, "deposit_amount_required", httperr.BusinessCode(err))
	})

	t.Run("deposit amount without flag", func(t *testing.T) {
		s := validOffering()
		s.DepositCents = 1000
		err := Validate(s)
		require.Error(t, err)
		assert.Equal(t, "deposit_not_enabled", httperr.BusinessCode(err))
	})

	t.Run("deposit flag with amount", func(t *testing.T) {
		s := validOffering()
		s.DepositRequired = true
		s.DepositCents = 2000
		require.NoError(t, Validate(s))
	})
}
