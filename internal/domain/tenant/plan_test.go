package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-platform/internal/httperr"
)

func TestIsValidPlan(t *testing.T) {
	assert.True(t, IsValidPlan(PlanStarter))
	assert.True(t, IsValidPlan(PlanPro))
	assert.True(t, IsValidPlan(PlanScale))
	assert.False(t, IsValidPlan(Plan("enterprise")))
	assert.False(t, IsValidPlan(Plan("")))
}

func TestLimitsFor(t *testing.T) {
	t.Run("known plans", func(t *testing.T) {
		assert.Equal(t, Limits{MaxBranches: 1, MaxStaff: 3, MaxServices: 15}, LimitsFor(PlanStarter))
		assert.Equal(t, Limits{MaxBranches: 3, MaxStaff: 15, MaxServices: 60}, LimitsFor(PlanPro))
		assert.Equal(t, Limits{MaxBranches: -1, MaxStaff: -1, MaxServices: -1}, LimitsFor(PlanScale))
	})

	t.Run("unknown plan falls back to starter", func(t *testing.T) {
		assert.Equal(t, LimitsFor(PlanStarter), LimitsFor(Plan("bogus")))
	})
}

func TestCanAddBranch(t *testing.T) {
	require.NoError(t, CanAddBranch(PlanStarter, 0))

	err := CanAddBranch(PlanStarter, 1)
	require.Error(t, err)
	assert.Equal(t, "plan_branch_limit_reached", httperr.BusinessCode(err))

	// scale is unlimited
	require.NoError(t, CanAddBranch(PlanScale, 10_000))
}

func TestCanAddStaff(t *testing.T) {
	require.NoError(t, CanAddStaff(PlanStarter, 2))

	err := CanAddStaff(PlanStarter, 3)
	require.Error(t, err)
	assert.Equal(t, "plan_staff_limit_reached", httperr.BusinessCode(err))

	require.NoError(t, CanAddStaff(PlanPro, 14))
	require.Error(t, CanAddStaff(PlanPro, 15))
}

func TestCanAddService(t *testing.T) {
	require.NoError(t, CanAddService(PlanStarter, 14))

	err := CanAddService(PlanStarter, 15)
	require.Error(t, err)
	assert.Equal(t, "plan_service_limit_reached", httperr.BusinessCode(err))

	require.NoError(t, CanAddService(PlanScale, 1_000))
}
