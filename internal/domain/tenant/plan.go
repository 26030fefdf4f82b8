package tenant

import "github.com/glowbook/salon-platform/internal/httperr"

// ===============================
// Tenant Plans
// ===============================

type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
	PlanScale   Plan = "scale"
)

// Limits caps how many branches, staff members and service offerings a
// tenant may create. A value of -1 means unlimited.
type Limits struct {
	MaxBranches int
	MaxStaff    int
	MaxServices int
}

var planLimits = map[Plan]Limits{
	PlanStarter: {MaxBranches: 1, MaxStaff: 3, MaxServices: 15},
	PlanPro:     {MaxBranches: 3, MaxStaff: 15, MaxServices: 60},
	PlanScale:   {MaxBranches: -1, MaxStaff: -1, MaxServices: -1},
}

func IsValidPlan(p Plan) bool {
	_, ok := planLimits[p]
	return ok
}

func LimitsFor(p Plan) Limits {
	if l, ok := planLimits[p]; ok {
		return l
	}
	return planLimits[PlanStarter]
}

// ===============================
// Validations
// ===============================

func CanAddBranch(p Plan, current int64) error {
	l := LimitsFor(p)
	if l.MaxBranches >= 0 && current >= int64(l.MaxBranches) {
		return httperr.ErrBusiness("plan_branch_limit_reached")
	}
	return nil
}

func CanAddStaff(p Plan, current int64) error {
	l := LimitsFor(p)
	if l.MaxStaff >= 0 && current >= int64(l.MaxStaff) {
		return httperr.ErrBusiness("plan_staff_limit_reached")
	}
	return nil
}

func CanAddService(p Plan, current int64) error {
	l := LimitsFor(p)
	if l.MaxServices >= 0 && current >= int64(l.MaxServices) {
		return httperr.ErrBusiness("plan_service_limit_reached")
	}
	return nil
}
