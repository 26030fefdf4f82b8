package tenant

import "github.com/glowbook/salon-platform/internal/domain/shared"

const (
	EventRegistered  = "tenant.registered"
	EventPlanChanged = "tenant.plan_changed"
)

type Registered struct {
	shared.BaseEvent
	Plan Plan `json:"plan"`
}

func NewRegistered(tenantID uint, plan Plan) Registered {
	return Registered{
		BaseEvent: shared.NewBaseEvent(EventRegistered, "tenant", tenantID, tenantID),
		Plan:      plan,
	}
}

type PlanChanged struct {
	shared.BaseEvent
	OldPlan Plan `json:"old_plan"`
	NewPlan Plan `json:"new_plan"`
}

func NewPlanChanged(tenantID uint, oldPlan, newPlan Plan) PlanChanged {
	return PlanChanged{
		BaseEvent: shared.NewBaseEvent(EventPlanChanged, "tenant", tenantID, tenantID),
		OldPlan:   oldPlan,
		NewPlan:   newPlan,
	}
}
