package salon

import "github.com/glowbook/salon-platform/internal/domain/shared"

const (
	EventUpdated      = "salon.updated"
	EventLogoUploaded = "salon.logo_uploaded"

	EventBranchCreated      = "branch.created"
	EventBranchHoursUpdated = "branch.hours_updated"
)

type Updated struct {
	shared.BaseEvent
}

func NewUpdated(salonID, tenantID uint) Updated {
	return Updated{
		BaseEvent: shared.NewBaseEvent(EventUpdated, "salon", salonID, tenantID),
	}
}

type LogoUploaded struct {
	shared.BaseEvent
	LogoURL string `json:"logo_url"`
}

func NewLogoUploaded(salonID, tenantID uint, logoURL string) LogoUploaded {
	return LogoUploaded{
		BaseEvent: shared.NewBaseEvent(EventLogoUploaded, "salon", salonID, tenantID),
		LogoURL:   logoURL,
	}
}

type BranchCreated struct {
	shared.BaseEvent
	Name string `json:"name"`
}

func NewBranchCreated(branchID, tenantID uint, name string) BranchCreated {
	return BranchCreated{
		BaseEvent: shared.NewBaseEvent(EventBranchCreated, "branch", branchID, tenantID),
		Name:      name,
	}
}

type BranchHoursUpdated struct {
	shared.BaseEvent
	StaffID uint `json:"staff_id"`
}

func NewBranchHoursUpdated(branchID, tenantID, staffID uint) BranchHoursUpdated {
	return BranchHoursUpdated{
		BaseEvent: shared.NewBaseEvent(EventBranchHoursUpdated, "branch", branchID, tenantID),
		StaffID:   staffID,
	}
}
