package booking

import (
	"context"
	"time"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
	"github.com/glowbook/salon-platform/internal/usecase/payments"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	TenantID uint
	SalonID  uint
	BranchID uint
	StaffID  uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

type CreateBookingOutput struct {
	Booking *models.Booking `json:"booking"`
	Deposit *models.Payment `json:"deposit,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	bus      *events.Bus
	deposits *payments.DepositService
}

func NewCreateBooking(
	repo domain.Repository,
	bus *events.Bus,
	deposits *payments.DepositService,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		bus:      bus,
		deposits: deposits,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// Date/time interpreted in the salon's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Minimum advance.
	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// An optional branch must belong to the salon.
	if in.BranchID != 0 {
		ok, err := uc.repo.BranchExists(ctx, in.SalonID, in.BranchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("branch_not_found")
		}
	}

	svc, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// Staff schedule, including the break window.
	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.StaffID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.SalonID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	// Per-staff overlap, row-locked.
	if err := uc.repo.AssertNoTimeConflict(ctx, in.StaffID, start, end); err != nil {
		return nil, err
	}

	b := &models.Booking{
		SalonID:           in.SalonID,
		BranchID:          in.BranchID,
		StaffID:           in.StaffID,
		CustomerID:        customer.ID,
		ServiceOfferingID: svc.ID,
		StartTime:         start,
		EndTime:           end,
		Status:            string(domain.InitialStatus()),
		Notes:             in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	out := &CreateBookingOutput{Booking: b}

	// Deposit checkout only when the service demands one and a gateway
	// is configured.
	if svc.DepositRequired && uc.deposits != nil {
		deposit, err := uc.deposits.CreateForBooking(ctx, b, svc, customer)
		if err != nil {
			return nil, httperr.ErrBusiness("deposit_checkout_failed")
		}
		out.Deposit = deposit
	}

	uc.bus.Publish(ctx, domain.NewCreated(b.ID, in.TenantID, in.StaffID, start))

	return out, nil
}
