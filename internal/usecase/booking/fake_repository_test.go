package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

// fakeRepository is an in-memory stand-in for the GORM repository so the
// use cases can be exercised without a database.
type fakeRepository struct {
	salon    *models.Salon
	branches map[uint]*models.Branch
	services map[uint]*models.ServiceOffering
	hours    map[int]*models.WorkingHours

	customers []*models.Customer
	bookings  []*models.Booking

	withinHours bool
	conflict    bool

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		salon: &models.Salon{
			ID:                1,
			TenantID:          1,
			Name:              "Glow Studio",
			Slug:              "glow-studio",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
		},
		branches:    map[uint]*models.Branch{},
		services:    map[uint]*models.ServiceOffering{},
		hours:       map[int]*models.WorkingHours{},
		withinHours: true,
		nextID:      1,
	}
}

func (f *fakeRepository) addService(svc models.ServiceOffering) *models.ServiceOffering {
	f.services[svc.ID] = &svc
	return &svc
}

func (f *fakeRepository) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.salon, nil
}

func (f *fakeRepository) BranchExists(_ context.Context, salonID, branchID uint) (bool, error) {
	br, ok := f.branches[branchID]
	return ok && br.SalonID == salonID, nil
}

func (f *fakeRepository) GetService(_ context.Context, salonID, serviceID uint) (*models.ServiceOffering, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (f *fakeRepository) GetOrCreateCustomer(_ context.Context, salonID uint, name, phone, email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}

	c := &models.Customer{ID: f.nextID, SalonID: salonID, Name: name, Phone: phone, Email: email}
	f.nextID++
	f.customers = append(f.customers, c)
	return c, nil
}

func (f *fakeRepository) CreateBooking(_ context.Context, b *models.Booking) error {
	b.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeRepository) AssertNoTimeConflict(_ context.Context, _ uint, _, _ time.Time) error {
	if f.conflict {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (f *fakeRepository) GetBookingForStaff(_ context.Context, bookingID, staffID uint) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID && b.StaffID == staffID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetBookingForSalon(_ context.Context, bookingID, salonID uint) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID && b.SalonID == salonID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) UpdateBooking(_ context.Context, _ *models.Booking) error {
	return nil
}

func (f *fakeRepository) GetWorkingHours(_ context.Context, _ uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := f.hours[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return wh, nil
}

func (f *fakeRepository) ListBookingsForDay(_ context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StaffID == staffID && !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepository) IsWithinWorkingHours(_ context.Context, _ uint, _, _ time.Time) (bool, error) {
	return f.withinHours, nil
}

func (f *fakeRepository) ListBookingsForPeriod(ctx context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	return f.ListBookingsForDay(ctx, staffID, start, end)
}
