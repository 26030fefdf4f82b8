package booking

import (
	"context"
	"time"

	"github.com/glowbook/salon-platform/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Branch --------
	BranchExists(
		ctx context.Context,
		salonID uint,
		branchID uint,
	) (bool, error)

	// -------- Service offering --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.ServiceOffering, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Booking (create / conflict) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Booking (state change) --------
	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	GetBookingForSalon(
		ctx context.Context,
		bookingID uint,
		salonID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBookingsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	IsWithinWorkingHours(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
