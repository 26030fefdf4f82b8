package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.Salon{},
		&models.Branch{},
		&models.Staff{},
		&models.Customer{},
		&models.ServiceOffering{},
		&models.WorkingHours{},
		&models.Booking{},
	))

	return db
}

func seedSalon(t *testing.T, db *gorm.DB) *models.Salon {
	t.Helper()

	tenant := models.Tenant{Name: "Glow Group", Plan: "starter"}
	require.NoError(t, db.Create(&tenant).Error)

	salon := models.Salon{
		TenantID: tenant.ID,
		Name:     "Glow Studio",
		Slug:     "glow-studio",
		Timezone: "America/Sao_Paulo",
	}
	require.NoError(t, db.Create(&salon).Error)

	return &salon
}

func TestGetOrCreateCustomer(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateCustomer(ctx, salon.ID, "Ana", "+5511999990000", "ana@example.com")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	t.Run("same phone reuses the customer", func(t *testing.T) {
		again, err := repo.GetOrCreateCustomer(ctx, salon.ID, "Ana Maria", "+5511999990000", "other@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "Ana", again.Name)
	})

	t.Run("same phone in another salon creates a new customer", func(t *testing.T) {
		other := models.Salon{TenantID: 1, Name: "Other", Slug: "other-salon"}
		require.NoError(t, db.Create(&other).Error)

		created, err := repo.GetOrCreateCustomer(ctx, other.ID, "Ana", "+5511999990000", "")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, created.ID)
	})
}

func TestBranchExists(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	branch := models.Branch{SalonID: salon.ID, Name: "Downtown"}
	require.NoError(t, db.Create(&branch).Error)

	ok, err := repo.BranchExists(ctx, salon.ID, branch.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("branch of another salon is invisible", func(t *testing.T) {
		ok, err := repo.BranchExists(ctx, salon.ID+1, branch.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown branch", func(t *testing.T) {
		ok, err := repo.BranchExists(ctx, salon.ID, branch.ID+99)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetServiceScopedBySalon(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	svc := models.ServiceOffering{
		SalonID:     salon.ID,
		Name:        "Haircut",
		DurationMin: 30,
		PriceCents:  5000,
		Active:      true,
	}
	require.NoError(t, db.Create(&svc).Error)

	got, err := repo.GetService(ctx, salon.ID, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", got.Name)

	_, err = repo.GetService(ctx, salon.ID+1, svc.ID)
	assert.Error(t, err)
}

func TestIsWithinWorkingHours(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	staff := models.Staff{
		SalonID:      salon.ID,
		Name:         "Bia",
		Email:        "bia@example.com",
		PasswordHash: "x",
		Active:       true,
	}
	require.NoError(t, db.Create(&staff).Error)

	// Tuesday 2026-03-10.
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.WorkingHours{
		StaffID:   staff.ID,
		Weekday:   int(day.Weekday()),
		Active:    true,
		StartTime: "09:00",
		EndTime:   "18:00",
	}).Error)

	ok, err := repo.IsWithinWorkingHours(ctx, staff.ID, day.Add(10*time.Hour), day.Add(10*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsWithinWorkingHours(ctx, staff.ID, day.Add(19*time.Hour), day.Add(20*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("no schedule row means unavailable", func(t *testing.T) {
		wednesday := day.AddDate(0, 0, 1)
		ok, err := repo.IsWithinWorkingHours(ctx, staff.ID, wednesday.Add(10*time.Hour), wednesday.Add(11*time.Hour))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestListBookingsForDay(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mk := func(startHour int, status string) {
		require.NoError(t, db.Create(&models.Booking{
			SalonID:   salon.ID,
			StaffID:   1,
			StartTime: day.Add(time.Duration(startHour) * time.Hour),
			EndTime:   day.Add(time.Duration(startHour)*time.Hour + 30*time.Minute),
			Status:    status,
		}).Error)
	}

	mk(14, "scheduled")
	mk(9, "scheduled")
	mk(11, "cancelled")
	// next day, must not appear
	require.NoError(t, db.Create(&models.Booking{
		SalonID:   salon.ID,
		StaffID:   1,
		StartTime: day.AddDate(0, 0, 1).Add(10 * time.Hour),
		EndTime:   day.AddDate(0, 0, 1).Add(11 * time.Hour),
		Status:    "scheduled",
	}).Error)

	got, err := repo.ListBookingsForDay(ctx, 1, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].StartTime.Before(got[1].StartTime), "sorted by start time")
}

func TestGetBookingForStaff(t *testing.T) {
	db := testDB(t)
	salon := seedSalon(t, db)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	b := models.Booking{
		SalonID:   salon.ID,
		StaffID:   1,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(30 * time.Minute),
		Status:    "scheduled",
	}
	require.NoError(t, db.Create(&b).Error)

	got, err := repo.GetBookingForStaff(ctx, b.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repo.GetBookingForStaff(ctx, b.ID, 2)
	assert.Error(t, err)
}
