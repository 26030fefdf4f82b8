package handlers

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolationOn(t *testing.T) {
	t.Run("postgres slug constraint", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_salons_slug"}
		assert.True(t, uniqueViolationOn(err, "slug"))
		assert.False(t, uniqueViolationOn(err, "email"))
	})

	t.Run("postgres email constraint", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_staffs_email"}
		assert.True(t, uniqueViolationOn(err, "email"))
		assert.False(t, uniqueViolationOn(err, "slug"))
	})

	t.Run("other postgres errors do not match", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_salons_slug"}
		assert.False(t, uniqueViolationOn(err, "slug"))
	})

	t.Run("wrapped postgres error still matches", func(t *testing.T) {
		err := gorm.ErrInvalidTransaction
		wrapped := errors.Join(err, &pgconn.PgError{Code: "23505", ConstraintName: "idx_salons_slug"})
		assert.True(t, uniqueViolationOn(wrapped, "slug"))
	})

	t.Run("sqlite phrasing", func(t *testing.T) {
		err := errors.New("UNIQUE constraint failed: salons.slug")
		assert.True(t, uniqueViolationOn(err, "slug"))
		assert.False(t, uniqueViolationOn(err, "email"))
	})

	t.Run("unrelated errors", func(t *testing.T) {
		assert.False(t, uniqueViolationOn(errors.New("connection refused"), "slug"))
		assert.False(t, uniqueViolationOn(nil, "slug"))
	})
}
