package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Matches the partial unique index created in server.go. A violation here
// means two bookings raced for the same (date, time_slot).
const slotConstraintName = "uidx_appointments_date_slot_active"

func IsSlotTaken(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == slotConstraintName
	}
	return false
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
