package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrMealInUse is returned when deleting a meal that is still assigned to
// one or more days; the days.meal_id reference must be cleared first.
var ErrMealInUse = errors.New("meal is still assigned to one or more days")

// IsNotFound reports whether err is a missing-record lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsForeignKeyViolation reports whether err is a referential-integrity
// failure from either supported engine.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMealInUse) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || // sqlite
		strings.Contains(msg, "violates foreign key constraint") // postgres
}
