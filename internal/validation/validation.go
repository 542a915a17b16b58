package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
	ErrInvalidULID = fmt.Errorf("invalid ULID format")
	ErrInvalidDate = fmt.Errorf("invalid date, expected YYYY-MM-DD")
	ErrInvalidUser = fmt.Errorf("invalid user, expected 1-64 letters, digits, '.', '_' or '-'")
)

// Usernames end up in snapshot file names.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateULID checks if a string is a valid ULID, the id format of import previews.
func ValidateULID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidULID, id)
	}
	return nil
}

// ValidateDate checks that a string is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	return nil
}

// ValidateUsername checks the user scope sent in the X-User header.
func ValidateUsername(user string) error {
	if !usernamePattern.MatchString(user) || user == "." || user == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidUser, user)
	}
	return nil
}
