package account

import (
	"strings"

	"github.com/doctrack/trackctl/internal/errors"
	"github.com/doctrack/trackctl/internal/portal"
	"github.com/doctrack/trackctl/internal/session"
)

// Staged holds the editable profile fields while the user is in edit
// mode. Only these five fields ever travel in an update request; the
// descriptive fields (school, position, office) are server-owned.
type Staged struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	ContactNumber string
}

// FromRecord seeds the staged fields from a session record.
// "Not specified" placeholders become empty inputs so the user is not
// forced to clear them before typing.
func FromRecord(rec *session.Record) Staged {
	return Staged{
		FirstName:     blankIfNotSpecified(rec.FirstName),
		MiddleName:    blankIfNotSpecified(rec.MiddleName),
		LastName:      blankIfNotSpecified(rec.LastName),
		Email:         rec.Email,
		ContactNumber: blankIfNotSpecified(rec.ContactNumber),
	}
}

// Validate checks the staged fields before any network call is made.
// The returned error message is shown to the user as-is.
func (s Staged) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" || strings.TrimSpace(s.LastName) == "" {
		return errors.NewProfileValidationError("First and last name are required.")
	}
	if email := strings.TrimSpace(s.Email); email == "" || !strings.Contains(email, "@") {
		return errors.NewProfileValidationError("Please enter a valid email.")
	}
	if strings.TrimSpace(s.ContactNumber) == "" {
		return errors.NewProfileValidationError("Please enter a contact number.")
	}
	return nil
}

// Request converts the staged fields into the wire shape, trimming
// whitespace. The middle name may legitimately be empty.
func (s Staged) Request() portal.UpdateRequest {
	return portal.UpdateRequest{
		FirstName:     strings.TrimSpace(s.FirstName),
		MiddleName:    strings.TrimSpace(s.MiddleName),
		LastName:      strings.TrimSpace(s.LastName),
		Email:         strings.TrimSpace(s.Email),
		ContactNumber: strings.TrimSpace(s.ContactNumber),
	}
}

func blankIfNotSpecified(v string) string {
	if v == session.NotSpecified {
		return ""
	}
	return v
}
