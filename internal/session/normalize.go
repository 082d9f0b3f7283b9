package session

import "time"

// Payload is the profile object the portal returns from its account-info
// and login endpoints. Every field is optional; Normalize fills the gaps.
type Payload struct {
	UserID             string `json:"user_id"`
	FirstName          string `json:"first_name"`
	MiddleName         string `json:"middle_name"`
	LastName           string `json:"last_name"`
	SchoolName         string `json:"school_name"`
	SchoolAddress      string `json:"school_address"`
	Position           string `json:"position"`
	Office             string `json:"office"`
	SectionDesignation string `json:"section_designation"`
	Email              string `json:"email"`
	ContactNumber      string `json:"contact_number"`
	RegistrationDate   string `json:"registration_date"`
	Active             *bool  `json:"active"`
	Avatar             string `json:"avatar"`
}

// Defaults carries the fallbacks Normalize may need beyond the payload
// itself: identifiers known from the login step and the prior session
// record for role stickiness.
type Defaults struct {
	// UserID from the login response, used when the profile omits it
	UserID string

	// Email the user signed in with, used when the profile omits it
	Email string

	// Prior is the previously stored record, if any. A role established
	// at login is preserved across refreshes even if the server stops
	// reporting one.
	Prior *Record

	// Now stamps registration_date when the server omits it.
	// The zero value means time.Now().
	Now time.Time
}

// Normalize builds a complete session record from a partial portal
// payload. Missing name and contact fields default to empty strings,
// descriptive fields to "Not specified", active to true, and
// registration_date to the current time. The role comes from the prior
// record when one is known, otherwise it is derived from the user ID.
//
// Normalize is idempotent: feeding a normalized record's fields back
// through it produces the same record.
func Normalize(p Payload, d Defaults) Record {
	userID := p.UserID
	if userID == "" {
		userID = d.UserID
	}

	email := p.Email
	if email == "" {
		email = d.Email
	}

	role := Role("")
	if d.Prior != nil && d.Prior.Role.Valid() {
		role = d.Prior.Role
	}
	if !role.Valid() {
		role, _ = ParseRole(userID)
	}

	registered := p.RegistrationDate
	if registered == "" {
		now := d.Now
		if now.IsZero() {
			now = time.Now()
		}
		registered = now.UTC().Format(time.RFC3339)
	}

	active := true
	if p.Active != nil {
		active = *p.Active
	}

	return Record{
		UserID:             userID,
		Role:               role,
		FirstName:          p.FirstName,
		MiddleName:         p.MiddleName,
		LastName:           p.LastName,
		SchoolName:         orNotSpecified(p.SchoolName),
		SchoolAddress:      orNotSpecified(p.SchoolAddress),
		Position:           orNotSpecified(p.Position),
		Office:             orNotSpecified(p.Office),
		SectionDesignation: orNotSpecified(p.SectionDesignation),
		Email:              email,
		ContactNumber:      p.ContactNumber,
		RegistrationDate:   registered,
		Active:             active,
		Avatar:             p.Avatar,
	}
}

// AsPayload converts a record back into the payload shape. Useful for
// round-trip checks and for re-normalizing after store/reload cycles.
func (r *Record) AsPayload() Payload {
	active := r.Active
	return Payload{
		UserID:             r.UserID,
		FirstName:          r.FirstName,
		MiddleName:         r.MiddleName,
		LastName:           r.LastName,
		SchoolName:         r.SchoolName,
		SchoolAddress:      r.SchoolAddress,
		Position:           r.Position,
		Office:             r.Office,
		SectionDesignation: r.SectionDesignation,
		Email:              r.Email,
		ContactNumber:      r.ContactNumber,
		RegistrationDate:   r.RegistrationDate,
		Active:             &active,
		Avatar:             r.Avatar,
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}
