package session

import "strings"

// NotSpecified is the default value for descriptive profile fields the
// portal may omit.
const NotSpecified = "Not specified"

// Role classifies the signed-in user and selects which portal endpoints
// and landing routes apply.
type Role string

const (
	// RoleSchool is a school-side user (default classification)
	RoleSchool Role = "school"
	// RoleOffice is a division-office focal person
	RoleOffice Role = "office"
	// RoleAdmin is a division-office administrator
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known classifications.
func (r Role) Valid() bool {
	switch r {
	case RoleSchool, RoleOffice, RoleAdmin:
		return true
	}
	return false
}

// ParseRole derives a role from the user ID pattern issued by the portal.
//
// IDs containing "FOCAL" belong to office focal persons, IDs containing
// "ADMIN" to administrators. Anything else classifies as school. The
// second return value reports whether the pattern was recognized; callers
// can log the fallback instead of silently trusting it.
func ParseRole(userID string) (Role, bool) {
	switch {
	case strings.Contains(userID, "FOCAL"):
		return RoleOffice, true
	case strings.Contains(userID, "ADMIN"):
		return RoleAdmin, true
	default:
		return RoleSchool, false
	}
}

// Record is the current-user session record. Exactly one record is kept
// by the session manager at a time; its presence is the client-side
// signal of "logged in". Authentication itself is carried by a portal
// cookie the client holds but never reads.
type Record struct {
	UserID             string `json:"user_id"`
	Role               Role   `json:"role"`
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
	Active             bool   `json:"active"`
	Avatar             string `json:"avatar,omitempty"`
}

// Valid reports whether the record is usable as a session: it must carry
// a user ID and a recognized role. Anything less is treated as corrupted.
func (r *Record) Valid() bool {
	return r != nil && r.UserID != "" && r.Role.Valid()
}

// FullName joins the non-empty name parts with single spaces.
func (r *Record) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
