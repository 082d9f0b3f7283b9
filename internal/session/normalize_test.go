package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		userID     string
		want       Role
		recognized bool
	}{
		{"FOCAL-2024-0007", RoleOffice, true},
		{"DIV-FOCAL-12", RoleOffice, true},
		{"ADMIN-0001", RoleAdmin, true},
		{"FOCAL-ADMIN-1", RoleOffice, true}, // FOCAL wins over ADMIN
		{"SCH-2024-1234", RoleSchool, false},
		{"", RoleSchool, false},
	}

	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			role, recognized := ParseRole(tt.userID)
			assert.Equal(t, tt.want, role)
			assert.Equal(t, tt.recognized, recognized)
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	rec := Normalize(Payload{UserID: "SCH-2024-1234"}, Defaults{Now: now})

	assert.Equal(t, "SCH-2024-1234", rec.UserID)
	assert.Equal(t, RoleSchool, rec.Role)
	assert.Equal(t, "", rec.FirstName)
	assert.Equal(t, "", rec.MiddleName)
	assert.Equal(t, "", rec.LastName)
	assert.Equal(t, "", rec.Email)
	assert.Equal(t, "", rec.ContactNumber)
	assert.Equal(t, NotSpecified, rec.SchoolName)
	assert.Equal(t, NotSpecified, rec.SchoolAddress)
	assert.Equal(t, NotSpecified, rec.Position)
	assert.Equal(t, NotSpecified, rec.Office)
	assert.Equal(t, NotSpecified, rec.SectionDesignation)
	assert.Equal(t, "2025-03-14T09:26:53Z", rec.RegistrationDate)
	assert.True(t, rec.Active)
	assert.Equal(t, "", rec.Avatar)
}

func TestNormalizeExplicitInactive(t *testing.T) {
	inactive := false
	rec := Normalize(Payload{UserID: "SCH-1", Active: &inactive}, Defaults{})
	assert.False(t, rec.Active)
}

func TestNormalizeFallbacks(t *testing.T) {
	rec := Normalize(Payload{}, Defaults{
		UserID: "FOCAL-77",
		Email:  "focal@deped.gov.ph",
	})

	assert.Equal(t, "FOCAL-77", rec.UserID)
	assert.Equal(t, "focal@deped.gov.ph", rec.Email)
	assert.Equal(t, RoleOffice, rec.Role)
}

func TestNormalizeRoleIsSticky(t *testing.T) {
	prior := &Record{UserID: "SCH-1", Role: RoleAdmin}

	// The payload's user ID would classify as school, but the role
	// established at login wins.
	rec := Normalize(Payload{UserID: "SCH-1"}, Defaults{Prior: prior})
	assert.Equal(t, RoleAdmin, rec.Role)
}

func TestNormalizeIgnoresInvalidPriorRole(t *testing.T) {
	prior := &Record{UserID: "ADMIN-9", Role: Role("superuser")}

	rec := Normalize(Payload{UserID: "ADMIN-9"}, Defaults{Prior: prior})
	assert.Equal(t, RoleAdmin, rec.Role)
}

func TestNormalizeIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first := Normalize(Payload{
		UserID:     "SCH-2024-1234",
		FirstName:  "Maria",
		LastName:   "Santos",
		Email:      "maria.santos@deped.gov.ph",
		SchoolName: "Biñan Elementary School",
	}, Defaults{Now: now})

	// Store/reload cycle through JSON, then normalize again.
	data, err := json.Marshal(first)
	require.NoError(t, err)

	var reloaded Record
	require.NoError(t, json.Unmarshal(data, &reloaded))

	second := Normalize(reloaded.AsPayload(), Defaults{Prior: &reloaded, Now: now})
	assert.Equal(t, first, second)
}

func TestRecordValid(t *testing.T) {
	assert.False(t, (*Record)(nil).Valid())
	assert.False(t, (&Record{}).Valid())
	assert.False(t, (&Record{UserID: "SCH-1"}).Valid())
	assert.False(t, (&Record{UserID: "SCH-1", Role: "teacher"}).Valid())
	assert.True(t, (&Record{UserID: "SCH-1", Role: RoleSchool}).Valid())
}

func TestFullName(t *testing.T) {
	rec := &Record{FirstName: "Maria", MiddleName: "Cruz", LastName: "Santos"}
	assert.Equal(t, "Maria Cruz Santos", rec.FullName())

	rec.MiddleName = ""
	assert.Equal(t, "Maria Santos", rec.FullName())
}
