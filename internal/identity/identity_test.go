package identity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" officer ")
	require.NoError(t, err)
	assert.Equal(t, RoleOfficer, r)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestParseKYCStatus(t *testing.T) {
	st, err := ParseKYCStatus("verified")
	require.NoError(t, err)
	assert.Equal(t, KYCVerified, st)

	st, err = ParseKYCStatus("")
	require.NoError(t, err)
	assert.Equal(t, KYCUnset, st)

	_, err = ParseKYCStatus("APPROVED")
	assert.ErrorIs(t, err, ErrInvalidKYCStatus)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want error
	}{
		{"citizen without status", Identity{ID: "u1", Role: RoleCitizen}, nil},
		{"admin", Identity{ID: "u2", Role: RoleAdmin}, nil},
		{"missing id", Identity{Role: RoleAdmin}, ErrMissingID},
		{"bad role", Identity{ID: "u3", Role: "GUEST"}, ErrInvalidRole},
		{"bad status", Identity{ID: "u4", Role: RoleCitizen, KYCStatus: "MAYBE"}, ErrInvalidKYCStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestValidateForLoginRequiresOfficerDepartment(t *testing.T) {
	officer := Identity{ID: "o1", Name: "R. Iyer", Role: RoleOfficer}
	assert.ErrorIs(t, officer.ValidateForLogin(), ErrMissingDepartment)

	officer.Department = "Water Supply"
	assert.NoError(t, officer.ValidateForLogin())
}

func TestJSONRejectsUnknownEnums(t *testing.T) {
	var id Identity
	err := json.Unmarshal([]byte(`{"id":"x","name":"n","role":"ROOT"}`), &id)
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = json.Unmarshal([]byte(`{"id":"x","name":"n","role":"CITIZEN","kycStatus":"DONE"}`), &id)
	assert.ErrorIs(t, err, ErrInvalidKYCStatus)
}

func TestJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Identity{ID: "c1", Name: "Asha", Role: RoleCitizen, KYCStatus: KYCPending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","name":"Asha","role":"CITIZEN","kycStatus":"PENDING"}`, string(data))
}

func TestWithKYCStatusKeepsEverythingElse(t *testing.T) {
	orig := Identity{ID: "c1", Name: "Asha", Role: RoleCitizen, Mobile: "98xxxx", KYCStatus: KYCPending}
	updated := orig.WithKYCStatus(KYCVerified)

	assert.Equal(t, KYCPending, orig.KYCStatus)
	assert.Equal(t, KYCVerified, updated.KYCStatus)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, orig.Role, updated.Role)
	assert.True(t, updated.IsVerified())
}

func TestNewAssignsID(t *testing.T) {
	a := New("A", RoleCitizen)
	b := New("B", RoleCitizen)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
