package entity

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/orgauth-service/pkg/apperror"
)

func validRegistration() Registration {
	return Registration{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "password1"}
}

func TestRegistration_Normalize(t *testing.T) {
	r := Registration{FirstName: "  Ada ", LastName: " L", Email: " ada@example.com ", Password: " pass word ", Phone: " +2349010006600 "}
	r.Normalize()
	assert.Equal(t, "Ada", r.FirstName)
	assert.Equal(t, "L", r.LastName)
	assert.Equal(t, "ada@example.com", r.Email)
	assert.Equal(t, " pass word ", r.Password)
	assert.Equal(t, "+2349010006600", r.Phone)
}

func TestRegistration_CheckRequired(t *testing.T) {
	require.NoError(t, validRegistration().CheckRequired())

	blank := []func(*Registration){
		func(r *Registration) { r.FirstName = "" },
		func(r *Registration) { r.LastName = "" },
		func(r *Registration) { r.Email = "" },
		func(r *Registration) { r.Password = "" },
	}
	for _, mutate := range blank {
		r := validRegistration()
		mutate(&r)
		err := r.CheckRequired()
		ae, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, ae.Kind)
		assert.Equal(t, http.StatusUnprocessableEntity, ae.Code)
		assert.Equal(t, MsgRegistrationRequired, ae.Message)
	}
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Registration)
		wantMsg string
	}{
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, "not-an-email is not a valid email address"},
		{"short password", func(r *Registration) { r.Password = "short" }, MsgPasswordLength},
		{"long password", func(r *Registration) { r.Password = strings.Repeat("a", MaxPasswordBytes+1) }, MsgPasswordTooLong},
		{"long multibyte password", func(r *Registration) { r.Password = strings.Repeat("é", 37) }, MsgPasswordTooLong},
		{"bad phone", func(r *Registration) { r.Phone = "12" }, "12 is not a valid phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			_, err := r.Validate("")
			ae, ok := apperror.As(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, apperror.KindValidation, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestRegistration_ValidatePhone(t *testing.T) {
	r := validRegistration()
	r.Phone = "+2349010006600"
	phone, err := r.Validate("")
	require.NoError(t, err)
	assert.Equal(t, "+2349010006600", phone)

	r.Phone = ""
	phone, err = r.Validate("")
	require.NoError(t, err)
	assert.Empty(t, phone)

	r.Phone = "(650) 253-0000"
	phone, err = r.Validate("US")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", phone)
}

func TestValidateOrganisationName(t *testing.T) {
	name, err := ValidateOrganisationName("  Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)

	_, err = ValidateOrganisationName("   ")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUserView_HidesPassword(t *testing.T) {
	u := &User{ID: uuid.New(), FirstName: "A", LastName: "B", Email: "a@b.com", Password: "$2a$12$hash"}

	v := u.View(false)
	assert.Empty(t, v.UserID)
	assert.Nil(t, v.Phone)

	u.Phone = "+2349010006600"
	v = u.View(true)
	assert.Equal(t, u.ID.String(), v.UserID)
	require.NotNil(t, v.Phone)
	assert.Equal(t, "+2349010006600", *v.Phone)
}

func TestDefaultOrganisationName(t *testing.T) {
	assert.Equal(t, "A's Organisation", DefaultOrganisationName("A"))
}

func TestRegistration_ValidatePasswordAtLimit(t *testing.T) {
	r := validRegistration()
	r.Password = strings.Repeat("a", MaxPasswordBytes)
	_, err := r.Validate("")
	require.NoError(t, err)
}
