package entity

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/oksasatya/orgauth-service/pkg/apperror"
)

const (
	MinPasswordLength = 8
	// bcrypt rejects longer input
	MaxPasswordBytes = 72
)

const (
	MsgRegistrationRequired = "firstName, lastName, email, password is required field"
	MsgOrganisationName     = "Organisation must have a name"
	MsgPasswordLength       = "Password must be at least 8 characters"
	MsgPasswordTooLong      = "Password must be at most 72 bytes"
	MsgFirstNameRequired    = "First name is a required field"
	MsgLastNameRequired     = "Last name is a required field"
)

// Registration is the raw registration input
type Registration struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	Description string
}

// Normalize trims every field except the password.
func (r *Registration) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Description = strings.TrimSpace(r.Description)
}

// CheckRequired fails when any of firstName, lastName, email or password is empty.
func (r Registration) CheckRequired() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" {
		return apperror.Validation(MsgRegistrationRequired, 0)
	}
	return nil
}

// Validate runs the field rules in order and returns the first failure as a
// validation error. On success the phone number is returned in E.164 form.
func (r Registration) Validate(phoneRegion string) (string, error) {
	rules := []struct {
		value any
		rules []validation.Rule
	}{
		{r.FirstName, []validation.Rule{validation.Required.Error(MsgFirstNameRequired)}},
		{r.LastName, []validation.Rule{validation.Required.Error(MsgLastNameRequired)}},
		{r.Email, []validation.Rule{
			validation.Required.Error(MsgRegistrationRequired),
			is.Email.Error(fmt.Sprintf("%s is not a valid email address", r.Email)),
		}},
		{r.Password, []validation.Rule{
			validation.RuneLength(MinPasswordLength, 0).Error(MsgPasswordLength),
			validation.Length(0, MaxPasswordBytes).Error(MsgPasswordTooLong),
		}},
	}
	for _, f := range rules {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return "", apperror.Validation(err.Error(), 0)
		}
	}
	return NormalizePhone(r.Phone, phoneRegion)
}

var errPhone = errors.New("invalid phone number")

// NormalizePhone returns phone in E.164 form. Empty input is allowed and stays empty.
func NormalizePhone(phone, region string) (string, error) {
	if phone == "" {
		return "", nil
	}
	var out string
	err := validation.Validate(phone, validation.By(func(v any) error {
		num, err := phonenumbers.Parse(v.(string), region)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return errPhone
		}
		out = phonenumbers.Format(num, phonenumbers.E164)
		return nil
	}))
	if err != nil {
		return "", apperror.Validation(fmt.Sprintf("%s is not a valid phone number", phone), 0)
	}
	return out, nil
}

// ValidateOrganisationName trims name and requires it to be non-empty.
func ValidateOrganisationName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return "", apperror.Validation(MsgOrganisationName, 0)
	}
	return name, nil
}
