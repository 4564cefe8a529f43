package templates

import (
	"time"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithOrganisation(id, name string) Option {
	return func(d *EmailData) {
		d.OrgID = id
		d.OrgName = name
	}
}

func WithAddedBy(name string) Option {
	return func(d *EmailData) { d.AddedBy = name }
}

func newBaseEmailData(appName, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, Type: typ, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWelcomeData is sent after registration with the user's default organisation.
func NewWelcomeData(appName, name, email string, opts ...Option) map[string]any {
	return ToMap(newBaseEmailData(appName, Welcome, name, email, opts...))
}

// NewMemberAddedData is sent to a user who was added to an organisation.
func NewMemberAddedData(appName, name, email string, opts ...Option) map[string]any {
	return ToMap(newBaseEmailData(appName, MemberAdded, name, email, opts...))
}
