package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Organisation is a named group with exactly one owner, fixed at creation.
type Organisation struct {
	bun.BaseModel `bun:"table:organisations,alias:org"`

	ID          uuid.UUID `bun:"org_id,pk,type:uuid" json:"orgId"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description"`
	OwnerID     uuid.UUID `bun:"org_owner_id,notnull,type:uuid" json:"orgOwnerId"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// DefaultOrganisationName names the organisation created at registration
func DefaultOrganisationName(firstName string) string {
	return firstName + "'s Organisation"
}

// Membership links a user to an organisation. It has no identity of its own
// and is independent of ownership.
type Membership struct {
	bun.BaseModel `bun:"table:memberships,alias:mbr"`

	UserID    uuid.UUID `bun:"user_id,pk,type:uuid"`
	OrgID     uuid.UUID `bun:"org_id,pk,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
