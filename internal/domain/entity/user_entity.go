package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the aggregate root for the identity domain.
// Password holds the bcrypt hash and is never serialised.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"userId"`
	FirstName string    `bun:"first_name,notnull" json:"firstName"`
	LastName  string    `bun:"last_name,notnull" json:"lastName"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Password  string    `bun:"password_hash,notnull" json:"-"`
	Phone     string    `bun:"phone,nullzero" json:"phone"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// UserView is the client-facing projection of a user
type UserView struct {
	UserID    string  `json:"userId,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

// View projects u without credentials. withID controls whether userId is included.
func (u *User) View(withID bool) UserView {
	v := UserView{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	if withID {
		v.UserID = u.ID.String()
	}
	if u.Phone != "" {
		p := u.Phone
		v.Phone = &p
	}
	return v
}
