package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// OrganisationRepository covers organisations and the membership join.
type OrganisationRepository interface {
	Create(ctx context.Context, o *entity.Organisation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organisation, error)
	// FindOwned returns the organisation only when ownerID owns it.
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Organisation, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Organisation, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Organisation, error)
	// AddMember is idempotent; ownership is never touched.
	AddMember(ctx context.Context, orgID, userID uuid.UUID) error
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
	Members(ctx context.Context, orgID uuid.UUID) ([]entity.User, error)
}

// Manager vends repositories bound to one database handle.
// RunInTx hands fn a Manager bound to a transaction; fn's error rolls it back.
type Manager interface {
	Users() UserRepository
	Organisations() OrganisationRepository
	RunInTx(ctx context.Context, fn func(ctx context.Context, m Manager) error) error
}
