package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
)

type UserRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u, assigning an id and timestamps when unset.
// A taken email yields repository.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.db.NewInsert().Model(u).Exec(ctx)
	return mapError(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "?TableAlias.user_id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "?TableAlias.email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	err := r.db.NewSelect().Model(u).Where(where, arg).Limit(1).Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
