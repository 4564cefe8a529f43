package postgres

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/oksasatya/orgauth-service/internal/domain/repository"
)

// Store is the bun-backed repository.Manager. A Store created inside RunInTx
// is bound to the transaction and reuses it for nested calls.
type Store struct {
	db  *bun.DB
	idb bun.IDB
	tx  bool
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db, idb: db}
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.idb)
}

func (s *Store) Organisations() repository.OrganisationRepository {
	return NewOrganisationRepository(s.idb)
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, m repository.Manager) error) error {
	if s.tx {
		return fn(ctx, s)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &Store{db: s.db, idb: tx, tx: true})
	})
}

// Ping checks the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying bun handle.
func (s *Store) DB() *bun.DB { return s.db }

var _ repository.Manager = (*Store)(nil)
