package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
)

type OrganisationRepository struct {
	db bun.IDB
}

func NewOrganisationRepository(db bun.IDB) *OrganisationRepository {
	return &OrganisationRepository{db: db}
}

func (r *OrganisationRepository) Create(ctx context.Context, o *entity.Organisation) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	_, err := r.db.NewInsert().Model(o).Exec(ctx)
	return mapError(err)
}

func (r *OrganisationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organisation, error) {
	o := &entity.Organisation{}
	err := r.db.NewSelect().Model(o).
		Where("?TableAlias.org_id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

func (r *OrganisationRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Organisation, error) {
	o := &entity.Organisation{}
	err := r.db.NewSelect().Model(o).
		Where("?TableAlias.org_id = ?", id).
		Where("?TableAlias.org_owner_id = ?", ownerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

func (r *OrganisationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Organisation, error) {
	orgs := make([]entity.Organisation, 0)
	err := r.db.NewSelect().Model(&orgs).
		Where("?TableAlias.org_owner_id = ?", ownerID).
		OrderExpr("?TableAlias.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orgs, nil
}

func (r *OrganisationRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Organisation, error) {
	orgs := make([]entity.Organisation, 0)
	err := r.db.NewSelect().Model(&orgs).
		Join("JOIN memberships AS mbr ON mbr.org_id = ?TableAlias.org_id").
		Where("mbr.user_id = ?", userID).
		OrderExpr("mbr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orgs, nil
}

func (r *OrganisationRepository) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	m := &entity.Membership{UserID: userID, OrgID: orgID, CreatedAt: time.Now().UTC()}
	_, err := r.db.NewInsert().Model(m).On("CONFLICT DO NOTHING").Exec(ctx)
	return mapError(err)
}

func (r *OrganisationRepository) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	ok, err := r.db.NewSelect().Model((*entity.Membership)(nil)).
		Where("?TableAlias.org_id = ?", orgID).
		Where("?TableAlias.user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, mapError(err)
	}
	return ok, nil
}

func (r *OrganisationRepository) Members(ctx context.Context, orgID uuid.UUID) ([]entity.User, error) {
	users := make([]entity.User, 0)
	err := r.db.NewSelect().Model(&users).
		Join("JOIN memberships AS mbr ON mbr.user_id = ?TableAlias.user_id").
		Where("mbr.org_id = ?", orgID).
		OrderExpr("mbr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

var _ repository.OrganisationRepository = (*OrganisationRepository)(nil)
