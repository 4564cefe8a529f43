package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
)

const (
	MsgOtherUserRecord  = "You cannot get another user's record"
	MsgNoUserWithID     = "There is no user with this id"
	MsgNoUserWithThisID = "There is no user with this ID"
	MsgNoOrganisation   = "There is no organisation with this ID"
	MsgNotOwner         = "There is no organisation with this ID or you are not the owner of this organisation"
)

type OrganisationService struct {
	Store  repository.Manager
	Search OrgIndex
	Logger logrus.FieldLogger

	effects sideEffects
}

func NewOrganisationService(store repository.Manager, jobs JobPublisher, index OrgIndex, logger logrus.FieldLogger, appName string) *OrganisationService {
	return &OrganisationService{
		Store:   store,
		Search:  index,
		Logger:  logger,
		effects: sideEffects{store: store, jobs: jobs, index: index, logger: logger, appName: appName},
	}
}

// OrganisationLists groups the organisations a user belongs to and those they own.
type OrganisationLists struct {
	Org     []entity.Organisation `json:"org"`
	OwnOrgs []entity.Organisation `json:"ownOrgs"`
}

// GetUser returns the caller's own record. Asking for any other id fails
// whether or not that user exists.
func (s *OrganisationService) GetUser(ctx context.Context, caller *entity.User, id string) (entity.UserView, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || uid != caller.ID {
		return entity.UserView{}, apperror.Authorization(MsgOtherUserRecord)
	}
	u, err := s.Store.Users().FindByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.UserView{}, apperror.NotFound(MsgNoUserWithID, 0)
	}
	if err != nil {
		return entity.UserView{}, apperror.Unexpected(fmt.Errorf("get user: %w", err))
	}
	return u.View(true), nil
}

func (s *OrganisationService) ListOrganisations(ctx context.Context, caller *entity.User) (*OrganisationLists, error) {
	member, err := s.Store.Organisations().ListByMember(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("list member organisations: %w", err))
	}
	owned, err := s.Store.Organisations().ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("list owned organisations: %w", err))
	}
	return &OrganisationLists{Org: nonNil(member), OwnOrgs: nonNil(owned)}, nil
}

// GetOrganisation is readable by any authenticated caller.
func (s *OrganisationService) GetOrganisation(ctx context.Context, id string) (*entity.Organisation, error) {
	oid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, apperror.NotFound(MsgNoOrganisation, 0)
	}
	org, err := s.Store.Organisations().FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNoOrganisation, 0)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("get organisation: %w", err))
	}
	return org, nil
}

// CreateOrganisation creates an organisation owned by caller and makes caller a member.
func (s *OrganisationService) CreateOrganisation(ctx context.Context, caller *entity.User, name, description string) (*entity.Organisation, error) {
	name, err := entity.ValidateOrganisationName(name)
	if err != nil {
		return nil, err
	}
	org := &entity.Organisation{Name: name, Description: strings.TrimSpace(description), OwnerID: caller.ID}

	err = s.Store.RunInTx(ctx, func(ctx context.Context, m repository.Manager) error {
		if err := m.Organisations().Create(ctx, org); err != nil {
			return fmt.Errorf("create organisation: %w", err)
		}
		return m.Organisations().AddMember(ctx, org.ID, caller.ID)
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	s.log().WithFields(logrus.Fields{"user_id": caller.ID, "org_id": org.ID}).Info("organisation created")
	s.effects.reindex(ctx, org)
	return org, nil
}

// AddMember links the target user to an organisation the caller owns.
// Adding an existing member succeeds without change.
func (s *OrganisationService) AddMember(ctx context.Context, caller *entity.User, orgID, userID string) error {
	tid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return apperror.NotFound(MsgNoUserWithThisID, 0)
	}
	target, err := s.Store.Users().FindByID(ctx, tid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(MsgNoUserWithThisID, 0)
	}
	if err != nil {
		return apperror.Unexpected(fmt.Errorf("add member: lookup user: %w", err))
	}

	org, err := s.ownedOrganisation(ctx, caller, orgID)
	if err != nil {
		return err
	}

	err = s.Store.Organisations().AddMember(ctx, org.ID, target.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(MsgNoUserWithThisID, 0)
	}
	if err != nil {
		return apperror.Unexpected(fmt.Errorf("add member: %w", err))
	}

	s.log().WithFields(logrus.Fields{"user_id": target.ID, "org_id": org.ID, "by": caller.ID}).Info("member added")
	s.effects.memberAdded(ctx, caller, target, org)
	s.effects.reindex(ctx, org)
	return nil
}

// ListMembers returns the members of an organisation the caller owns or belongs to.
func (s *OrganisationService) ListMembers(ctx context.Context, caller *entity.User, orgID string) ([]entity.UserView, error) {
	oid, err := uuid.Parse(strings.TrimSpace(orgID))
	if err != nil {
		return nil, apperror.NotFound(MsgNotOwner, 0)
	}
	org, err := s.Store.Organisations().FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotOwner, 0)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("list members: %w", err))
	}
	if org.OwnerID != caller.ID {
		ok, err := s.Store.Organisations().IsMember(ctx, org.ID, caller.ID)
		if err != nil {
			return nil, apperror.Unexpected(fmt.Errorf("list members: membership: %w", err))
		}
		if !ok {
			return nil, apperror.NotFound(MsgNotOwner, 0)
		}
	}

	members, err := s.Store.Organisations().Members(ctx, org.ID)
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("list members: %w", err))
	}
	out := make([]entity.UserView, 0, len(members))
	for i := range members {
		out = append(out, members[i].View(true))
	}
	return out, nil
}

// SearchOrganisations searches the directory for organisations visible to caller.
func (s *OrganisationService) SearchOrganisations(ctx context.Context, caller *entity.User, q string, size int) ([]entity.Organisation, error) {
	if s.Search == nil {
		return []entity.Organisation{}, nil
	}
	res, err := s.Search.Search(ctx, caller.ID, q, size)
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("search organisations: %w", err))
	}
	return nonNil(res), nil
}

func (s *OrganisationService) ownedOrganisation(ctx context.Context, caller *entity.User, orgID string) (*entity.Organisation, error) {
	oid, err := uuid.Parse(strings.TrimSpace(orgID))
	if err != nil {
		return nil, apperror.NotFound(MsgNotOwner, 0)
	}
	org, err := s.Store.Organisations().FindOwned(ctx, oid, caller.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNotOwner, 0)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("find owned organisation: %w", err))
	}
	return org, nil
}

func (s *OrganisationService) log() logrus.FieldLogger {
	return s.effects.log()
}

func nonNil(orgs []entity.Organisation) []entity.Organisation {
	if orgs == nil {
		return []entity.Organisation{}
	}
	return orgs
}
