package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
)

const (
	MsgEmailTaken          = "User with this email address already exists"
	MsgLoginRequired       = "Please provide your email and password"
	MsgNoUserWithEmail     = "There is no user with this email address"
	MsgAuthFailed          = "Authentication failed"
	MsgSessionExpired      = "Your session has expired. Please login again"
	MsgInvalidToken        = "Invalid token. Please login again"
	MsgNoUserForToken      = "There is no user found with this token"
	MsgUnauthorizedRequest = "Unauthorized access. Please login your account to access this page"
)

type AuthService struct {
	Store       repository.Manager
	JWT         *helpers.JWTManager
	Logger      logrus.FieldLogger
	PhoneRegion string

	effects sideEffects
}

func NewAuthService(store repository.Manager, jwt *helpers.JWTManager, jobs JobPublisher, index OrgIndex, logger logrus.FieldLogger, appName, phoneRegion string) *AuthService {
	return &AuthService{
		Store:       store,
		JWT:         jwt,
		Logger:      logger,
		PhoneRegion: phoneRegion,
		effects:     sideEffects{store: store, jobs: jobs, index: index, logger: logger, appName: appName},
	}
}

// Session is what a successful registration or login hands back to the client.
type Session struct {
	AccessToken  string               `json:"accessToken"`
	ExpiresAt    time.Time            `json:"-"`
	Organisation *entity.Organisation `json:"organisation,omitempty"`
	User         entity.UserView      `json:"user"`
}

// Register creates the user, their default organisation and the membership
// linking them in one transaction, then issues an access token.
func (s *AuthService) Register(ctx context.Context, in entity.Registration) (*Session, error) {
	in.Normalize()
	if err := in.CheckRequired(); err != nil {
		return nil, err
	}

	if _, err := s.Store.Users().FindByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Unexpected(fmt.Errorf("register: lookup email: %w", err))
	}

	phone, err := in.Validate(s.PhoneRegion)
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("register: hash password: %w", err))
	}

	user := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Phone:     phone,
	}
	org := &entity.Organisation{
		Name:        entity.DefaultOrganisationName(in.FirstName),
		Description: in.Description,
	}

	err = s.Store.RunInTx(ctx, func(ctx context.Context, m repository.Manager) error {
		if err := m.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		org.OwnerID = user.ID
		if err := m.Organisations().Create(ctx, org); err != nil {
			return fmt.Errorf("create organisation: %w", err)
		}
		if err := m.Organisations().AddMember(ctx, org.ID, user.ID); err != nil {
			return fmt.Errorf("link membership: %w", err)
		}
		return nil
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.Conflict(MsgEmailTaken)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("register: %w", err))
	}

	token, exp, err := s.JWT.Issue(user.ID.String())
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("register: issue token: %w", err))
	}

	s.log().WithFields(logrus.Fields{"user_id": user.ID, "org_id": org.ID}).Info("user registered")
	s.effects.welcome(ctx, user, org)
	s.effects.reindex(ctx, org)

	return &Session{AccessToken: token, ExpiresAt: exp, Organisation: org, User: user.View(false)}, nil
}

// Login checks the credentials and issues a fresh access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.Validation(MsgLoginRequired, http.StatusUnauthorized)
	}

	user, err := s.Store.Users().FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNoUserWithEmail, http.StatusUnauthorized)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("login: lookup email: %w", err))
	}

	if !helpers.CompareHashAndPassword(user.Password, password) {
		s.log().WithField("user_id", user.ID).Info("login rejected: bad password")
		return nil, apperror.Authentication(MsgAuthFailed)
	}

	token, exp, err := s.JWT.Issue(user.ID.String())
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("login: issue token: %w", err))
	}
	return &Session{AccessToken: token, ExpiresAt: exp, User: user.View(false)}, nil
}

// ResolveIdentity verifies token and loads the user it was issued for.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.Unauthenticated(MsgUnauthorizedRequest)
	}
	sub, err := s.JWT.Verify(token)
	switch {
	case errors.Is(err, helpers.ErrTokenExpired):
		return nil, apperror.Unauthenticated(MsgSessionExpired)
	case err != nil:
		return nil, apperror.Unauthenticated(MsgInvalidToken)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperror.Unauthenticated(MsgInvalidToken)
	}
	user, err := s.Store.Users().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgNoUserForToken, 0)
	}
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("resolve identity: %w", err))
	}
	return user, nil
}

func (s *AuthService) log() logrus.FieldLogger {
	return s.effects.log()
}
