package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/domain/repository"
	"github.com/oksasatya/orgauth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/orgauth-service/internal/testutil"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
	"github.com/oksasatya/orgauth-service/pkg/mailer"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := body.(mailer.EmailJob); ok {
		f.jobs = append(f.jobs, job)
	}
	return f.err
}

type indexed struct {
	org     entity.Organisation
	members []uuid.UUID
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    []indexed
	results []entity.Organisation
	err     error
	viewer  uuid.UUID
	query   string
}

func (f *fakeIndex) IndexOrganisation(_ context.Context, org *entity.Organisation, memberIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, indexed{org: *org, members: memberIDs})
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, viewerID uuid.UUID, q string, _ int) ([]entity.Organisation, error) {
	f.viewer, f.query = viewerID, q
	return f.results, f.err
}

func (f *fakeIndex) last() indexed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[len(f.docs)-1]
}

type fixture struct {
	store *postgres.Store
	jwt   *helpers.JWTManager
	pub   *fakePublisher
	index *fakeIndex
	auth  *AuthService
	orgs  *OrganisationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: testutil.NewStore(t),
		jwt:   helpers.NewJWTManager("test-secret", time.Hour),
		pub:   &fakePublisher{},
		index: &fakeIndex{},
	}
	logger := helpers.NewNopLogger()
	f.auth = NewAuthService(f.store, f.jwt, f.pub, f.index, logger, "Orgauth", "")
	f.orgs = NewOrganisationService(f.store, f.pub, f.index, logger, "Orgauth")
	return f
}

// seedUser inserts a user directly; the password hash is not a real bcrypt hash.
func (f *fixture) seedUser(t *testing.T, first, email string) *entity.User {
	t.Helper()
	u := &entity.User{FirstName: first, LastName: "Test", Email: email, Password: "x"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) seedOrg(t *testing.T, owner *entity.User, name string) *entity.Organisation {
	t.Helper()
	ctx := context.Background()
	o := &entity.Organisation{Name: name, OwnerID: owner.ID}
	require.NoError(t, f.store.Organisations().Create(ctx, o))
	require.NoError(t, f.store.Organisations().AddMember(ctx, o.ID, owner.ID))
	return o
}

func assertAppError(t *testing.T, err error, kind apperror.Kind, code int, msg string) {
	t.Helper()
	ae, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %v", err)
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, code, ae.Code)
	assert.Equal(t, msg, ae.Message)
}

// failingOrgStore behaves like the wrapped manager except that creating an
// organisation fails, including inside transactions.
type failingOrgStore struct {
	repository.Manager
	err error
}

type failingOrgs struct {
	repository.OrganisationRepository
	err error
}

func (f failingOrgs) Create(context.Context, *entity.Organisation) error { return f.err }

func (m failingOrgStore) Organisations() repository.OrganisationRepository {
	return failingOrgs{OrganisationRepository: m.Manager.Organisations(), err: m.err}
}

func (m failingOrgStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Manager) error) error {
	return m.Manager.RunInTx(ctx, func(ctx context.Context, tx repository.Manager) error {
		return fn(ctx, failingOrgStore{Manager: tx, err: m.err})
	})
}
