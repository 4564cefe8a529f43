package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/orgauth-service/config"
	"github.com/oksasatya/orgauth-service/internal/container"
	"github.com/oksasatya/orgauth-service/internal/infrastructure/search"
	"github.com/oksasatya/orgauth-service/internal/testutil"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AppName: "orgauth", Env: "test", JWTSecret: "test-secret", JWTTTL: time.Hour, CookieDomain: "localhost"}
	c := container.New(cfg, helpers.NewNopLogger(), testutil.NewStore(t),
		helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL), nil, nil, search.NewOrgDirectory(nil, "", nil))
	return &testServer{t: t, engine: NewEngine(c)}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

type session struct {
	AccessToken  string `json:"accessToken"`
	Organisation struct {
		OrgID      string `json:"orgId"`
		Name       string `json:"name"`
		OrgOwnerID string `json:"orgOwnerId"`
	} `json:"organisation"`
	User struct {
		FirstName string  `json:"firstName"`
		Email     string  `json:"email"`
		Phone     *string `json:"phone"`
	} `json:"user"`
}

func (s *testServer) register(first, email string) session {
	s.t.Helper()
	w, resp := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": first, "lastName": "B", "email": email, "password": "password1",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, resp.Message)
	var sess session
	require.NoError(s.t, json.Unmarshal(resp.Data, &sess))
	return sess
}

func TestRegisterLoginScenario(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Registration successful", resp.Message)
	var sess session
	require.NoError(t, json.Unmarshal(resp.Data, &sess))
	assert.Equal(t, "a@b.com", sess.User.Email)
	assert.Nil(t, sess.User.Phone)
	assert.Equal(t, "A's Organisation", sess.Organisation.Name)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Contains(t, w.Header().Get("Set-Cookie"), helpers.TokenCookieName+"=")

	w, resp = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "User with this email address already exists", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication failed", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login in successful", resp.Message)

	w, resp = s.do(http.MethodGet, "/api/organisations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized access. Please login your account to access this page", resp.Message)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodPost, "/auth/register", "", map[string]string{"firstName": "A"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "firstName, lastName, email, password is required field", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/register", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "firstName, lastName, email, password is required field", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.com", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Password must be at least 8 characters", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Please provide your email and password", resp.Message)

	w, resp = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ghost@b.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "There is no user with this email address", resp.Message)
}

func TestGuardAndUserRoutes(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	bob := s.register("Bob", "bob@example.com")

	w, resp := s.do(http.MethodGet, "/api/organisations", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token. Please login again", resp.Message)

	adaID := ada.Organisation.OrgOwnerID
	w, resp = s.do(http.MethodGet, "/api/users/"+adaID, ada.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User successfully retrieved", resp.Message)
	var user map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, adaID, user["userId"])
	assert.Contains(t, user, "phone")
	assert.NotContains(t, user, "password")

	w, resp = s.do(http.MethodGet, "/api/users/"+adaID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot get another user's record", resp.Message)
}

func TestOrganisationRoutes(t *testing.T) {
	s := newTestServer(t)
	ada := s.register("Ada", "ada@example.com")
	bob := s.register("Bob", "bob@example.com")
	bobID := bob.Organisation.OrgOwnerID

	w, resp := s.do(http.MethodPost, "/api/organisations", ada.AccessToken, map[string]string{"description": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Organisation must have a name", resp.Message)

	w, resp = s.do(http.MethodPost, "/api/organisations", ada.AccessToken, map[string]string{"name": "Acme", "description": "rockets"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Organisation created successfully", resp.Message)
	var org struct {
		OrgID string `json:"orgId"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &org))
	assert.Equal(t, "Acme", org.Name)

	w, resp = s.do(http.MethodGet, "/api/organisations/"+org.OrgID, bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Organisation successfully retrieved", resp.Message)

	w, resp = s.do(http.MethodGet, "/api/organisations/00000000-0000-0000-0000-000000000000", ada.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "There is no organisation with this ID", resp.Message)

	w, resp = s.do(http.MethodPost, "/api/organisations/"+org.OrgID+"/users", bob.AccessToken, map[string]string{"userId": bobID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "There is no organisation with this ID or you are not the owner of this organisation", resp.Message)

	w, resp = s.do(http.MethodPost, "/api/organisations/"+org.OrgID+"/users", ada.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "There is no user with this ID", resp.Message)

	w, resp = s.do(http.MethodGet, "/api/organisations/"+org.OrgID+"/users", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = s.do(http.MethodPost, "/api/organisations/"+org.OrgID+"/users", ada.AccessToken, map[string]string{"userId": bobID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User added to organisation successfully", resp.Message)

	w, resp = s.do(http.MethodGet, "/api/organisations", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lists struct {
		Org     []map[string]any `json:"org"`
		OwnOrgs []map[string]any `json:"ownOrgs"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &lists))
	assert.Len(t, lists.Org, 2)
	assert.Len(t, lists.OwnOrgs, 1)

	w, resp = s.do(http.MethodGet, "/api/organisations/"+org.OrgID+"/users", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members struct {
		Users []map[string]any `json:"users"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &members))
	assert.Len(t, members.Users, 2)

	w, resp = s.do(http.MethodGet, "/api/organisations/search?q=acme", ada.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"org":[]}`, string(resp.Data))

	w, resp = s.do(http.MethodGet, "/api/organisations/search?size=500", ada.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "size must be at most 50", resp.Message)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w, resp := s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sorry this route /nowhere doesn't exist", resp.Message)
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t)
	w, resp := s.do(http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", resp.Message)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w, resp := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)

	var data struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, map[string]string{"database": "up"}, data.Checks)
}
