package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/internal/application"
	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
	"github.com/oksasatya/orgauth-service/pkg/response"
	"github.com/oksasatya/orgauth-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  logrus.FieldLogger
	Cookies *helpers.SessionCookie
}

func NewAuthHandler(svc *application.AuthService, logger logrus.FieldLogger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewSessionCookie(cookieDomain, cookieSecure)}
}

// Presence is checked by the service so clients get its messages.
type registerRequest struct {
	FirstName   string `json:"firstName" binding:"max=100"`
	LastName    string `json:"lastName" binding:"max=100"`
	Email       string `json:"email" binding:"max=254"`
	Password    string `json:"password" binding:"pwdmax"`
	Phone       string `json:"phone" binding:"max=32"`
	Description string `json:"description" binding:"max=500"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// bindJSON binds the body into req. An empty body leaves req zero-valued.
func bindJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(apperror.Validation(validation.Message(err), http.StatusBadRequest))
		return false
	}
	return true
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Svc.Register(c.Request.Context(), entity.Registration{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.Set(c, sess.AccessToken, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, "Registration successful", sess)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.Set(c, sess.AccessToken, sess.ExpiresAt)
	response.Success(c, http.StatusOK, "Login in successful", sess)
}

// Logout drops the token cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logout successful")
}
