package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/orgauth-service/internal/application"
	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/internal/interface/middleware"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/response"
)

type UserHandler struct {
	Svc *application.OrganisationService
}

func NewUserHandler(svc *application.OrganisationService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// caller returns the guard's user or records an unauthenticated error.
func caller(c *gin.Context) (*entity.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperror.Unauthenticated(application.MsgUnauthorizedRequest))
	}
	return u, ok
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	view, err := h.Svc.GetUser(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User successfully retrieved", view)
}
