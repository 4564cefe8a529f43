package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/orgauth-service/internal/application"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/response"
	"github.com/oksasatya/orgauth-service/pkg/validation"
)

type OrganisationHandler struct {
	Svc *application.OrganisationService
}

func NewOrganisationHandler(svc *application.OrganisationService) *OrganisationHandler {
	return &OrganisationHandler{Svc: svc}
}

type createOrganisationRequest struct {
	Name        string `json:"name" binding:"max=200"`
	Description string `json:"description" binding:"max=500"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"max=200"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

func (h *OrganisationHandler) List(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	lists, err := h.Svc.ListOrganisations(c.Request.Context(), u)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organisations successfully retrieved", lists)
}

func (h *OrganisationHandler) Get(c *gin.Context) {
	org, err := h.Svc.GetOrganisation(c.Request.Context(), c.Param("orgId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organisation successfully retrieved", gin.H{"org": org})
}

func (h *OrganisationHandler) Create(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req createOrganisationRequest
	if !bindJSON(c, &req) {
		return
	}
	org, err := h.Svc.CreateOrganisation(c.Request.Context(), u, req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organisation created successfully", org)
}

func (h *OrganisationHandler) AddMember(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req addMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.AddMember(c.Request.Context(), u, c.Param("orgId"), req.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "User added to organisation successfully")
}

func (h *OrganisationHandler) Members(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	members, err := h.Svc.ListMembers(c.Request.Context(), u, c.Param("orgId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Members successfully retrieved", gin.H{"users": members})
}

func (h *OrganisationHandler) Search(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.Validation(validation.Message(err), http.StatusBadRequest))
		return
	}
	orgs, err := h.Svc.SearchOrganisations(c.Request.Context(), u, q.Q, q.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organisations successfully retrieved", gin.H{"org": orgs})
}
