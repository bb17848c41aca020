package handlers

import (
	"errors"
	"net/http"

	request "planejao/internal/adapter/http/dto/request"
	response "planejao/internal/adapter/http/dto/response"
	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/usecase"
	"planejao/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidMemberPayload = pkg.NewDomainErrorSimple("INVALID_MEMBER_INPUT", "Invalid member payload", http.StatusBadRequest)
)

// MemberHandler handles HTTP requests for the people directory.

type MemberHandler struct {
	usecase usecase.IMemberUseCase
}

func NewMemberHandler(uc usecase.IMemberUseCase) *MemberHandler {
	return &MemberHandler{usecase: uc}
}

// ListMembers godoc
// @Summary  List every member
// @Tags     members
// @Produce  json
// @Success  200  {array}  response.MemberResponse
// @Router   /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.usecase.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromMembers(members))
}

// ListMembersByRole godoc
// @Summary  List members with a role
// @Tags     members
// @Produce  json
// @Param    role  path  string  true  "funcionario, gerente or terceirizado"
// @Success  200  {array}   response.MemberResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /members/role/{role} [get]
func (h *MemberHandler) ListMembersByRole(c *gin.Context) {
	members, err := h.usecase.ListByRole(c.Request.Context(), entities.MemberRole(c.Param("role")))
	if err != nil {
		h.fail(c, "list-by-role", err)
		return
	}
	c.JSON(http.StatusOK, response.FromMembers(members))
}

// GetMember godoc
// @Summary  Get a member
// @Tags     members
// @Produce  json
// @Param    id   path  string  true  "member id"
// @Success  200  {object}  response.MemberResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	m, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromMember(m))
}

// CreateMember godoc
// @Summary  Register a member
// @Tags     members
// @Accept   json
// @Produce  json
// @Param    body  body  request.CreateMemberRequest  true  "member"
// @Success  201  {object}  response.MemberResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var payload request.CreateMemberRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMemberPayload.HTTPStatus, errInvalidMemberPayload.ToHTTPError())
		return
	}

	m, err := h.usecase.Create(c.Request.Context(), payload.Name, payload.ResolveRole())
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromMember(m))
}

func (h *MemberHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapMemberError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logging.Logger.Errorf("[member][handler] %s failed err=%v", op, err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapMemberError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMemberID), errors.Is(err, usecase.ErrInvalidMemberName), errors.Is(err, usecase.ErrInvalidMemberRole):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMemberNotFound):
		return pkg.NewDomainErrorSimple("MEMBER_NOT_FOUND", "Member not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
