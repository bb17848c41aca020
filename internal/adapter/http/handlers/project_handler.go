package handlers

import (
	"errors"
	"net/http"

	request "planejao/internal/adapter/http/dto/request"
	response "planejao/internal/adapter/http/dto/response"
	"planejao/internal/domain/policy"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/usecase"
	"planejao/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProjectPayload = pkg.NewDomainErrorSimple("INVALID_PROJECT_INPUT", "Invalid project payload", http.StatusBadRequest)
	errInvalidQuery          = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameters", http.StatusBadRequest)
)

// validationErrors are rule failures on the submitted project or team. They are
// reported with the rule text so a form can show it next to the field.
var validationErrors = []error{
	policy.ErrNameRequired,
	policy.ErrDescriptionRequired,
	policy.ErrInvalidBudget,
	policy.ErrStartDateRequired,
	policy.ErrPlannedEndDateRequired,
	policy.ErrInvalidSchedule,
	policy.ErrInvalidActualEndDate,
	policy.ErrManagerRequired,
	policy.ErrMemberCountOutOfRange,
	policy.ErrManagerRoleRequired,
	policy.ErrStaffRoleRequired,
	policy.ErrDuplicateMember,
}

// ProjectHandler handles HTTP requests for projects and their teams.
type ProjectHandler struct {
	usecase usecase.IProjectUseCase
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc}
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page    query  int     false  "zero-based page"
// @Param        size    query  int     false  "page size (1-100)"
// @Param        status  query  string  false  "status filter"
// @Param        search  query  string  false  "name/description search"
// @Success      200  {object}  response.ProjectPageResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var q request.ListProjectsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
		return
	}

	page, err := h.usecase.List(c.Request.Context(), q.ToQuery())
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectPage(page))
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path  string  true  "project id"
// @Success      200  {object}  response.ProjectResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")
	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// CreateProject godoc
// @Summary      Create a project
// @Description  New projects start under review; risk is computed from budget and schedule.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  request.CreateProjectRequest  true  "project"
// @Success      201  {object}  response.ProjectResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var payload request.CreateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	draft, err := payload.ToDraft()
	if err != nil {
		appErr := pkg.NewDomainError("INVALID_DATE", err.Error(), err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProject(p))
}

// UpdateProject godoc
// @Summary      Update a project
// @Description  Partial update; team changes go through the members endpoints and status through PATCH /status.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "project id"
// @Param        body  body  request.UpdateProjectRequest  true  "fields to change"
// @Success      200  {object}  response.ProjectResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		appErr := pkg.NewDomainError("INVALID_DATE", err.Error(), err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "update", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// DeleteProject godoc
// @Summary      Delete a project
// @Tags         projects
// @Param        id   path  string  true  "project id"
// @Success      204
// @Failure      409  {object}  pkg.HTTPError
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Move a project to another status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "project id"
// @Param        body  body  request.ChangeStatusRequest  true  "target status"
// @Success      200  {object}  response.ProjectResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /projects/{id}/status [patch]
func (h *ProjectHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	var payload request.ChangeStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.ChangeStatus(c.Request.Context(), id, payload.ResolveStatus())
	if err != nil {
		h.fail(c, "change-status", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// AddMember godoc
// @Summary      Add a member to the project team
// @Tags         projects
// @Produce      json
// @Param        id         path  string  true  "project id"
// @Param        member_id  path  string  true  "member id"
// @Success      200  {object}  response.ProjectResponse
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /projects/{id}/members/{member_id} [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id := c.Param("id")
	p, err := h.usecase.AddMember(c.Request.Context(), id, c.Param("member_id"))
	if err != nil {
		h.fail(c, "add-member", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// RemoveMember godoc
// @Summary      Remove a member from the project team
// @Tags         projects
// @Produce      json
// @Param        id         path  string  true  "project id"
// @Param        member_id  path  string  true  "member id"
// @Success      200  {object}  response.ProjectResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /projects/{id}/members/{member_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id := c.Param("id")
	p, err := h.usecase.RemoveMember(c.Request.Context(), id, c.Param("member_id"))
	if err != nil {
		h.fail(c, "remove-member", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

func (h *ProjectHandler) fail(c *gin.Context, op, projectID string, err error) {
	appErr := mapProjectError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logging.Logger.Errorf("[project][handler] %s failed project_id=%s err=%v", op, projectID, err)
	} else {
		logging.Logger.Debugf("[project][handler] %s rejected project_id=%s code=%s", op, projectID, appErr.Code)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapProjectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID), errors.Is(err, usecase.ErrInvalidMemberID),
		errors.Is(err, usecase.ErrInvalidPage), errors.Is(err, policy.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMemberNotFound):
		return pkg.NewDomainErrorSimple("MEMBER_NOT_FOUND", "Member not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrManagerNotFound):
		return pkg.NewDomainErrorSimple("MANAGER_NOT_FOUND", "Manager not found", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrMemberNotAssigned):
		return pkg.NewDomainErrorSimple("MEMBER_NOT_ASSIGNED", "Member is not part of this project", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMemberAlreadyAssigned):
		return pkg.NewDomainErrorSimple("MEMBER_ALREADY_ASSIGNED", "Member already assigned to this project", http.StatusConflict)
	case errors.Is(err, policy.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Status change not allowed", http.StatusConflict)
	case errors.Is(err, policy.ErrProjectNotDeletable):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_DELETABLE", "Projects started, in progress or closed cannot be deleted", http.StatusConflict)
	case errors.Is(err, policy.ErrMemberAtCapacity):
		return pkg.NewDomainError("MEMBER_AT_CAPACITY", err.Error(), err, http.StatusUnprocessableEntity)
	case isValidationError(err):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
