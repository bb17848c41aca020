package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planejao/internal/adapter/http/handlers/mocks"
	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/usecase"
	"planejao/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newProjectRouter(t *testing.T) (*gin.Engine, *mocks.MockIProjectUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIProjectUseCase(ctrl)
	h := NewProjectHandler(uc)

	r := gin.New()
	r.GET("/v1/projects", h.ListProjects)
	r.GET("/v1/projects/:id", h.GetProject)
	r.POST("/v1/projects", h.CreateProject)
	r.PUT("/v1/projects/:id", h.UpdateProject)
	r.DELETE("/v1/projects/:id", h.DeleteProject)
	r.PATCH("/v1/projects/:id/status", h.ChangeStatus)
	r.POST("/v1/projects/:id/members/:member_id", h.AddMember)
	r.DELETE("/v1/projects/:id/members/:member_id", h.RemoveMember)
	return r, uc
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return body
}

func project(status entities.ProjectStatus) entities.Project {
	return entities.Project{
		ID:             "p1",
		Name:           "ERP",
		Description:    "Migração",
		StartDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PlannedEndDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		Budget:         150000,
		Status:         status,
		Risk:           entities.RiskMedio,
		ManagerID:      "g1",
		MemberIDs:      []string{"m1"},
	}
}

func TestProjectHandler_ListProjects(t *testing.T) {
	t.Run("bad page", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodGet, "/v1/projects?page=abc", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("passes query through", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().List(gomock.Any(), usecase.ListProjectsQuery{Page: 1, Size: 5, Status: entities.ProjectStatusPlanejado, Search: "erp"}).
			Return(usecase.ProjectPage{Content: []entities.Project{project(entities.ProjectStatusPlanejado)}, TotalElements: 6, TotalPages: 2, Size: 5, Number: 1}, nil)

		w := doJSON(r, http.MethodGet, "/v1/projects?page=1&size=5&status=planejado&search=erp", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Content       []map[string]any `json:"content"`
			TotalElements int              `json:"total_elements"`
			TotalPages    int              `json:"total_pages"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Content) != 1 || body.TotalElements != 6 || body.TotalPages != 2 || body.Content[0]["status"] != "PLANEJADO" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestProjectHandler_GetProject(t *testing.T) {
	r, uc := newProjectRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Project{}, usecase.ErrProjectNotFound)

	w := doJSON(r, http.MethodGet, "/v1/projects/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if decodeError(t, w).Code != "PROJECT_NOT_FOUND" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestProjectHandler_CreateProject(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects", `{"name":"ERP","start_date":"15/01/2024"}`)
		if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "INVALID_DATE" {
			t.Fatalf("expected INVALID_DATE, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Project{}, errors.Join(policy.ErrNameRequired, policy.ErrInvalidBudget))

		w := doJSON(r, http.MethodPost, "/v1/projects", `{}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if decodeError(t, w).Code != "VALIDATION_ERROR" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(policy.Draft{})).DoAndReturn(
			func(_ context.Context, d policy.Draft) (entities.Project, error) {
				if d.Name != "ERP" || d.Budget != 150000 || d.StartDate.Format("2006-01-02") != "2024-01-15" || len(d.MemberIDs) != 1 {
					t.Fatalf("unexpected draft: %+v", d)
				}
				return project(entities.ProjectStatusEmAnalise), nil
			},
		)

		body := `{"name":"ERP","description":"Migração","start_date":"2024-01-15","planned_end_date":"2024-04-15","budget":150000,"manager_id":"g1","member_ids":["m1"]}`
		w := doJSON(r, http.MethodPost, "/v1/projects", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	r, uc := newProjectRouter(t)
	uc.EXPECT().Update(gomock.Any(), "p1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, in usecase.UpdateProjectInput) (entities.Project, error) {
			if in.Budget == nil || *in.Budget != 600000 || in.Name != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			p := project(entities.ProjectStatusPlanejado)
			p.Budget = 600000
			p.Risk = entities.RiskAlto
			return p, nil
		},
	)

	w := doJSON(r, http.MethodPut, "/v1/projects/p1", `{"budget":600000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	t.Run("guarded", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Delete(gomock.Any(), "p1").Return(fmt.Errorf("%w: EM_ANDAMENTO", policy.ErrProjectNotDeletable))

		w := doJSON(r, http.MethodDelete, "/v1/projects/p1", "")
		if w.Code != http.StatusConflict || decodeError(t, w).Code != "PROJECT_NOT_DELETABLE" {
			t.Fatalf("expected PROJECT_NOT_DELETABLE, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Delete(gomock.Any(), "p1").Return(nil)

		w := doJSON(r, http.MethodDelete, "/v1/projects/p1", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestProjectHandler_ChangeStatus(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/projects/p1/status", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("transition rejected", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().ChangeStatus(gomock.Any(), "p1", entities.ProjectStatusEncerrado).
			Return(entities.Project{}, fmt.Errorf("%w: EM_ANALISE -> ENCERRADO", policy.ErrInvalidStatusTransition))

		w := doJSON(r, http.MethodPatch, "/v1/projects/p1/status", `{"status":"encerrado"}`)
		if w.Code != http.StatusConflict || decodeError(t, w).Code != "INVALID_STATUS_TRANSITION" {
			t.Fatalf("expected INVALID_STATUS_TRANSITION, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().ChangeStatus(gomock.Any(), "p1", entities.ProjectStatusPlanejado).Return(project(entities.ProjectStatusPlanejado), nil)

		w := doJSON(r, http.MethodPatch, "/v1/projects/p1/status", `{"status":"PLANEJADO"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestProjectHandler_Members(t *testing.T) {
	cases := []struct {
		name   string
		method string
		err    error
		status int
		code   string
	}{
		{name: "add at capacity", method: http.MethodPost, err: fmt.Errorf("%w: m2 has 3", policy.ErrMemberAtCapacity), status: http.StatusUnprocessableEntity, code: "MEMBER_AT_CAPACITY"},
		{name: "add duplicate", method: http.MethodPost, err: usecase.ErrMemberAlreadyAssigned, status: http.StatusConflict, code: "MEMBER_ALREADY_ASSIGNED"},
		{name: "add unknown member", method: http.MethodPost, err: usecase.ErrMemberNotFound, status: http.StatusNotFound, code: "MEMBER_NOT_FOUND"},
		{name: "remove last", method: http.MethodDelete, err: policy.ErrMemberCountOutOfRange, status: http.StatusUnprocessableEntity, code: "VALIDATION_ERROR"},
		{name: "remove not assigned", method: http.MethodDelete, err: usecase.ErrMemberNotAssigned, status: http.StatusNotFound, code: "MEMBER_NOT_ASSIGNED"},
		{name: "repository failure", method: http.MethodDelete, err: errors.New("db"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, uc := newProjectRouter(t)
			if tc.method == http.MethodPost {
				uc.EXPECT().AddMember(gomock.Any(), "p1", "m2").Return(entities.Project{}, tc.err)
			} else {
				uc.EXPECT().RemoveMember(gomock.Any(), "p1", "m2").Return(entities.Project{}, tc.err)
			}

			w := doJSON(r, tc.method, "/v1/projects/p1/members/m2", "")
			if w.Code != tc.status || decodeError(t, w).Code != tc.code {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.code, w.Code, w.Body.String())
			}
		})
	}

	t.Run("add success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		p := project(entities.ProjectStatusPlanejado)
		p.MemberIDs = append(p.MemberIDs, "m2")
		uc.EXPECT().AddMember(gomock.Any(), "p1", "m2").Return(p, nil)

		w := doJSON(r, http.MethodPost, "/v1/projects/p1/members/m2", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
