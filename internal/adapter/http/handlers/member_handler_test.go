package handlers

import (
	"errors"
	"net/http"
	"testing"

	"planejao/internal/adapter/http/handlers/mocks"
	"planejao/internal/domain/entities"
	"planejao/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newMemberRouter(t *testing.T) (*gin.Engine, *mocks.MockIMemberUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIMemberUseCase(ctrl)
	h := NewMemberHandler(uc)

	r := gin.New()
	r.GET("/v1/members", h.ListMembers)
	r.GET("/v1/members/role/:role", h.ListMembersByRole)
	r.GET("/v1/members/:id", h.GetMember)
	r.POST("/v1/members", h.CreateMember)
	return r, uc
}

func TestMemberHandler_ListMembers(t *testing.T) {
	r, uc := newMemberRouter(t)
	uc.EXPECT().List(gomock.Any()).Return([]entities.Member{{ID: "m1", Name: "Ana", Role: entities.MemberRoleFuncionario, ActiveProjects: 2}}, nil)

	w := doJSON(r, http.MethodGet, "/v1/members", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got == "" || got[0] != '[' {
		t.Fatalf("expected json array, got %s", got)
	}
}

func TestMemberHandler_ListMembersByRole(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		r, uc := newMemberRouter(t)
		uc.EXPECT().ListByRole(gomock.Any(), entities.MemberRole("diretor")).Return(nil, usecase.ErrInvalidMemberRole)

		w := doJSON(r, http.MethodGet, "/v1/members/role/diretor", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		r, uc := newMemberRouter(t)
		uc.EXPECT().ListByRole(gomock.Any(), entities.MemberRoleGerente).Return([]entities.Member{}, nil)

		w := doJSON(r, http.MethodGet, "/v1/members/role/gerente", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestMemberHandler_GetMember(t *testing.T) {
	r, uc := newMemberRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "m9").Return(entities.Member{}, usecase.ErrMemberNotFound)

	w := doJSON(r, http.MethodGet, "/v1/members/m9", "")
	if w.Code != http.StatusNotFound || decodeError(t, w).Code != "MEMBER_NOT_FOUND" {
		t.Fatalf("expected MEMBER_NOT_FOUND, got %d %s", w.Code, w.Body.String())
	}
}

func TestMemberHandler_CreateMember(t *testing.T) {
	t.Run("missing role", func(t *testing.T) {
		r, _ := newMemberRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/members", `{"name":"Ana"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		r, uc := newMemberRouter(t)
		uc.EXPECT().Create(gomock.Any(), "Ana", entities.MemberRoleGerente).Return(entities.Member{}, errors.New("db"))

		w := doJSON(r, http.MethodPost, "/v1/members", `{"name":"Ana","role":"Gerente"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newMemberRouter(t)
		uc.EXPECT().Create(gomock.Any(), "Ana", entities.MemberRoleGerente).Return(entities.Member{ID: "g1", Name: "Ana", Role: entities.MemberRoleGerente}, nil)

		w := doJSON(r, http.MethodPost, "/v1/members", `{"name":"Ana","role":"gerente"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}
