package request

import (
	"strings"

	"planejao/internal/domain/entities"
)

type CreateMemberRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

func (r CreateMemberRequest) ResolveRole() entities.MemberRole {
	return entities.MemberRole(strings.ToLower(strings.TrimSpace(r.Role)))
}
