package response

import (
	"time"

	"planejao/internal/domain/entities"
)

type MemberResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	ActiveProjects int       `json:"active_projects"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromMember(m entities.Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Role:           string(m.Role),
		ActiveProjects: m.ActiveProjects,
		CreatedAt:      m.CreatedAt,
	}
}

func FromMembers(members []entities.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, FromMember(m))
	}
	return out
}

func (r MemberResponse) ToMember() entities.Member {
	return entities.Member{
		ID:             r.ID,
		Name:           r.Name,
		Role:           entities.MemberRole(r.Role),
		ActiveProjects: r.ActiveProjects,
		CreatedAt:      r.CreatedAt,
	}
}
