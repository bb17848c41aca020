package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"planejao/internal/adapter/http/dto/request"
	"planejao/internal/adapter/http/dto/response"
	"planejao/internal/domain/entities"
)

func (c *Client) ListMembers(ctx context.Context) ([]entities.Member, error) {
	return c.memberList(ctx, "/members")
}

func (c *Client) ListMembersByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error) {
	return c.memberList(ctx, "/members/role/"+url.PathEscape(string(role)))
}

func (c *Client) GetMember(ctx context.Context, id string) (entities.Member, error) {
	var res response.MemberResponse
	if err := c.do(ctx, http.MethodGet, "/members/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return entities.Member{}, err
	}
	return res.ToMember(), nil
}

func (c *Client) CreateMember(ctx context.Context, name string, role entities.MemberRole) (entities.Member, error) {
	var res response.MemberResponse
	body := request.CreateMemberRequest{Name: name, Role: string(role)}
	if err := c.do(ctx, http.MethodPost, "/members", nil, body, &res); err != nil {
		return entities.Member{}, err
	}
	return res.ToMember(), nil
}

func (c *Client) memberList(ctx context.Context, path string) ([]entities.Member, error) {
	var res []response.MemberResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	out := make([]entities.Member, 0, len(res))
	for _, m := range res {
		out = append(out, m.ToMember())
	}
	return out, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := request.FormatDate(*t)
	return &s
}
