package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"planejao/internal/domain/entities"
	"planejao/internal/usecase/interfaces"
)

type MemberRepository struct {
	db *sql.DB
}

var _ interfaces.IMemberRepository = (*MemberRepository)(nil)

func (r *MemberRepository) Create(ctx context.Context, m entities.Member) (entities.Member, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO members (id, name, role, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, string(m.Role), toMillis(m.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Member{}, fmt.Errorf("member %s: %w", m.ID, ErrAlreadyExists)
		}
		return entities.Member{}, fmt.Errorf("insert member: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (entities.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, role, created_at FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Member{}, nil
	}
	return m, err
}

func (r *MemberRepository) List(ctx context.Context) ([]entities.Member, error) {
	return r.query(ctx, `SELECT id, name, role, created_at FROM members ORDER BY name`)
}

func (r *MemberRepository) ListByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error) {
	return r.query(ctx, `SELECT id, name, role, created_at FROM members WHERE role = ? ORDER BY name`, string(role))
}

func (r *MemberRepository) query(ctx context.Context, query string, args ...any) ([]entities.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	items := []entities.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func scanMember(row rowScanner) (entities.Member, error) {
	var (
		m         entities.Member
		role      string
		createdAt int64
	)
	if err := row.Scan(&m.ID, &m.Name, &role, &createdAt); err != nil {
		return entities.Member{}, err
	}
	m.Role = entities.MemberRole(role)
	m.CreatedAt = fromMillis(createdAt)
	return m, nil
}
