package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/usecase/interfaces"
)

const dateLayout = "2006-01-02"

const projectColumns = `id, name, description, start_date, planned_end_date, actual_end_date,
	budget, status, risk, manager_id, created_at, updated_at`

// ProjectRepository stores projects in the projects table and their teams in
// project_members, ordered by insertion position.
type ProjectRepository struct {
	db *sql.DB
}

var _ interfaces.IProjectRepository = (*ProjectRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProjectRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Project{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, projectArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Project{}, fmt.Errorf("project %s: %w", p.ID, ErrAlreadyExists)
		}
		return entities.Project{}, fmt.Errorf("insert project: %w", err)
	}
	if err := insertTeam(ctx, tx, p.ID, p.MemberIDs); err != nil {
		return entities.Project{}, err
	}
	if err := tx.Commit(); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Project{}, nil
		}
		return entities.Project{}, err
	}

	teams, err := r.teams(ctx, `SELECT project_id, member_id FROM project_members WHERE project_id = ? ORDER BY position`, id)
	if err != nil {
		return entities.Project{}, err
	}
	p.MemberIDs = teams[p.ID]
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter interfaces.ProjectFilter) ([]entities.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY start_date, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	items := []entities.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	teams, err := r.teams(ctx, `SELECT project_id, member_id FROM project_members ORDER BY project_id, position`)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].MemberIDs = teams[items[i].ID]
	}
	return items, nil
}

// Update replaces the stored row and team. A missing project yields a zero Project.
func (r *ProjectRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Project{}, err
	}
	defer func() { _ = tx.Rollback() }()

	args := projectArgs(p)
	res, err := tx.ExecContext(ctx, `UPDATE projects SET
		name = ?, description = ?, start_date = ?, planned_end_date = ?, actual_end_date = ?,
		budget = ?, status = ?, risk = ?, manager_id = ?, updated_at = ?
		WHERE id = ?`,
		args[1], args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[11], p.ID)
	if err != nil {
		return entities.Project{}, fmt.Errorf("update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entities.Project{}, err
	}
	if n == 0 {
		return entities.Project{}, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, p.ID); err != nil {
		return entities.Project{}, fmt.Errorf("clear team: %w", err)
	}
	if err := insertTeam(ctx, tx, p.ID, p.MemberIDs); err != nil {
		return entities.Project{}, err
	}
	if err := tx.Commit(); err != nil {
		return entities.Project{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProjectRepository) ActiveAssignments(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pm.member_id, COUNT(*)
		FROM project_members pm JOIN projects p ON p.id = pm.project_id
		WHERE p.status NOT IN (?, ?)
		GROUP BY pm.member_id`,
		string(entities.ProjectStatusEncerrado), string(entities.ProjectStatusCancelado))
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *ProjectRepository) teams(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var projectID, memberID string
		if err := rows.Scan(&projectID, &memberID); err != nil {
			return nil, err
		}
		out[projectID] = append(out[projectID], memberID)
	}
	return out, rows.Err()
}

func insertTeam(ctx context.Context, tx *sql.Tx, projectID string, memberIDs []string) error {
	for i, id := range memberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, member_id, position) VALUES (?, ?, ?)`,
			projectID, id, i); err != nil {
			return fmt.Errorf("insert team member %s: %w", id, err)
		}
	}
	return nil
}

func projectArgs(p entities.Project) []any {
	var actualEnd sql.NullString
	if p.ActualEndDate != nil {
		actualEnd = sql.NullString{String: p.ActualEndDate.UTC().Format(dateLayout), Valid: true}
	}
	return []any{
		p.ID,
		p.Name,
		p.Description,
		p.StartDate.UTC().Format(dateLayout),
		p.PlannedEndDate.UTC().Format(dateLayout),
		actualEnd,
		p.Budget,
		string(p.Status),
		string(p.Risk),
		p.ManagerID,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	}
}

func scanProject(row rowScanner) (entities.Project, error) {
	var (
		p                    entities.Project
		start, plannedEnd    string
		actualEnd            sql.NullString
		status, risk         string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &plannedEnd, &actualEnd,
		&p.Budget, &status, &risk, &p.ManagerID, &createdAt, &updatedAt); err != nil {
		return entities.Project{}, err
	}

	var err error
	if p.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return entities.Project{}, fmt.Errorf("project %s start_date: %w", p.ID, err)
	}
	if p.PlannedEndDate, err = time.Parse(dateLayout, plannedEnd); err != nil {
		return entities.Project{}, fmt.Errorf("project %s planned_end_date: %w", p.ID, err)
	}
	if actualEnd.Valid {
		d, err := time.Parse(dateLayout, actualEnd.String)
		if err != nil {
			return entities.Project{}, fmt.Errorf("project %s actual_end_date: %w", p.ID, err)
		}
		p.ActualEndDate = &d
	}
	p.Status = entities.ProjectStatus(status)
	p.Risk = entities.RiskLevel(risk)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}
