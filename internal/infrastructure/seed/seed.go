// Package seed loads YAML fixtures into the repositories at startup.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/usecase/interfaces"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Fixture is the on-disk seed document.
type Fixture struct {
	Members  []MemberFixture  `yaml:"members"`
	Projects []ProjectFixture `yaml:"projects"`
}

type MemberFixture struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// ProjectFixture carries dates as YYYY-MM-DD strings. Risk is always derived.
type ProjectFixture struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	StartDate      string   `yaml:"start_date"`
	PlannedEndDate string   `yaml:"planned_end_date"`
	ActualEndDate  string   `yaml:"actual_end_date"`
	Budget         float64  `yaml:"budget"`
	Status         string   `yaml:"status"`
	ManagerID      string   `yaml:"manager_id"`
	MemberIDs      []string `yaml:"member_ids"`
}

// Result counts the records written by Apply. Records already present are skipped.
type Result struct {
	Members  int
	Projects int
	Skipped  int
}

// Load reads and parses the fixture file at path.
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document and validates every record.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parsing seed file: %w", err)
	}
	for _, m := range f.Members {
		if _, err := m.toMember(time.Time{}); err != nil {
			return Fixture{}, err
		}
	}
	for _, p := range f.Projects {
		if _, err := p.toProject(time.Time{}); err != nil {
			return Fixture{}, err
		}
	}
	return f, nil
}

// Apply writes members first, then projects, so team references resolve.
func Apply(ctx context.Context, f Fixture, projects interfaces.IProjectRepository, members interfaces.IMemberRepository, now time.Time) (Result, error) {
	var res Result

	for _, mf := range f.Members {
		m, err := mf.toMember(now)
		if err != nil {
			return res, err
		}
		existing, err := members.GetByID(ctx, m.ID)
		if err != nil {
			return res, fmt.Errorf("seed member %s: %w", m.ID, err)
		}
		if existing.ID != "" {
			res.Skipped++
			continue
		}
		if _, err := members.Create(ctx, m); err != nil {
			return res, fmt.Errorf("seed member %s: %w", m.ID, err)
		}
		res.Members++
	}

	for _, pf := range f.Projects {
		p, err := pf.toProject(now)
		if err != nil {
			return res, err
		}
		existing, err := projects.GetByID(ctx, p.ID)
		if err != nil {
			return res, fmt.Errorf("seed project %s: %w", p.ID, err)
		}
		if existing.ID != "" {
			res.Skipped++
			continue
		}
		if _, err := projects.Create(ctx, p); err != nil {
			return res, fmt.Errorf("seed project %s: %w", p.ID, err)
		}
		res.Projects++
	}

	logging.Logger.Infof("[seed] applied members=%d projects=%d skipped=%d", res.Members, res.Projects, res.Skipped)
	return res, nil
}

func (m MemberFixture) toMember(now time.Time) (entities.Member, error) {
	role := entities.MemberRole(strings.ToLower(strings.TrimSpace(m.Role)))
	if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Name) == "" {
		return entities.Member{}, fmt.Errorf("seed member %q: id and name are required", m.ID)
	}
	if !role.IsValid() {
		return entities.Member{}, fmt.Errorf("seed member %s: unknown role %q", m.ID, m.Role)
	}
	return entities.Member{ID: m.ID, Name: m.Name, Role: role, CreatedAt: now}, nil
}

func (p ProjectFixture) toProject(now time.Time) (entities.Project, error) {
	if strings.TrimSpace(p.ID) == "" {
		return entities.Project{}, fmt.Errorf("seed project %q: id is required", p.Name)
	}
	status := entities.ProjectStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
	if status == "" {
		status = entities.ProjectStatusEmAnalise
	}
	if !status.IsValid() {
		return entities.Project{}, fmt.Errorf("seed project %s: unknown status %q", p.ID, p.Status)
	}

	start, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		return entities.Project{}, fmt.Errorf("seed project %s start_date: %w", p.ID, err)
	}
	plannedEnd, err := time.Parse(dateLayout, p.PlannedEndDate)
	if err != nil {
		return entities.Project{}, fmt.Errorf("seed project %s planned_end_date: %w", p.ID, err)
	}
	var actualEnd *time.Time
	if p.ActualEndDate != "" {
		d, err := time.Parse(dateLayout, p.ActualEndDate)
		if err != nil {
			return entities.Project{}, fmt.Errorf("seed project %s actual_end_date: %w", p.ID, err)
		}
		actualEnd = &d
	}

	draft := policy.Draft{
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      start,
		PlannedEndDate: plannedEnd,
		ActualEndDate:  actualEnd,
		Budget:         p.Budget,
		ManagerID:      p.ManagerID,
		MemberIDs:      p.MemberIDs,
	}
	if err := policy.ValidateDraft(draft); err != nil {
		return entities.Project{}, fmt.Errorf("seed project %s: %w", p.ID, err)
	}

	return entities.Project{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      start,
		PlannedEndDate: plannedEnd,
		ActualEndDate:  actualEnd,
		Budget:         p.Budget,
		Status:         status,
		Risk:           policy.CalculateRisk(p.Budget, start, plannedEnd),
		ManagerID:      p.ManagerID,
		MemberIDs:      append([]string(nil), p.MemberIDs...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
