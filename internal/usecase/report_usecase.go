package usecase

import (
	"context"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/domain/policy"
	"planejao/internal/usecase/interfaces"
)

// IReportUseCase builds the portfolio report shown on the reports view.
type IReportUseCase interface {
	Generate(ctx context.Context) (entities.PortfolioReport, error)
}

type ReportUseCase struct {
	repo interfaces.IProjectRepository
	now  func() time.Time
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(repo interfaces.IProjectRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, now: time.Now}
}

func (u *ReportUseCase) Generate(ctx context.Context) (entities.PortfolioReport, error) {
	projects, err := u.repo.List(ctx, interfaces.ProjectFilter{})
	if err != nil {
		return entities.PortfolioReport{}, err
	}
	return BuildReport(projects, u.now().UTC()), nil
}

// MonthlyWindow is the number of calendar months in PortfolioReport.Monthly.
const MonthlyWindow = 6

// BuildReport aggregates projects into a PortfolioReport as of now.
func BuildReport(projects []entities.Project, now time.Time) entities.PortfolioReport {
	r := entities.PortfolioReport{
		CountByStatus:  map[entities.ProjectStatus]int{},
		BudgetByStatus: map[entities.ProjectStatus]float64{},
		CountByRisk:    map[entities.RiskLevel]int{},
		TotalProjects:  len(projects),
		GeneratedAt:    now,
	}

	today := dateOnly(now)
	people := map[string]struct{}{}
	monthly, monthIndex := monthlyBuckets(now)
	var closedWithEnd, closedDays, cancelled int

	for _, p := range projects {
		r.CountByStatus[p.Status]++
		r.BudgetByStatus[p.Status] += p.Budget
		r.CountByRisk[p.Risk]++
		r.TotalBudget += p.Budget

		if p.ManagerID != "" {
			people[p.ManagerID] = struct{}{}
		}
		for _, id := range p.MemberIDs {
			people[id] = struct{}{}
		}

		if policy.IsRunning(p.Status) {
			r.ActiveProjects++
		}
		switch p.Status {
		case entities.ProjectStatusEncerrado:
			r.ClosedProjects++
			if p.ActualEndDate != nil {
				closedWithEnd++
				closedDays += policy.DurationDays(p.StartDate, *p.ActualEndDate)
			}
		case entities.ProjectStatusCancelado:
			cancelled++
		}
		if policy.IsProjectDelayed(p, today) {
			r.DelayedProjects++
		}
		if i, ok := monthIndex[monthKey(p.StartDate)]; ok {
			monthly[i].Projects++
			monthly[i].Budget += p.Budget
		}
	}
	r.Monthly = monthly

	r.UniqueMembers = len(people)
	if closedWithEnd > 0 {
		r.AverageClosedDurationDays = float64(closedDays) / float64(closedWithEnd)
	}
	if r.TotalProjects > 0 {
		r.AverageBudget = r.TotalBudget / float64(r.TotalProjects)
	}
	if finished := r.ClosedProjects + cancelled; finished > 0 {
		r.SuccessRate = float64(r.ClosedProjects) / float64(finished) * 100
	}
	return r
}

// monthlyBuckets returns empty points for the MonthlyWindow months ending with
// now's month, plus an index from "YYYY-MM" to position.
func monthlyBuckets(now time.Time) ([]entities.MonthlyPoint, map[string]int) {
	y, m, _ := now.Date()
	points := make([]entities.MonthlyPoint, 0, MonthlyWindow)
	index := make(map[string]int, MonthlyWindow)
	for i := MonthlyWindow - 1; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		index[monthKey(first)] = len(points)
		points = append(points, entities.MonthlyPoint{Month: first})
	}
	return points, index
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
