package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/usecase/interfaces"
	mock_interfaces "planejao/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	closedEnd := day(t, "2024-03-01")
	lateEnd := day(t, "2024-05-20")

	projects := []entities.Project{
		{ID: "1", Status: entities.ProjectStatusEncerrado, Risk: entities.RiskBaixo, Budget: 100000,
			StartDate: day(t, "2024-01-01"), PlannedEndDate: day(t, "2024-03-15"), ActualEndDate: &closedEnd,
			ManagerID: "g1", MemberIDs: []string{"m1", "m2"}},
		{ID: "2", Status: entities.ProjectStatusEncerrado, Risk: entities.RiskMedio, Budget: 200000,
			StartDate: day(t, "2024-02-01"), PlannedEndDate: day(t, "2024-05-01"), ActualEndDate: &lateEnd,
			ManagerID: "g1", MemberIDs: []string{"m2"}},
		{ID: "3", Status: entities.ProjectStatusEmAndamento, Risk: entities.RiskAlto, Budget: 600000,
			StartDate: day(t, "2024-01-01"), PlannedEndDate: day(t, "2024-05-01"),
			ManagerID: "g2", MemberIDs: []string{"m3"}},
		{ID: "4", Status: entities.ProjectStatusCancelado, Risk: entities.RiskBaixo, Budget: 100000,
			StartDate: day(t, "2024-01-01"), PlannedEndDate: day(t, "2024-02-01"),
			ManagerID: "g2", MemberIDs: []string{"m1"}},
	}

	r := BuildReport(projects, now)

	if r.TotalProjects != 4 || r.ActiveProjects != 1 || r.ClosedProjects != 2 {
		t.Fatalf("unexpected counters: %+v", r)
	}
	if r.CountByStatus[entities.ProjectStatusEncerrado] != 2 || r.CountByRisk[entities.RiskBaixo] != 2 {
		t.Fatalf("unexpected breakdowns: %+v %+v", r.CountByStatus, r.CountByRisk)
	}
	if r.BudgetByStatus[entities.ProjectStatusEncerrado] != 300000 || r.TotalBudget != 1000000 || r.AverageBudget != 250000 {
		t.Fatalf("unexpected budgets: %+v", r)
	}
	if r.UniqueMembers != 5 {
		t.Fatalf("expected 5 unique people, got %d", r.UniqueMembers)
	}
	// project 2 closed late, project 3 is running past its plan
	if r.DelayedProjects != 2 {
		t.Fatalf("expected 2 delayed, got %d", r.DelayedProjects)
	}
	// (60 + 109) / 2
	if r.AverageClosedDurationDays != 84.5 {
		t.Fatalf("expected 84.5 days, got %v", r.AverageClosedDurationDays)
	}
	if math.Abs(r.SuccessRate-66.666) > 0.01 {
		t.Fatalf("expected ~66.67%% success, got %v", r.SuccessRate)
	}
}

func TestBuildReport_Monthly(t *testing.T) {
	now := time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	projects := []entities.Project{
		{ID: "old", StartDate: day(t, "2023-12-31"), Budget: 999},
		{ID: "a", StartDate: day(t, "2024-01-01"), Budget: 100000},
		{ID: "b", StartDate: day(t, "2024-01-31"), Budget: 50000},
		{ID: "c", StartDate: day(t, "2024-04-10"), Budget: 250000},
		{ID: "d", StartDate: day(t, "2024-06-30"), Budget: 10000},
		{ID: "future", StartDate: day(t, "2024-07-01"), Budget: 1},
	}

	r := BuildReport(projects, now)

	if len(r.Monthly) != MonthlyWindow {
		t.Fatalf("expected %d months, got %d", MonthlyWindow, len(r.Monthly))
	}
	want := []struct {
		month    string
		projects int
		budget   float64
	}{
		{"2024-01", 2, 150000},
		{"2024-02", 0, 0},
		{"2024-03", 0, 0},
		{"2024-04", 1, 250000},
		{"2024-05", 0, 0},
		{"2024-06", 1, 10000},
	}
	for i, w := range want {
		got := r.Monthly[i]
		if got.Month.Format("2006-01") != w.month || got.Month.Day() != 1 {
			t.Fatalf("month %d: expected %s, got %v", i, w.month, got.Month)
		}
		if got.Projects != w.projects || got.Budget != w.budget {
			t.Fatalf("%s: expected %d projects / %v, got %d / %v", w.month, w.projects, w.budget, got.Projects, got.Budget)
		}
	}
}

func TestBuildReport_MonthlyAcrossYear(t *testing.T) {
	r := BuildReport([]entities.Project{{ID: "a", StartDate: day(t, "2023-10-05"), Budget: 1}}, day(t, "2024-02-10"))
	if r.Monthly[0].Month.Format("2006-01") != "2023-09" || r.Monthly[5].Month.Format("2006-01") != "2024-02" {
		t.Fatalf("unexpected window: %v .. %v", r.Monthly[0].Month, r.Monthly[5].Month)
	}
	if r.Monthly[1].Projects != 1 {
		t.Fatalf("expected the October project in the second month, got %+v", r.Monthly)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil, time.Now())
	if r.TotalProjects != 0 || r.AverageBudget != 0 || r.SuccessRate != 0 || r.AverageClosedDurationDays != 0 {
		t.Fatalf("expected zero report, got %+v", r)
	}
	if r.CountByStatus == nil || r.CountByRisk == nil {
		t.Fatalf("expected initialized maps")
	}
	if len(r.Monthly) != MonthlyWindow {
		t.Fatalf("expected empty months to be listed, got %d", len(r.Monthly))
	}
}

func TestReportUseCase_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProjectRepository(ctrl)
	uc := NewReportUseCase(repo)

	repo.EXPECT().List(gomock.Any(), interfaces.ProjectFilter{}).Return(nil, errors.New("db"))

	if _, err := uc.Generate(context.Background()); err == nil || err.Error() != "db" {
		t.Fatalf("expected db error, got %v", err)
	}
}
