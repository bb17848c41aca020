package entities

import "time"

// PortfolioReport aggregates KPIs over every project in the portfolio.
type PortfolioReport struct {
	CountByStatus             map[ProjectStatus]int     `json:"count_by_status"`
	BudgetByStatus            map[ProjectStatus]float64 `json:"budget_by_status"`
	CountByRisk               map[RiskLevel]int         `json:"count_by_risk"`
	AverageClosedDurationDays float64                   `json:"average_closed_duration_days"`
	UniqueMembers             int                       `json:"unique_members"`

	TotalProjects   int     `json:"total_projects"`
	ActiveProjects  int     `json:"active_projects"`
	ClosedProjects  int     `json:"closed_projects"`
	DelayedProjects int     `json:"delayed_projects"`
	TotalBudget     float64 `json:"total_budget"`
	AverageBudget   float64 `json:"average_budget"`
	SuccessRate     float64 `json:"success_rate"`

	// Monthly covers the six calendar months up to GeneratedAt, oldest first.
	Monthly []MonthlyPoint `json:"monthly"`

	GeneratedAt time.Time `json:"generated_at"`
}

// MonthlyPoint counts the projects started in one calendar month and their budget.
type MonthlyPoint struct {
	Month    time.Time `json:"month"` // first day of the month, UTC
	Projects int       `json:"projects"`
	Budget   float64   `json:"budget"`
}
