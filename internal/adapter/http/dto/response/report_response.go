package response

import (
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/locale"
)

type ReportResponse struct {
	CountByStatus             map[string]int     `json:"count_by_status"`
	BudgetByStatus            map[string]float64 `json:"budget_by_status"`
	CountByRisk               map[string]int     `json:"count_by_risk"`
	AverageClosedDurationDays float64            `json:"average_closed_duration_days"`
	UniqueMembers             int                `json:"unique_members"`
	TotalProjects             int                `json:"total_projects"`
	ActiveProjects            int                `json:"active_projects"`
	ClosedProjects            int                `json:"closed_projects"`
	DelayedProjects           int                `json:"delayed_projects"`
	TotalBudget               float64            `json:"total_budget"`
	TotalBudgetFormatted      string             `json:"total_budget_formatted"`
	AverageBudget             float64            `json:"average_budget"`
	SuccessRate               float64            `json:"success_rate"`
	Monthly                   []MonthlyPoint     `json:"monthly"`
	GeneratedAt               time.Time          `json:"generated_at"`
}

type MonthlyPoint struct {
	Month    string  `json:"month" example:"2024-01"`
	Label    string  `json:"label" example:"jan/2024"`
	Projects int     `json:"projects"`
	Budget   float64 `json:"budget"`
}

const monthLayout = "2006-01"

// FromReport lists every status and risk level, including the empty ones.
func FromReport(r entities.PortfolioReport) ReportResponse {
	res := ReportResponse{
		CountByStatus:             make(map[string]int, len(entities.AllProjectStatuses)),
		BudgetByStatus:            make(map[string]float64, len(entities.AllProjectStatuses)),
		CountByRisk:               map[string]int{},
		AverageClosedDurationDays: r.AverageClosedDurationDays,
		UniqueMembers:             r.UniqueMembers,
		TotalProjects:             r.TotalProjects,
		ActiveProjects:            r.ActiveProjects,
		ClosedProjects:            r.ClosedProjects,
		DelayedProjects:           r.DelayedProjects,
		TotalBudget:               r.TotalBudget,
		TotalBudgetFormatted:      locale.Currency(r.TotalBudget),
		AverageBudget:             r.AverageBudget,
		SuccessRate:               r.SuccessRate,
		GeneratedAt:               r.GeneratedAt,
	}
	for _, s := range entities.AllProjectStatuses {
		res.CountByStatus[string(s)] = r.CountByStatus[s]
		res.BudgetByStatus[string(s)] = r.BudgetByStatus[s]
	}
	for _, risk := range []entities.RiskLevel{entities.RiskBaixo, entities.RiskMedio, entities.RiskAlto} {
		res.CountByRisk[string(risk)] = r.CountByRisk[risk]
	}
	res.Monthly = make([]MonthlyPoint, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		res.Monthly = append(res.Monthly, MonthlyPoint{
			Month:    m.Month.Format(monthLayout),
			Label:    locale.MonthLabel(m.Month),
			Projects: m.Projects,
			Budget:   m.Budget,
		})
	}
	return res
}

func (r ReportResponse) ToReport() entities.PortfolioReport {
	out := entities.PortfolioReport{
		CountByStatus:             map[entities.ProjectStatus]int{},
		BudgetByStatus:            map[entities.ProjectStatus]float64{},
		CountByRisk:               map[entities.RiskLevel]int{},
		AverageClosedDurationDays: r.AverageClosedDurationDays,
		UniqueMembers:             r.UniqueMembers,
		TotalProjects:             r.TotalProjects,
		ActiveProjects:            r.ActiveProjects,
		ClosedProjects:            r.ClosedProjects,
		DelayedProjects:           r.DelayedProjects,
		TotalBudget:               r.TotalBudget,
		AverageBudget:             r.AverageBudget,
		SuccessRate:               r.SuccessRate,
		GeneratedAt:               r.GeneratedAt,
	}
	for k, v := range r.CountByStatus {
		out.CountByStatus[entities.ProjectStatus(k)] = v
	}
	for k, v := range r.BudgetByStatus {
		out.BudgetByStatus[entities.ProjectStatus(k)] = v
	}
	for k, v := range r.CountByRisk {
		out.CountByRisk[entities.RiskLevel(k)] = v
	}
	for _, m := range r.Monthly {
		month, err := time.Parse(monthLayout, m.Month)
		if err != nil {
			continue
		}
		out.Monthly = append(out.Monthly, entities.MonthlyPoint{Month: month, Projects: m.Projects, Budget: m.Budget})
	}
	return out
}
