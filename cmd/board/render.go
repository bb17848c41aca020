package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"planejao/internal/board"
	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/locale"
)

func renderColumns(w io.Writer, cols []board.Column, only entities.ProjectStatus) {
	for _, col := range cols {
		if only != "" && col.Status != only {
			continue
		}
		fmt.Fprintf(w, "== %s (%d) ==\n", col.Label, len(col.Projects))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, p := range col.Projects {
			fmt.Fprintf(tw, "  %s\t%s\t%s\trisco %s\tprevisão %s\n",
				p.ID, p.Name, locale.Currency(p.Budget), p.Risk, locale.Date(p.PlannedEndDate))
		}
		_ = tw.Flush()
	}
}

func renderReport(w io.Writer, r entities.PortfolioReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Projetos\t%d\n", r.TotalProjects)
	fmt.Fprintf(tw, "Ativos\t%d\n", r.ActiveProjects)
	fmt.Fprintf(tw, "Encerrados\t%d\n", r.ClosedProjects)
	fmt.Fprintf(tw, "Atrasados\t%d\n", r.DelayedProjects)
	fmt.Fprintf(tw, "Orçamento total\t%s\n", locale.Currency(r.TotalBudget))
	fmt.Fprintf(tw, "Orçamento médio\t%s\n", locale.Currency(r.AverageBudget))
	fmt.Fprintf(tw, "Taxa de sucesso\t%s\n", locale.Percent(r.SuccessRate))
	fmt.Fprintf(tw, "Duração média (dias)\t%s\n", locale.Number(r.AverageClosedDurationDays, 1))
	fmt.Fprintf(tw, "Pessoas envolvidas\t%d\n", r.UniqueMembers)
	_ = tw.Flush()

	fmt.Fprintln(w, strings.Repeat("-", 32))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range entities.AllProjectStatuses {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Label(), r.CountByStatus[s], locale.Currency(r.BudgetByStatus[s]))
	}
	_ = tw.Flush()

	if len(r.Monthly) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("-", 32))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range r.Monthly {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", locale.MonthLabel(m.Month), m.Projects, locale.Currency(m.Budget))
	}
	_ = tw.Flush()
}
