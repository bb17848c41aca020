package policy

import (
	"testing"
	"time"

	"planejao/internal/domain/entities"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestCalculateRisk(t *testing.T) {
	cases := []struct {
		name   string
		budget float64
		start  string
		due    string
		want   entities.RiskLevel
	}{
		{name: "budget driven", budget: 600000, start: "2024-01-01", due: "2024-02-01", want: entities.RiskAlto},
		{name: "duration driven", budget: 50000, start: "2024-01-01", due: "2024-08-01", want: entities.RiskAlto},
		{name: "low", budget: 90000, start: "2024-01-01", due: "2024-03-01", want: entities.RiskBaixo},
		{name: "medium budget", budget: 300000, start: "2024-01-01", due: "2024-04-01", want: entities.RiskMedio},
		{name: "low budget boundary", budget: 100000, start: "2024-01-01", due: "2024-04-01", want: entities.RiskBaixo},
		{name: "high budget boundary", budget: 500000, start: "2024-01-01", due: "2024-02-01", want: entities.RiskMedio},
		{name: "six months is not high", budget: 50000, start: "2024-01-01", due: "2024-07-01", want: entities.RiskMedio},
		{name: "four months medium", budget: 50000, start: "2024-01-01", due: "2024-05-01", want: entities.RiskMedio},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateRisk(tc.budget, date(t, tc.start), date(t, tc.due))
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-31", 0},
		{"2024-01-01", "2024-02-01", 1},
		{"2024-01-15", "2024-02-14", 0},
		{"2024-01-15", "2024-02-15", 1},
		{"2024-01-31", "2024-02-29", 1},
		{"2023-11-10", "2024-05-09", 5},
		{"2024-03-01", "2024-01-01", -2},
		{"2024-01-31", "2024-04-30", 2},
		{"2024-01-31", "2024-03-31", 2},
		{"2023-11-30", "2024-02-28", 3},
		{"2023-01-31", "2023-02-28", 1},
	}

	for _, tc := range cases {
		got := WholeMonthsBetween(date(t, tc.start), date(t, tc.end))
		if got != tc.want {
			t.Fatalf("WholeMonthsBetween(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}
