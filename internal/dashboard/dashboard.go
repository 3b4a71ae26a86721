// Package dashboard derives summary statistics and chart series from the
// project collection.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/freelance-ledger/internal/exchange"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// MonthsInSeries is the number of monthly buckets in the income series.
const MonthsInSeries = 6

// Status chart colors.
const (
	ColorOngoing   = "#FFC107"
	ColorCompleted = "#4CAF50"
	ColorOverdue   = "#F44336"
)

// StartOfMonth returns midnight of the first day of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ComputeStats summarizes projects in the given currency. Counts come from
// the stored status. Income covers completed projects; monthly income only
// those completed strictly after the start of now's month.
func ComputeStats(projects []models.Project, currency models.Currency, now time.Time) models.DashboardStats {
	monthStart := StartOfMonth(now)
	stats := models.DashboardStats{
		TotalProjects: len(projects),
		TotalIncome:   decimal.Zero,
		MonthlyIncome: decimal.Zero,
	}

	for i := range projects {
		p := &projects[i]
		switch p.Status {
		case models.StatusOngoing:
			stats.ActiveProjects++
		case models.StatusOverdue:
			stats.OverdueProjects++
		case models.StatusCompleted:
			stats.CompletedProjects++

			amount := exchange.Price(*p, currency)
			stats.TotalIncome = stats.TotalIncome.Add(amount)
			if p.CompletedDate != nil && p.CompletedDate.After(monthStart) {
				stats.MonthlyIncome = stats.MonthlyIncome.Add(amount)
			}
		}
	}

	return stats
}

// StatusChart counts projects per status in the fixed order
// Ongoing, Completed, Overdue.
func StatusChart(projects []models.Project) models.ChartData {
	counts := make(map[models.ProjectStatus]float64, len(models.Statuses))
	for i := range projects {
		counts[projects[i].Status]++
	}

	return models.ChartData{
		Labels: []string{"Ongoing", "Completed", "Overdue"},
		Datasets: []models.Dataset{{
			Data: []float64{
				counts[models.StatusOngoing],
				counts[models.StatusCompleted],
				counts[models.StatusOverdue],
			},
			Colors: []string{ColorOngoing, ColorCompleted, ColorOverdue},
		}},
	}
}

// MonthlyIncome returns converted income per calendar month for the current
// month and the five before it, oldest first. Months without completions
// are zero.
func MonthlyIncome(projects []models.Project, currency models.Currency, now time.Time) models.ChartData {
	first := StartOfMonth(now).AddDate(0, -(MonthsInSeries - 1), 0)

	labels := make([]string, MonthsInSeries)
	totals := make([]decimal.Decimal, MonthsInSeries)
	for i := range MonthsInSeries {
		labels[i] = first.AddDate(0, i, 0).Format("Jan")
		totals[i] = decimal.Zero
	}

	for i := range projects {
		p := &projects[i]
		if p.CompletedDate == nil {
			continue
		}
		month, ok := bucket(first, p.CompletedDate.In(now.Location()))
		if !ok {
			continue
		}
		totals[month] = totals[month].Add(exchange.Price(*p, currency))
	}

	data := make([]float64, MonthsInSeries)
	for i, total := range totals {
		data[i] = total.InexactFloat64()
	}

	return models.ChartData{
		Labels:   labels,
		Datasets: []models.Dataset{{Data: data}},
	}
}

// bucket returns the month index of t counted from first.
func bucket(first, t time.Time) (int, bool) {
	months := (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
	if months < 0 || months >= MonthsInSeries {
		return 0, false
	}
	return months, true
}
