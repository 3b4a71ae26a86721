package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"pgregory.net/rapid"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func completedAt(id string, price string, currency models.Currency, at time.Time) models.Project {
	return models.Project{
		ID:            id,
		Title:         "Project " + id,
		ServiceType:   models.ServiceWebDevelopment,
		Price:         decimal.RequireFromString(price),
		Currency:      currency,
		DueDate:       at,
		CompletedDate: &at,
		Status:        models.StatusCompleted,
	}
}

func open(id string, status models.ProjectStatus) models.Project {
	return models.Project{
		ID:          id,
		Title:       "Project " + id,
		ServiceType: models.ServiceOther,
		Price:       decimal.NewFromInt(100),
		Currency:    models.CurrencyLKR,
		Status:      status,
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		stats := ComputeStats(nil, models.CurrencyLKR, now)
		require.Zero(t, stats.TotalProjects)
		require.True(t, stats.TotalIncome.IsZero())
		require.True(t, stats.MonthlyIncome.IsZero())
	})

	t.Run("counts and converts income", func(t *testing.T) {
		t.Parallel()
		projects := []models.Project{
			completedAt("p1", "100", models.CurrencyUSD, now.AddDate(0, -2, 0)),
			completedAt("p2", "16000", models.CurrencyLKR, now.AddDate(0, 0, -3)),
			open("p3", models.StatusOngoing),
			open("p4", models.StatusOverdue),
			open("p5", models.StatusOngoing),
		}

		stats := ComputeStats(projects, models.CurrencyLKR, now)
		require.Equal(t, 5, stats.TotalProjects)
		require.Equal(t, 2, stats.ActiveProjects)
		require.Equal(t, 2, stats.CompletedProjects)
		require.Equal(t, 1, stats.OverdueProjects)
		require.Equal(t, "48000", stats.TotalIncome.String())
		require.Equal(t, "16000", stats.MonthlyIncome.String())

		usd := ComputeStats(projects, models.CurrencyUSD, now)
		require.Equal(t, "150", usd.TotalIncome.String())
		require.Equal(t, "50", usd.MonthlyIncome.String())
	})

	t.Run("completion exactly at month start is not monthly income", func(t *testing.T) {
		t.Parallel()
		monthStart := StartOfMonth(now)
		projects := []models.Project{
			completedAt("edge", "500", models.CurrencyLKR, monthStart),
			completedAt("after", "20", models.CurrencyLKR, monthStart.Add(time.Nanosecond)),
		}

		stats := ComputeStats(projects, models.CurrencyLKR, now)
		require.Equal(t, "520", stats.TotalIncome.String())
		require.Equal(t, "20", stats.MonthlyIncome.String())
	})

	t.Run("income requires completed status", func(t *testing.T) {
		t.Parallel()
		p := completedAt("p1", "100", models.CurrencyLKR, now)
		p.Status = models.StatusOngoing

		stats := ComputeStats([]models.Project{p}, models.CurrencyLKR, now)
		require.True(t, stats.TotalIncome.IsZero())
		require.Equal(t, 1, stats.ActiveProjects)
	})
}

// The status counts partition the collection.
func TestComputeStatsPartition(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		projects := make([]models.Project, n)
		for i := range projects {
			projects[i] = open("p", rapid.SampledFrom(models.Statuses).Draw(t, "status"))
		}

		stats := ComputeStats(projects, models.CurrencyLKR, now)
		if got := stats.ActiveProjects + stats.CompletedProjects + stats.OverdueProjects; got != stats.TotalProjects {
			t.Fatalf("counts sum to %d, want %d", got, stats.TotalProjects)
		}
	})
}

func TestStatusChart(t *testing.T) {
	t.Parallel()

	chart := StatusChart([]models.Project{
		open("a", models.StatusOverdue),
		open("b", models.StatusOngoing),
		open("c", models.StatusOverdue),
		completedAt("d", "1", models.CurrencyLKR, now),
	})

	require.Equal(t, []string{"Ongoing", "Completed", "Overdue"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	require.Equal(t, []float64{1, 1, 2}, chart.Datasets[0].Data)
	require.Equal(t, []string{"#FFC107", "#4CAF50", "#F44336"}, chart.Datasets[0].Colors)
}

func TestMonthlyIncome(t *testing.T) {
	t.Parallel()

	t.Run("six months oldest first with zero buckets", func(t *testing.T) {
		t.Parallel()
		projects := []models.Project{
			completedAt("jun", "100", models.CurrencyLKR, now),
			completedAt("apr", "2", models.CurrencyUSD, time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC)),
			completedAt("jan", "7", models.CurrencyLKR, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
			completedAt("old", "999", models.CurrencyLKR, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
			completedAt("future", "999", models.CurrencyLKR, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
			open("open", models.StatusOngoing),
		}

		chart := MonthlyIncome(projects, models.CurrencyLKR, now)
		require.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, chart.Labels)
		require.Len(t, chart.Datasets, 1)
		require.Equal(t, []float64{7, 0, 0, 640, 0, 100}, chart.Datasets[0].Data)
	})

	t.Run("spans a year boundary", func(t *testing.T) {
		t.Parallel()
		feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
		projects := []models.Project{
			completedAt("sep", "5", models.CurrencyLKR, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
			completedAt("dec", "3", models.CurrencyLKR, time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)),
		}

		chart := MonthlyIncome(projects, models.CurrencyLKR, feb)
		require.Equal(t, []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, chart.Labels)
		require.Equal(t, []float64{5, 0, 0, 3, 0, 0}, chart.Datasets[0].Data)
	})

	t.Run("empty collection is all zeros", func(t *testing.T) {
		t.Parallel()
		chart := MonthlyIncome(nil, models.CurrencyUSD, now)
		require.Equal(t, make([]float64, MonthsInSeries), chart.Datasets[0].Data)
	})
}
