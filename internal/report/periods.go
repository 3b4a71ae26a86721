package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// Period labels.
const (
	ThisWeek  = "This Week"
	ThisMonth = "This Month"
	LastMonth = "Last Month"
	ThisYear  = "This Year"
	LastYear  = "Last Year"
)

// ErrUnknownPeriod is returned by FindPeriod for labels not in Periods.
var ErrUnknownPeriod = errors.New("unknown report period")

// Periods returns the predefined report periods relative to now. Weeks
// start on Sunday at midnight. Current periods end at now; the previous
// month and year end at the first instant of the current one.
func Periods(now time.Time) []models.ReportPeriod {
	loc := now.Location()
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)

	return []models.ReportPeriod{
		{Label: ThisWeek, StartDate: weekStart, EndDate: now},
		{Label: ThisMonth, StartDate: monthStart, EndDate: now},
		{Label: LastMonth, StartDate: monthStart.AddDate(0, -1, 0), EndDate: monthStart},
		{Label: ThisYear, StartDate: yearStart, EndDate: now},
		{Label: LastYear, StartDate: yearStart.AddDate(-1, 0, 0), EndDate: yearStart},
	}
}

// FindPeriod returns the predefined period with the given label, matched
// case-insensitively.
func FindPeriod(label string, now time.Time) (models.ReportPeriod, error) {
	label = strings.TrimSpace(label)
	for _, p := range Periods(now) {
		if strings.EqualFold(p.Label, label) {
			return p, nil
		}
	}
	return models.ReportPeriod{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, label)
}

// Labels returns the labels of the predefined periods in display order.
func Labels() []string {
	return []string{ThisWeek, ThisMonth, LastMonth, ThisYear, LastYear}
}
