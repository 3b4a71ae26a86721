package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

const dateLayout = "2006-01-02 15:04:05"

// CSV renders r as three sections: a summary, the service breakdown and the
// client breakdown, separated by blank lines. Amounts have two decimals.
func CSV(r models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{
		{"Period", "Start", "End", "Currency", "Total Projects", "Completed Projects", "Total Income"},
		{
			r.Period.Label,
			r.Period.StartDate.Format(dateLayout),
			r.Period.EndDate.Format(dateLayout),
			string(r.Currency),
			strconv.Itoa(r.TotalProjects),
			strconv.Itoa(r.CompletedProjects),
			r.TotalIncome.StringFixed(2),
		},
		{},
		{"Service Type", "Projects", "Income"},
	}
	for _, s := range r.ProjectBreakdown {
		rows = append(rows, []string{string(s.ServiceType), strconv.Itoa(s.Count), s.Income.StringFixed(2)})
	}

	rows = append(rows, []string{}, []string{"Client ID", "Client", "Projects", "Income"})
	for _, c := range r.ClientBreakdown {
		rows = append(rows, []string{c.ClientID, c.ClientName, strconv.Itoa(c.ProjectCount), c.Income.StringFixed(2)})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename creates a file name like "report_this-month_2026-06-15.csv".
func Filename(r models.Report, now time.Time) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.Period.Label)), " ", "-")
	if slug == "" {
		slug = "custom"
	}
	return fmt.Sprintf("report_%s_%s.csv", slug, now.Format("2006-01-02"))
}
