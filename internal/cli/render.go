package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

const dateLayout = "2006-01-02"

var (
	colorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	colorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// statusStyle colors a status the way the dashboard chart does.
func statusStyle(status models.ProjectStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch status {
	case models.StatusOngoing:
		return base.Foreground(lipgloss.Color("#FFC107"))
	case models.StatusCompleted:
		return base.Foreground(lipgloss.Color("#4CAF50"))
	case models.StatusOverdue:
		return base.Foreground(lipgloss.Color("#F44336"))
	default:
		return base
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func renderTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func renderEmpty(w io.Writer, what string) {
	fmt.Fprintln(w, mutedStyle.Render("No "+what+" found"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// relative renders t against now, e.g. "3 days ago".
func relative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
