package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/chart"
	"gitlab.com/yelinaung/freelance-ledger/internal/dashboard"
	"gitlab.com/yelinaung/freelance-ledger/internal/exchange"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gitlab.com/yelinaung/freelance-ledger/internal/report"
)

func (c *cli) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, income and recent projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			view := c.app.Dashboard(c.now())
			renderTitle(w, "Overview")
			renderTable(w, []string{"Total", "Active", "Completed", "Overdue", "Total Income", "This Month"}, [][]string{{
				strconv.Itoa(view.Stats.TotalProjects),
				strconv.Itoa(view.Stats.ActiveProjects),
				strconv.Itoa(view.Stats.CompletedProjects),
				strconv.Itoa(view.Stats.OverdueProjects),
				exchange.Format(view.Stats.TotalIncome, view.Currency),
				exchange.Format(view.Stats.MonthlyIncome, view.Currency),
			}})

			renderTitle(w, "Monthly Income")
			series := view.MonthlyIncome
			rows := make([][]string, len(series.Labels))
			for i, label := range series.Labels {
				rows[i] = []string{label, exchange.Format(decimal.NewFromFloat(series.Datasets[0].Data[i]), view.Currency)}
			}
			renderTable(w, []string{"Month", "Income"}, rows)

			renderTitle(w, "Recent Projects")
			c.renderProjects(cmd, view.RecentProjects)
			return nil
		},
	}
}

func (c *cli) reportCommand() *cobra.Command {
	var period, csvPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize income for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := c.now()
			p, err := report.FindPeriod(period, now)
			if err != nil {
				return err
			}
			r := c.app.Report(p)

			if csvPath != "" {
				data, err := report.CSV(r)
				if err != nil {
					return err
				}
				if csvPath == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(csvPath, data, 0o600); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", csvPath)
				return nil
			}

			renderReport(cmd, r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", report.ThisMonth, "Report period")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the report as CSV to this file (- for stdout)")
	return cmd
}

func renderReport(cmd *cobra.Command, r models.Report) {
	w := cmd.OutOrStdout()
	renderTitle(w, fmt.Sprintf("%s (%s to %s)", r.Period.Label, formatDate(r.Period.StartDate), formatDate(r.Period.EndDate)))
	renderTable(w, []string{"Projects", "Completed", "Income"}, [][]string{{
		strconv.Itoa(r.TotalProjects),
		strconv.Itoa(r.CompletedProjects),
		exchange.Format(r.TotalIncome, r.Currency),
	}})

	renderTitle(w, "By Service")
	if len(r.ProjectBreakdown) == 0 {
		renderEmpty(w, "completed projects")
	} else {
		rows := make([][]string, len(r.ProjectBreakdown))
		for i, s := range r.ProjectBreakdown {
			rows[i] = []string{string(s.ServiceType), strconv.Itoa(s.Count), exchange.Format(s.Income, r.Currency)}
		}
		renderTable(w, []string{"Service", "Projects", "Income"}, rows)
	}

	renderTitle(w, "By Client")
	if len(r.ClientBreakdown) == 0 {
		renderEmpty(w, "completed projects")
		return
	}
	rows := make([][]string, len(r.ClientBreakdown))
	for i, cl := range r.ClientBreakdown {
		rows[i] = []string{cl.ClientName, strconv.Itoa(cl.ProjectCount), exchange.Format(cl.Income, r.Currency)}
	}
	renderTable(w, []string{"Client", "Projects", "Income"}, rows)
}

func (c *cli) periodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "periods",
		Short:       "List the report periods",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSession: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			periods := report.Periods(c.now())
			rows := make([][]string, len(periods))
			for i, p := range periods {
				rows[i] = []string{p.Label, formatDate(p.StartDate), formatDate(p.EndDate)}
			}
			renderTable(cmd.OutOrStdout(), []string{"Period", "From", "To"}, rows)
		},
	}
}

func (c *cli) chartCommand() *cobra.Command {
	var out, period string

	cmd := &cobra.Command{
		Use:       "chart status|income|report",
		Short:     "Render a chart as PNG",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"status", "income", "report"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var png []byte
			var err error

			now := c.now()
			switch args[0] {
			case "status":
				png, err = chart.StatusPNG(dashboard.StatusChart(c.app.Projects()))
			case "income":
				currency := c.app.Currency()
				png, err = chart.IncomePNG(dashboard.MonthlyIncome(c.app.Projects(), currency, now), currency)
			case "report":
				p, findErr := report.FindPeriod(period, now)
				if findErr != nil {
					return findErr
				}
				png, err = chart.ReportPNG(c.app.Report(p))
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("chart_%s_%s.png", args[0], now.Format(dateLayout))
			}
			if err := os.WriteFile(out, png, 0o600); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	cmd.Flags().StringVarP(&period, "period", "p", report.ThisMonth, "Report period for the report chart")
	return cmd
}

func (c *cli) currencyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "currency [LKR|USD]",
		Short: "Show or change the display currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				current := c.app.Currency()
				fmt.Fprintf(w, "%s (1 USD = %d LKR)\n", current, exchange.USDToLKR)
				return nil
			}

			code, err := models.ParseCurrency(args[0])
			if err != nil {
				return err
			}
			if err := c.app.UpdateCurrency(cmd.Context(), code); err != nil {
				return err
			}
			fmt.Fprintf(w, "Currency set to %s\n", code)
			return nil
		},
	}
}
