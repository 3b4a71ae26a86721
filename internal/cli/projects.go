package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/dashboard"
	"gitlab.com/yelinaung/freelance-ledger/internal/exchange"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

func (c *cli) projectsCommand() *cobra.Command {
	var search, status, service string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := dashboard.ProjectFilter{Query: search}
			if status != "" {
				s, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}
			if service != "" {
				s, err := models.ParseServiceType(service)
				if err != nil {
					return err
				}
				filter.ServiceType = s
			}

			all := c.app.Projects()
			c.renderProjects(cmd, dashboard.FilterProjects(all, filter))
			if services := dashboard.ServiceTypes(all); len(services) > 0 {
				names := make([]string, len(services))
				for i, st := range services {
					names[i] = string(st)
				}
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Services: "+strings.Join(names, ", ")))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ongoing, completed, overdue)")
	cmd.Flags().StringVar(&service, "service", "", "Filter by service type")
	return cmd
}

func (c *cli) renderProjects(cmd *cobra.Command, projects []models.Project) {
	w := cmd.OutOrStdout()
	if len(projects) == 0 {
		renderEmpty(w, "projects")
		return
	}

	now := c.now()
	currency := c.app.Currency()
	rows := make([][]string, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		rows = append(rows, []string{
			p.ID,
			p.Title,
			c.app.ClientName(p.ClientID),
			string(p.ServiceType),
			statusStyle(p.Status).Render(string(p.Status)),
			formatDate(p.DueDate),
			exchange.Format(exchange.Price(*p, currency), currency),
			relative(p.UpdatedAt, now),
		})
	}
	renderTable(w, []string{"ID", "Title", "Client", "Service", "Status", "Due", "Price", "Updated"}, rows)
}

func (c *cli) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show, add, edit, complete or delete a project",
	}
	cmd.AddCommand(
		c.projectShowCommand(),
		c.projectAddCommand(),
		c.projectEditCommand(),
		c.projectAttachCommand(),
		c.projectCompleteCommand(),
		c.projectDeleteCommand(),
	)
	return cmd
}

type projectFlags struct {
	title, description, notes string
	clientID, invoice         string
	service, status           string
	price, currency           string
	start, due                string
}

func (c *cli) projectAddCommand() *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := f.project(c.now())
			if err != nil {
				return err
			}
			if _, ok := c.app.Client(p.ClientID); !ok {
				return fmt.Errorf("%w: no client with id %q", models.ErrClientRequired, p.ClientID)
			}

			added, err := c.app.AddProject(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added project %s (%s)\n", added.ID, added.Status)
			return nil
		},
	}

	f.bind(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("due")

	// The default currency follows the stored preference.
	cmd.PreRun = func(*cobra.Command, []string) {
		if f.currency == "" {
			f.currency = string(c.app.Currency())
		}
	}
	return cmd
}

func (f *projectFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Project title")
	flags.StringVar(&f.clientID, "client", "", "Client ID")
	flags.StringVar(&f.service, "service", string(models.ServiceWebDevelopment), "Service type")
	flags.StringVar(&f.price, "price", "0", "Price")
	flags.StringVar(&f.currency, "currency", "", "Currency (LKR or USD, default is the selected currency)")
	flags.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD, default today)")
	flags.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVar(&f.status, "status", "", "Status; completed stamps today as the completion date")
	flags.StringVar(&f.description, "description", "", "Description")
	flags.StringVar(&f.notes, "notes", "", "Notes")
	flags.StringVar(&f.invoice, "invoice", "", "Invoice number")
}

// project builds and validates the project described by the flags.
func (f projectFlags) project(now time.Time) (models.Project, error) {
	var errs []error

	service, err := models.ParseServiceType(f.service)
	errs = append(errs, err)
	currency, err := models.ParseCurrency(f.currency)
	errs = append(errs, err)
	price, err := decimal.NewFromString(strings.TrimSpace(f.price))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid price %q", f.price))
	}

	start := now
	if f.start != "" {
		start, err = parseDate(f.start, now.Location())
		errs = append(errs, err)
	}
	due, err := parseDate(f.due, now.Location())
	errs = append(errs, err)

	var status models.ProjectStatus
	if f.status != "" {
		status, err = models.ParseStatus(f.status)
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return models.Project{}, err
	}

	p := models.Project{
		Title:         strings.TrimSpace(f.title),
		Description:   f.description,
		Notes:         f.notes,
		ClientID:      strings.TrimSpace(f.clientID),
		InvoiceNumber: f.invoice,
		ServiceType:   service,
		Price:         price,
		Currency:      currency,
		StartDate:     start,
		DueDate:       due,
		Status:        status,
		Attachments:   []models.Attachment{},
	}
	if err := models.ValidateProject(p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func (c *cli) projectCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a project completed today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.CompleteProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed project %s on %s\n", p.ID, formatDate(*p.CompletedDate))
			return nil
		},
	}
}

func (c *cli) projectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}
