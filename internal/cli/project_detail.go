package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/exchange"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

func (c *cli) projectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := c.app.Project(args[0])
			if !ok {
				return fmt.Errorf("no project with id %q", args[0])
			}

			w := cmd.OutOrStdout()
			now := c.now()
			currency := c.app.Currency()
			renderTitle(w, p.Title)

			price := exchange.Format(p.Price, p.Currency)
			if p.Currency != currency {
				price += " (" + exchange.Format(exchange.Price(p, currency), currency) + ")"
			}
			completed := "-"
			if p.CompletedDate != nil {
				completed = formatDate(*p.CompletedDate)
			}
			renderTable(w, []string{"Field", "Value"}, [][]string{
				{"Status", statusStyle(p.Status).Render(string(p.Status))},
				{"Client", c.app.ClientName(p.ClientID)},
				{"Service", string(p.ServiceType)},
				{"Price", price},
				{"Invoice", p.InvoiceNumber},
				{"Start", formatDate(p.StartDate)},
				{"Due", formatDate(p.DueDate)},
				{"Completed", completed},
				{"Description", p.Description},
				{"Notes", p.Notes},
				{"Updated", relative(p.UpdatedAt, now)},
			})

			renderTitle(w, "Attachments")
			if len(p.Attachments) == 0 {
				renderEmpty(w, "attachments")
				return nil
			}
			rows := make([][]string, len(p.Attachments))
			for i, a := range p.Attachments {
				rows[i] = []string{a.Name, a.Type, humanize.Bytes(uint64(max(a.Size, 0))), relative(a.UploadedAt, now)}
			}
			renderTable(w, []string{"Name", "Type", "Size", "Uploaded"}, rows)
			return nil
		},
	}
}

// projectEditCommand changes only the fields whose flags are given.
func (c *cli) projectEditCommand() *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a project's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := c.app.Project(args[0])
			if !ok {
				return fmt.Errorf("no project with id %q", args[0])
			}

			edited, err := f.apply(p, cmd.Flags().Changed, c.now())
			if err != nil {
				return err
			}
			if edited.ClientID != p.ClientID {
				if _, ok := c.app.Client(edited.ClientID); !ok {
					return fmt.Errorf("%w: no client with id %q", models.ErrClientRequired, edited.ClientID)
				}
			}

			updated, err := c.app.UpdateProject(cmd.Context(), edited)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s (%s)\n", updated.ID, updated.Status)
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}

// apply copies the changed flags onto p and validates the result. Setting
// the status to completed stamps now unless p already has a completion
// date; any other status clears it.
func (f projectFlags) apply(p models.Project, changed func(string) bool, now time.Time) (models.Project, error) {
	var errs []error
	var err error

	if changed("title") {
		p.Title = strings.TrimSpace(f.title)
	}
	if changed("client") {
		p.ClientID = strings.TrimSpace(f.clientID)
	}
	if changed("description") {
		p.Description = f.description
	}
	if changed("notes") {
		p.Notes = f.notes
	}
	if changed("invoice") {
		p.InvoiceNumber = f.invoice
	}
	if changed("service") {
		p.ServiceType, err = models.ParseServiceType(f.service)
		errs = append(errs, err)
	}
	if changed("currency") {
		p.Currency, err = models.ParseCurrency(f.currency)
		errs = append(errs, err)
	}
	if changed("price") {
		var price decimal.Decimal
		if price, err = decimal.NewFromString(strings.TrimSpace(f.price)); err != nil {
			errs = append(errs, fmt.Errorf("invalid price %q", f.price))
		} else {
			p.Price = price
		}
	}
	if changed("start") {
		p.StartDate, err = parseDate(f.start, now.Location())
		errs = append(errs, err)
	}
	if changed("due") {
		p.DueDate, err = parseDate(f.due, now.Location())
		errs = append(errs, err)
	}
	if changed("status") {
		status, err := models.ParseStatus(f.status)
		errs = append(errs, err)
		switch {
		case err != nil:
		case status == models.StatusCompleted:
			if p.CompletedDate == nil {
				completed := now
				p.CompletedDate = &completed
			}
		default:
			p.CompletedDate = nil
		}
		p.Status = models.DeriveStatus(p, now)
	}

	if err := errors.Join(errs...); err != nil {
		return models.Project{}, err
	}
	if err := models.ValidateProject(p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (c *cli) projectAttachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <id> <file>",
		Short: "Link a file to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := c.app.Project(args[0])
			if !ok {
				return fmt.Errorf("no project with id %q", args[0])
			}

			path, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve attachment path: %w", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("read attachment: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("attachment %s is a directory", path)
			}

			kind := mime.TypeByExtension(filepath.Ext(path))
			if kind == "" {
				kind = "application/octet-stream"
			}
			attachment := models.Attachment{
				ID:         uuid.NewString(),
				Name:       info.Name(),
				URL:        "file://" + filepath.ToSlash(path),
				Type:       kind,
				Size:       info.Size(),
				UploadedAt: c.now(),
			}
			p.Attachments = append(slices.Clone(p.Attachments), attachment)

			if _, err := c.app.UpdateProject(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s) to project %s\n", attachment.Name, humanize.Bytes(uint64(attachment.Size)), p.ID)
			return nil
		},
	}
}
