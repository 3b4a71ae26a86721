package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/dashboard"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

func (c *cli) clientsCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			clients := dashboard.FilterClients(c.app.Clients(), search)
			if len(clients) == 0 {
				renderEmpty(w, "clients")
				return nil
			}

			counts := dashboard.ProjectCountByClient(c.app.Projects())
			rows := make([][]string, 0, len(clients))
			for i := range clients {
				cl := &clients[i]
				rows = append(rows, []string{
					cl.ID,
					cl.Name,
					cl.Company,
					cl.Email,
					cl.Phone,
					strconv.Itoa(counts[cl.ID]),
				})
			}
			renderTable(w, []string{"ID", "Name", "Company", "Email", "Phone", "Projects"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, company or email")
	return cmd
}

func (c *cli) clientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Show, add, edit or delete a client",
	}
	cmd.AddCommand(c.clientShowCommand(), c.clientAddCommand(), c.clientEditCommand(), c.clientDeleteCommand())
	return cmd
}

func (c *cli) clientShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a client and their projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, ok := c.app.Client(args[0])
			if !ok {
				return fmt.Errorf("no client with id %q", args[0])
			}

			w := cmd.OutOrStdout()
			renderTitle(w, cl.Name)
			rows := [][]string{
				{"Company", cl.Company},
				{"Email", cl.Email},
				{"Phone", cl.Phone},
				{"Address", cl.Address},
				{"Website", cl.Website},
				{"Notes", cl.Notes},
			}
			for _, social := range []struct{ name, handle string }{
				{"Facebook", cl.SocialMedia.Facebook},
				{"Twitter", cl.SocialMedia.Twitter},
				{"Instagram", cl.SocialMedia.Instagram},
				{"LinkedIn", cl.SocialMedia.LinkedIn},
			} {
				if social.handle != "" {
					rows = append(rows, []string{social.name, social.handle})
				}
			}
			renderTable(w, []string{"Field", "Value"}, rows)

			renderTitle(w, "Projects")
			c.renderProjects(cmd, dashboard.ClientProjects(c.app.Projects(), cl.ID))
			return nil
		},
	}
}

func (c *cli) clientAddCommand() *cobra.Command {
	var cl models.Client

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl.Name = strings.TrimSpace(cl.Name)
			cl.Email = strings.TrimSpace(cl.Email)
			if err := models.ValidateClient(cl); err != nil {
				return err
			}

			added, err := c.app.AddClient(cmd.Context(), cl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added client %s (%s)\n", added.ID, added.Name)
			return nil
		},
	}

	clientFlags(cmd, &cl)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// clientFlags binds one flag per editable client field to cl.
func clientFlags(cmd *cobra.Command, cl *models.Client) {
	flags := cmd.Flags()
	flags.StringVar(&cl.Name, "name", "", "Client name")
	flags.StringVar(&cl.Email, "email", "", "Email address")
	flags.StringVar(&cl.Phone, "phone", "", "Phone number")
	flags.StringVar(&cl.Address, "address", "", "Postal address")
	flags.StringVar(&cl.Company, "company", "", "Company")
	flags.StringVar(&cl.Website, "website", "", "Website")
	flags.StringVar(&cl.Notes, "notes", "", "Notes")
	flags.StringVar(&cl.SocialMedia.Facebook, "facebook", "", "Facebook handle")
	flags.StringVar(&cl.SocialMedia.Twitter, "twitter", "", "Twitter handle")
	flags.StringVar(&cl.SocialMedia.Instagram, "instagram", "", "Instagram handle")
	flags.StringVar(&cl.SocialMedia.LinkedIn, "linkedin", "", "LinkedIn handle")
}

// clientEditCommand changes only the fields whose flags are given.
func (c *cli) clientEditCommand() *cobra.Command {
	var edits models.Client

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a client's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, ok := c.app.Client(args[0])
			if !ok {
				return fmt.Errorf("no client with id %q", args[0])
			}

			flags := cmd.Flags()
			for name, pair := range map[string]struct{ dst, src *string }{
				"name":      {&cl.Name, &edits.Name},
				"email":     {&cl.Email, &edits.Email},
				"phone":     {&cl.Phone, &edits.Phone},
				"address":   {&cl.Address, &edits.Address},
				"company":   {&cl.Company, &edits.Company},
				"website":   {&cl.Website, &edits.Website},
				"notes":     {&cl.Notes, &edits.Notes},
				"facebook":  {&cl.SocialMedia.Facebook, &edits.SocialMedia.Facebook},
				"twitter":   {&cl.SocialMedia.Twitter, &edits.SocialMedia.Twitter},
				"instagram": {&cl.SocialMedia.Instagram, &edits.SocialMedia.Instagram},
				"linkedin":  {&cl.SocialMedia.LinkedIn, &edits.SocialMedia.LinkedIn},
			} {
				if flags.Changed(name) {
					*pair.dst = strings.TrimSpace(*pair.src)
				}
			}
			if err := models.ValidateClient(cl); err != nil {
				return err
			}

			updated, err := c.app.UpdateClient(cmd.Context(), cl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s (%s)\n", updated.ID, updated.Name)
			return nil
		},
	}

	clientFlags(cmd, &edits)
	return cmd
}

func (c *cli) clientDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client; their projects are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.DeleteClient(cmd.Context(), args[0]); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Deleted client %s\n", args[0])
			if n := len(dashboard.ClientProjects(c.app.Projects(), args[0])); n > 0 {
				fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d project(s) now belong to %s", n, models.UnknownClientName)))
			}
			return nil
		},
	}
}
