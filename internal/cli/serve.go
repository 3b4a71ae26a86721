package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/httpapi"
)

func (c *cli) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.HTTPAddr
			}
			return httpapi.NewServer(addr, c.app).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default HTTP_ADDR)")
	return cmd
}
