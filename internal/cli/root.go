// Package cli implements the freelance command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/yelinaung/freelance-ledger/internal/app"
	"gitlab.com/yelinaung/freelance-ledger/internal/config"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/telemetry"
)

// skipSession marks commands that run without opening storage.
const skipSession = "skip-session"

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type cli struct {
	info    BuildInfo
	cfg     *config.Config
	app     *app.App
	now     func() time.Time
	closers []func(context.Context) error
}

// Execute runs the command line with args and releases every resource the
// command opened.
func Execute(ctx context.Context, info BuildInfo, args []string) error {
	return execute(ctx, &cli{info: info, now: time.Now}, args, os.Stdout)
}

func execute(ctx context.Context, c *cli, args []string, out io.Writer) error {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.close(context.WithoutCancel(ctx)))
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "freelance",
		Short:         "Track freelance clients, projects and income",
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{skipSession: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSession] != "" {
				return nil
			}
			return c.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		c.versionCommand(),
		c.projectsCommand(),
		c.projectCommand(),
		c.clientsCommand(),
		c.clientCommand(),
		c.dashboardCommand(),
		c.reportCommand(),
		c.periodsCommand(),
		c.chartCommand(),
		c.currencyCommand(),
		c.serveCommand(),
	)
	return root
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSession: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "freelance %s (commit: %s, built: %s)\n", c.info.Version, c.info.Commit, c.info.Date)
		},
	}
}

// open loads configuration, installs telemetry and loads the ledger.
func (c *cli) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	if err := logger.InitHashSalt(cfg.LogHashSalt); err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, shutdown)

	s, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, s.close)

	c.app = newApp(s.kv, cfg, c.now)
	if err := c.app.Load(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Continuing with partially loaded data")
	}
	return nil
}

// close runs the closers in reverse order.
func (c *cli) close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(errs...)
}
