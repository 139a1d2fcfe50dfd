package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/blockpalettes/internal/app"
	"github.com/samvad-hq/blockpalettes/internal/config"
	"github.com/samvad-hq/blockpalettes/internal/logger"
	"github.com/samvad-hq/blockpalettes/internal/render"
	"github.com/samvad-hq/blockpalettes/pkg/httpclient"
)

// cli carries state shared by subcommands once the root pre-run has wired it.
type cli struct {
	root      *cobra.Command
	transport httpclient.Client

	flags struct {
		baseURL  string
		timeout  int64
		logLevel string
		output   string
	}

	app *app.App
	log logger.Logger
	out *render.Renderer
}

// newCLI builds the command tree. transport is injected by tests; nil uses resty.
func newCLI(transport httpclient.Client) *cli {
	c := &cli{transport: transport}

	root := &cobra.Command{
		Use:           "blockpalettes",
		Short:         "Query blockpalettes.com for blocks and palettes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.baseURL, "base-url", "", "site base URL (default from BLOCKPALETTES_BASE_URL)")
	pf.Int64Var(&c.flags.timeout, "timeout", 0, "HTTP timeout in seconds")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVarP(&c.flags.output, "output", "o", "", "output format: table, json, yaml")

	root.AddCommand(
		newBlocksCmd(c),
		newPalettesCmd(c),
		newCollectionCmd(c),
	)
	c.root = root
	return c
}

// execute runs the command and releases the collection and logger whether or not it failed.
func (c *cli) execute(ctx context.Context) error {
	defer c.teardown()
	return c.root.ExecuteContext(ctx)
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.flags.baseURL != "" {
		cfg.BaseURL = c.flags.baseURL
	}
	if c.flags.timeout > 0 {
		cfg.HTTPTimeoutSeconds = c.flags.timeout
	}
	if c.flags.logLevel != "" {
		cfg.LogLevel = c.flags.logLevel
	}
	if c.flags.output != "" {
		cfg.OutputFormat = c.flags.output
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	log, err := logger.Init(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = log

	a, err := app.New(cfg, log, c.transport)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	c.app = a

	out, err := render.New(cmd.OutOrStdout(), cfg.OutputFormat)
	if err != nil {
		return err
	}
	c.out = out
	return nil
}

func (c *cli) teardown() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
	if c.log != nil {
		_ = c.log.Sync()
		c.log = nil
	}
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid palette id %q", raw)
	}
	return id, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
