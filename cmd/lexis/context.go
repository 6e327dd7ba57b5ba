package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis/config"
)

type globalOptions struct {
	configPath string
	format     string
	encoding   string
	storePath  string
	top        int
	verbose    bool
}

// commandContext carries the resolved configuration and logger shared by
// all subcommands.
type commandContext struct {
	opts   *globalOptions
	cfg    config.Config
	logger *slog.Logger
}

func newCommandContext(opts *globalOptions) *commandContext {
	return &commandContext{
		opts:   opts,
		cfg:    config.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// init builds the logger and merges the config file with explicitly set flags.
func (c *commandContext) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if c.opts.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if c.opts.configPath != "" {
		loaded, err := config.Load(c.opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		c.logger.Debug("config loaded", "path", c.opts.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = c.opts.format
	}
	if flags.Changed("encoding") {
		cfg.Encoding = c.opts.encoding
	}
	if flags.Changed("store") {
		cfg.Store.Path = c.opts.storePath
	}
	if flags.Changed("top") {
		cfg.Output.Top = c.opts.top
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}
