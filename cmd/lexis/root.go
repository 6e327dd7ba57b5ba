package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	ctx := newCommandContext(opts)

	rootCmd := &cobra.Command{
		Use:           "lexis",
		Short:         "Word frequencies, unique words and co-occurrences for text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (.yaml, .yml or .toml)")
	flags.StringVar(&opts.format, "format", "", "Output format: auto, json or table")
	flags.StringVar(&opts.encoding, "encoding", "", "Input encoding (IANA name, default utf-8)")
	flags.StringVar(&opts.storePath, "store", "", "SQLite database to save reports in")
	flags.IntVar(&opts.top, "top", 0, "Rows shown per section (0 = all)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(newFreqCommand(ctx))
	rootCmd.AddCommand(newUniqueCommand(ctx))
	rootCmd.AddCommand(newCooccurCommand(ctx))
	rootCmd.AddCommand(newAllCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))

	return rootCmd
}
