package main

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

const stdinLabel = "<stdin>"

type analysisFlags struct {
	html      bool
	window    int
	minLength int
	maxLength int
}

func newFreqCommand(ctx *commandContext) *cobra.Command {
	var af analysisFlags
	cmd := &cobra.Command{
		Use:   "freq <file|text|->",
		Short: "Count word frequencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.analyze(cmd, args[0], &af, report.Analyses{Frequencies: true})
		},
	}
	addInputFlags(cmd, &af)
	addFilterFlags(cmd, &af)
	return cmd
}

func newUniqueCommand(ctx *commandContext) *cobra.Command {
	var af analysisFlags
	cmd := &cobra.Command{
		Use:   "unique <file|text|->",
		Short: "List distinct words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.analyze(cmd, args[0], &af, report.Analyses{Unique: true})
		},
	}
	addInputFlags(cmd, &af)
	return cmd
}

func newCooccurCommand(ctx *commandContext) *cobra.Command {
	var af analysisFlags
	cmd := &cobra.Command{
		Use:   "cooccur <file|text|->",
		Short: "List ordered word pairs that occur within a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.analyze(cmd, args[0], &af, report.Analyses{Pairs: true})
		},
	}
	addInputFlags(cmd, &af)
	addWindowFlag(cmd, &af)
	return cmd
}

func newAllCommand(ctx *commandContext) *cobra.Command {
	var af analysisFlags
	cmd := &cobra.Command{
		Use:   "all <file|text|->",
		Short: "Run every analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.analyze(cmd, args[0], &af, report.AllAnalyses())
		},
	}
	addInputFlags(cmd, &af)
	addFilterFlags(cmd, &af)
	addWindowFlag(cmd, &af)
	return cmd
}

func addInputFlags(cmd *cobra.Command, af *analysisFlags) {
	cmd.Flags().BoolVar(&af.html, "html", false, "Treat the input as an HTML document")
}

func addFilterFlags(cmd *cobra.Command, af *analysisFlags) {
	cmd.Flags().IntVar(&af.minLength, "min-length", 0, "Only count words of at least this many characters")
	cmd.Flags().IntVar(&af.maxLength, "max-length", 0, "Only count words of at most this many characters")
}

func addWindowFlag(cmd *cobra.Command, af *analysisFlags) {
	cmd.Flags().IntVarP(&af.window, "window", "w", 0, "Co-occurrence window radius (default from config, 2)")
}

func (c *commandContext) analyze(cmd *cobra.Command, input string, af *analysisFlags, analyses report.Analyses) error {
	cfg := c.cfg
	flags := cmd.Flags()
	if flags.Changed("window") {
		cfg.Window = af.window
	}
	if flags.Changed("min-length") {
		cfg.Filter.MinLength = af.minLength
	}
	if flags.Changed("max-length") {
		cfg.Filter.MaxLength = af.maxLength
	}

	comp, err := cfg.Components()
	if err != nil {
		return err
	}

	src, label, err := openInput(cmd.InOrStdin(), input, af.html, passes(analyses), comp.SourceOptions)
	if err != nil {
		return err
	}

	c.logger.Debug("analyzing",
		"input", label,
		"window", comp.Window,
		"min_length", cfg.Filter.MinLength,
		"max_length", cfg.Filter.MaxLength,
		"encoding", cfg.Encoding,
	)

	r, err := report.Run(report.Request{
		Input:    label,
		Source:   src,
		Filter:   comp.Filter,
		Window:   comp.Window,
		Analyses: analyses,
	})
	if err != nil {
		return err
	}

	c.logger.Debug("analysis complete", "id", r.ID, "distinct", len(r.Frequencies), "pairs", len(r.Pairs))

	if err := c.save(cmd, r); err != nil {
		return err
	}
	return c.render(cmd.OutOrStdout(), r)
}

func passes(a report.Analyses) int {
	n := 0
	for _, on := range []bool{a.Frequencies, a.Unique, a.Pairs} {
		if on {
			n++
		}
	}
	return n
}

// openInput resolves the command argument into a source and a label for the
// report. "-" reads stdin; stdin is buffered only when it must be read more
// than once.
func openInput(stdin io.Reader, input string, html bool, passes int, opts []source.Option) (source.Source, string, error) {
	if input == "-" {
		if passes <= 1 {
			return readerSource(stdin, html, opts), stdinLabel, nil
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return bufferedSource{data: data, html: html, opts: opts}, stdinLabel, nil
	}

	if html {
		return source.NewHTMLFile(input, opts...), input, nil
	}

	src := source.Resolve(input, opts...)
	if f, ok := src.(*source.File); ok {
		return src, f.Path(), nil
	}
	return src, "<text>", nil
}

func readerSource(r io.Reader, html bool, opts []source.Option) source.Source {
	if html {
		return source.NewHTML(r, stdinLabel, opts...)
	}
	return source.NewReader(r, stdinLabel, opts...)
}

// bufferedSource replays stdin contents on every pass
type bufferedSource struct {
	data []byte
	html bool
	opts []source.Option
}

func (b bufferedSource) Lines() iter.Seq2[string, error] {
	return readerSource(bytes.NewReader(b.data), b.html, b.opts).Lines()
}
