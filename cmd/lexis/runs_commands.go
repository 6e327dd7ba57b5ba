package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis/config"
)

type runJSON struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Window    int       `json:"window"`
	CreatedAt time.Time `json:"created_at"`
	Tokens    int       `json:"tokens"`
	Distinct  int       `json:"distinct"`
	Pairs     int       `json:"pairs"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List reports saved in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Runs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if resolveFormat(ctx.cfg.Output.Format, out) == config.FormatTable {
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.Input,
						run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						strconv.Itoa(run.Tokens),
						strconv.Itoa(run.Distinct),
						strconv.Itoa(run.Pairs),
					})
				}
				_, err := fmt.Fprintln(out, renderRunsTable(rows))
				return err
			}

			list := make([]runJSON, 0, len(runs))
			for _, run := range runs {
				list = append(list, runJSON(run))
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			r, found, err := st.LoadReport(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load report: %w", err)
			}
			if !found {
				return fmt.Errorf("no report with id %s", args[0])
			}
			return ctx.render(cmd.OutOrStdout(), r)
		},
	}
}

func renderRunsTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Input", "Created", "Tokens", "Distinct", "Pairs"})
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 1; i <= 6; i++ {
		align := text.AlignLeft
		if i > 3 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
