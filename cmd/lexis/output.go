package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cognicore/lexis/pkg/lexis/config"
	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/report"
	"github.com/cognicore/lexis/pkg/lexis/store"
	"github.com/cognicore/lexis/pkg/lexis/store/sqlite"
)

func (c *commandContext) render(w io.Writer, r *report.Report) error {
	if resolveFormat(c.cfg.Output.Format, w) == config.FormatTable {
		return report.WriteTable(w, r, c.cfg.Output.Top)
	}
	return report.WriteJSON(w, r, c.cfg.Output.Top)
}

// resolveFormat picks table output for terminals and JSON otherwise when the
// format is auto.
func resolveFormat(format string, w io.Writer) string {
	if format != config.FormatAuto {
		return format
	}
	if isTerminal(w) {
		return config.FormatTable
	}
	return config.FormatJSON
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *commandContext) save(cmd *cobra.Command, r *report.Report) error {
	if c.cfg.Store.Path == "" {
		return nil
	}

	st, err := c.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveReport(cmd.Context(), r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	c.logger.Info("report saved", "id", r.ID, "store", c.cfg.Store.Path)
	return nil
}

func (c *commandContext) openStore(ctx context.Context) (store.Store, error) {
	if c.cfg.Store.Path == "" {
		return nil, fmt.Errorf("%w: no store configured, pass --store", internalerr.ErrInvalidConfig)
	}
	st, err := sqlite.OpenSQLite(ctx, c.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
