package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type jsonReport struct {
	ID          string      `json:"id"`
	Input       string      `json:"input"`
	CreatedAt   time.Time   `json:"created_at"`
	TotalTokens *int        `json:"total_tokens,omitempty"`
	Frequencies []jsonEntry `json:"frequencies,omitempty"`
	Unique      []string    `json:"unique,omitempty"`
	Window      *int        `json:"window,omitempty"`
	Pairs       [][2]string `json:"pairs,omitempty"`
}

type jsonEntry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// WriteJSON writes r as indented JSON. top limits the rows of each section;
// 0 writes everything. Sections are sorted so output is stable.
func WriteJSON(w io.Writer, r *Report, top int) error {
	out := jsonReport{
		ID:        r.ID,
		Input:     r.Input,
		CreatedAt: r.CreatedAt,
	}

	if r.Frequencies != nil {
		total := r.Frequencies.Total()
		out.TotalTokens = &total
		for _, e := range r.Frequencies.MostCommon(top) {
			out.Frequencies = append(out.Frequencies, jsonEntry{Token: e.Token, Count: e.Count})
		}
	}

	if r.Unique != nil {
		out.Unique = limit(r.Unique.Sorted(), top)
	}

	if r.Pairs != nil {
		window := r.Window
		out.Window = &window
		for _, p := range limit(r.Pairs.Sorted(), top) {
			out.Pairs = append(out.Pairs, [2]string{p.A, p.B})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteTable renders each computed section as a table
func WriteTable(w io.Writer, r *Report, top int) error {
	if r.Frequencies != nil {
		rows := make([][]string, 0, len(r.Frequencies))
		for _, e := range r.Frequencies.MostCommon(top) {
			rows = append(rows, []string{e.Token, strconv.Itoa(e.Count)})
		}
		title := fmt.Sprintf("Word frequencies (%d tokens, %d distinct)", r.Frequencies.Total(), len(r.Frequencies))
		if err := writeSection(w, title, []string{"Token", "Count"}, rows, 1); err != nil {
			return err
		}
	}

	if r.Unique != nil {
		words := limit(r.Unique.Sorted(), top)
		rows := make([][]string, 0, len(words))
		for _, tok := range words {
			rows = append(rows, []string{tok})
		}
		title := fmt.Sprintf("Unique words (%d)", len(r.Unique))
		if err := writeSection(w, title, []string{"Token"}, rows, -1); err != nil {
			return err
		}
	}

	if r.Pairs != nil {
		pairs := limit(r.Pairs.Sorted(), top)
		rows := make([][]string, 0, len(pairs))
		for _, p := range pairs {
			rows = append(rows, []string{p.A, p.B})
		}
		title := fmt.Sprintf("Co-occurrences (window %d, %d pairs)", r.Window, len(r.Pairs))
		if err := writeSection(w, title, []string{"Token", "Partner"}, rows, -1); err != nil {
			return err
		}
	}

	return nil
}

// writeSection renders one table. rightCol is the index of a right-aligned
// column, or -1 for none.
func writeSection(w io.Writer, title string, headers []string, rows [][]string, rightCol int) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i == rightCol {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	_, err := fmt.Fprintf(w, "%s\n%s\n\n", title, tw.Render())
	return err
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
