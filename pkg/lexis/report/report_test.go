package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
	"github.com/cognicore/lexis/pkg/lexis/source"
)

func TestRunAll(t *testing.T) {
	r, err := Run(Request{
		Input:    "sample",
		Source:   source.NewText("This is a sample text.\nThis text is for testing."),
		Window:   2,
		Analyses: AllAnalyses(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := ulid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a ULID: %v", r.ID, err)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if r.Frequencies["this"] != 2 || r.Frequencies["text"] != 2 {
		t.Errorf("unexpected frequencies %v", r.Frequencies)
	}
	if len(r.Unique) != len(r.Frequencies) {
		t.Errorf("unique %d != distinct frequencies %d", len(r.Unique), len(r.Frequencies))
	}
	if !r.Pairs.Contains("text", "this") {
		t.Error("Expected (text, this) across the line break")
	}
}

func TestRunSelectedOnly(t *testing.T) {
	r, err := Run(Request{
		Source:   source.NewText("alpha beta"),
		Analyses: Analyses{Unique: true},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Frequencies != nil || r.Pairs != nil {
		t.Error("Only the unique set should be computed")
	}
	if len(r.Unique) != 2 {
		t.Errorf("unique = %v", r.Unique.Sorted())
	}
}

func TestRunFilterAppliesToFrequenciesOnly(t *testing.T) {
	r, err := Run(Request{
		Source:   source.NewText("a bee cats dogs"),
		Filter:   func(tok string) bool { return len(tok) > 3 },
		Window:   1,
		Analyses: AllAnalyses(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.Frequencies) != 2 {
		t.Errorf("frequencies = %v", r.Frequencies)
	}
	if len(r.Unique) != 4 {
		t.Errorf("unique set should be unfiltered, got %v", r.Unique.Sorted())
	}
}

func TestRunNegativeWindow(t *testing.T) {
	_, err := Run(Request{
		Source:   source.NewText("a b"),
		Window:   -2,
		Analyses: AllAnalyses(),
	})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestNewIDOrdered(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Fatal("IDs should be unique")
	}
	if a > b {
		t.Errorf("IDs should be increasing: %s then %s", a, b)
	}
}

func TestWriteJSON(t *testing.T) {
	r, err := Run(Request{
		Input:    "inline",
		Source:   source.NewText("b a b c b"),
		Window:   1,
		Analyses: AllAnalyses(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r, 2); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got struct {
		ID          string `json:"id"`
		Input       string `json:"input"`
		TotalTokens int    `json:"total_tokens"`
		Frequencies []struct {
			Token string `json:"token"`
			Count int    `json:"count"`
		} `json:"frequencies"`
		Unique []string    `json:"unique"`
		Window int         `json:"window"`
		Pairs  [][2]string `json:"pairs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if got.ID != r.ID || got.Input != "inline" {
		t.Errorf("header = %q %q", got.ID, got.Input)
	}
	if got.TotalTokens != 5 {
		t.Errorf("total_tokens = %d, want 5", got.TotalTokens)
	}
	if len(got.Frequencies) != 2 || got.Frequencies[0].Token != "b" || got.Frequencies[0].Count != 3 {
		t.Errorf("frequencies = %+v", got.Frequencies)
	}
	if len(got.Unique) != 2 || got.Unique[0] != "a" || got.Unique[1] != "b" {
		t.Errorf("unique = %v", got.Unique)
	}
	if got.Window != 1 {
		t.Errorf("window = %d", got.Window)
	}
	if len(got.Pairs) != 2 || got.Pairs[0] != [2]string{"a", "b"} {
		t.Errorf("pairs = %v", got.Pairs)
	}
}

func TestWriteJSONOmitsMissingSections(t *testing.T) {
	r, err := Run(Request{Source: source.NewText("x"), Analyses: Analyses{Unique: true}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, key := range []string{"frequencies", "pairs", "window", "total_tokens"} {
		if strings.Contains(out, `"`+key+`"`) {
			t.Errorf("JSON should omit %q:\n%s", key, out)
		}
	}
}

func TestWriteTable(t *testing.T) {
	r, err := Run(Request{
		Source:   source.NewText("Cat cat CAT dog"),
		Window:   1,
		Analyses: AllAnalyses(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, r, 0); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Word frequencies (4 tokens, 2 distinct)", "Unique words (2)", "Co-occurrences (window 1, 3 pairs)", "cat", "dog"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
