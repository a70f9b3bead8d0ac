// Package report assembles the final analysis output: per-dataset profiles
// with classified columns, the question blocks, and any per-dataset
// failures collected along the way.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KaramelBytes/askloom-cli/internal/classify"
	"github.com/KaramelBytes/askloom-cli/internal/ingest"
	"github.com/KaramelBytes/askloom-cli/internal/question"
	"github.com/KaramelBytes/askloom-cli/internal/utils"
)

// ColumnSummary is one classified column in a dataset summary.
type ColumnSummary struct {
	Name        string `json:"-"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// DatasetSummary is the per-dataset profile handed to report writers.
type DatasetSummary struct {
	Name      string
	Rows      int
	ColumnN   int
	Truncated bool
	Columns   []ColumnSummary
}

// Failure records one dataset that could not be analyzed. Failures never
// abort the rest of a batch.
type Failure struct {
	Dataset string `json:"dataset"`
	Error   string `json:"error"`
}

// Report is one complete analysis run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Summaries   []DatasetSummary
	Blocks      []question.Block
	Failures    []Failure
}

// New creates an empty report with a fresh run id.
func New() *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// AddDataset appends a summary built from a loaded dataset and its
// descriptors. Descriptor order follows column order.
func (r *Report) AddDataset(ds *ingest.Dataset, descriptors []classify.Descriptor) {
	s := DatasetSummary{
		Name:      ds.Name,
		Rows:      ds.Rows,
		ColumnN:   len(ds.Columns),
		Truncated: ds.Truncated,
	}
	for _, d := range descriptors {
		s.Columns = append(s.Columns, ColumnSummary{
			Name:        d.ColumnName,
			Category:    string(d.Category),
			Description: d.Description,
		})
	}
	r.Summaries = append(r.Summaries, s)
}

// AddBlock appends a finalized question block.
func (r *Report) AddBlock(b question.Block) {
	r.Blocks = append(r.Blocks, b)
}

// AddFailure records a dataset-level error.
func (r *Report) AddFailure(dataset string, err error) {
	r.Failures = append(r.Failures, Failure{Dataset: dataset, Error: err.Error()})
}

// Text renders the full plain-text report.
func (r *Report) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s (%s)\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))

	for _, s := range r.Summaries {
		fmt.Fprintf(&sb, "\n=== %s ===\n", s.Name)
		fmt.Fprintf(&sb, "Rows: %d  Columns: %d", s.Rows, s.ColumnN)
		if s.Truncated {
			sb.WriteString("  (row cap reached, data may be truncated)")
		}
		sb.WriteString("\n")
		for _, c := range s.Columns {
			fmt.Fprintf(&sb, "- %s [%s]: %s\n", c.Name, c.Category, c.Description)
		}
	}

	for _, b := range r.Blocks {
		sb.WriteString("\n")
		sb.WriteString(question.Render(b))
		sb.WriteString("\n")
		if b.Short() {
			fmt.Fprintf(&sb, "(only %d of %d requested questions available)\n", len(b.Items), b.Requested)
		}
	}

	if len(r.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&sb, "- %s: %s\n", f.Dataset, f.Error)
		}
	}
	return sb.String()
}

// Table renders the per-dataset column profiles as aligned tables.
func (r *Report) Table() string {
	var sb strings.Builder
	for i, s := range r.Summaries {
		if i > 0 {
			sb.WriteString("\n")
		}
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.SetTitle(fmt.Sprintf("%s (%d rows)", s.Name, s.Rows))
		tw.AppendHeader(table.Row{"Column", "Category", "Description"})
		for _, c := range s.Columns {
			tw.AppendRow(table.Row{c.Name, c.Category, c.Description})
		}
		sb.WriteString(tw.Render())
		sb.WriteString("\n")
	}
	return sb.String()
}

// jsonDataset mirrors the downstream writer contract: row count, column
// count, and a per-column category/description map.
type jsonDataset struct {
	RowCount    int                      `json:"row_count"`
	ColumnCount int                      `json:"column_count"`
	Truncated   bool                     `json:"truncated,omitempty"`
	Columns     map[string]ColumnSummary `json:"columns"`
}

type jsonBlock struct {
	Header    string   `json:"header"`
	Source    string   `json:"source"`
	Requested int      `json:"requested_count"`
	Short     bool     `json:"short,omitempty"`
	Items     []string `json:"items"`
}

type jsonReport struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Datasets    map[string]jsonDataset `json:"datasets"`
	Questions   []jsonBlock            `json:"questions"`
	Failures    []Failure              `json:"failures,omitempty"`
}

// JSON marshals the report for machine consumers.
func (r *Report) JSON() ([]byte, error) {
	out := jsonReport{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Datasets:    make(map[string]jsonDataset, len(r.Summaries)),
		Failures:    r.Failures,
	}
	for _, s := range r.Summaries {
		cols := make(map[string]ColumnSummary, len(s.Columns))
		for _, c := range s.Columns {
			cols[c.Name] = c
		}
		out.Datasets[s.Name] = jsonDataset{
			RowCount:    s.Rows,
			ColumnCount: s.ColumnN,
			Truncated:   s.Truncated,
			Columns:     cols,
		}
	}
	for _, b := range r.Blocks {
		jb := jsonBlock{
			Header:    b.Header,
			Source:    string(b.Source),
			Requested: b.Requested,
			Short:     b.Short(),
		}
		for _, it := range b.Items {
			jb.Items = append(jb.Items, it.Text)
		}
		out.Questions = append(out.Questions, jb)
	}
	return utils.PrettyJSON(out)
}
