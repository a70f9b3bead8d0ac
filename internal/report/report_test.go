package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/askloom-cli/internal/classify"
	"github.com/KaramelBytes/askloom-cli/internal/ingest"
	"github.com/KaramelBytes/askloom-cli/internal/question"
)

func sampleReport() *Report {
	r := New()
	ds := &ingest.Dataset{
		Name: "Assets.csv",
		Rows: 120,
		Columns: []ingest.Column{
			{Name: "year", Kind: ingest.KindNumeric},
			{Name: "assets", Kind: ingest.KindNumeric},
		},
	}
	r.AddDataset(ds, []classify.Descriptor{
		{ColumnName: "year", Category: classify.TemporalYear, Description: "Temporal identifier representing calendar year. Range: 2013-2023."},
		{ColumnName: "assets", Category: classify.FinancialBalance, Description: "Balance sheet item. Range: 1,000 to 9,000."},
	})
	r.AddBlock(question.Individual("Assets.csv", 3))
	r.AddFailure("broken.csv", errors.New("ingest broken.csv: empty file"))
	return r
}

func TestReportText(t *testing.T) {
	r := sampleReport()
	text := r.Text()

	assert.Contains(t, text, r.RunID)
	assert.Contains(t, text, "=== Assets.csv ===")
	assert.Contains(t, text, "Rows: 120  Columns: 2")
	assert.Contains(t, text, "year [temporal-year]")
	assert.Contains(t, text, "--- Enhanced Questions for Assets.csv ---")
	assert.Contains(t, text, "1. ")
	assert.Contains(t, text, "broken.csv: ingest broken.csv: empty file")
}

func TestReportTextFlagsShortBlocks(t *testing.T) {
	r := New()
	b := question.Normalize("Questions", "1. Only one", 5, question.SourceGenerated)
	r.AddBlock(b)

	assert.Contains(t, r.Text(), "(only 1 of 5 requested questions available)")
}

func TestReportTextFlagsTruncation(t *testing.T) {
	r := New()
	r.AddDataset(&ingest.Dataset{Name: "big.csv", Rows: 1000000, Truncated: true}, nil)
	assert.Contains(t, r.Text(), "row cap reached")
}

func TestReportTable(t *testing.T) {
	r := sampleReport()
	tbl := r.Table()
	assert.Contains(t, tbl, "Assets.csv (120 rows)")
	assert.Contains(t, tbl, "temporal-year")
	assert.Contains(t, tbl, "assets")
}

func TestReportJSONContract(t *testing.T) {
	r := sampleReport()
	raw, err := r.JSON()
	require.NoError(t, err)

	var decoded struct {
		RunID    string `json:"run_id"`
		Datasets map[string]struct {
			RowCount    int `json:"row_count"`
			ColumnCount int `json:"column_count"`
			Columns     map[string]struct {
				Category    string `json:"category"`
				Description string `json:"description"`
			} `json:"columns"`
		} `json:"datasets"`
		Questions []struct {
			Header    string   `json:"header"`
			Source    string   `json:"source"`
			Requested int      `json:"requested_count"`
			Items     []string `json:"items"`
		} `json:"questions"`
		Failures []Failure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, r.RunID, decoded.RunID)
	ds, ok := decoded.Datasets["Assets.csv"]
	require.True(t, ok)
	assert.Equal(t, 120, ds.RowCount)
	assert.Equal(t, 2, ds.ColumnCount)
	assert.Equal(t, "temporal-year", ds.Columns["year"].Category)
	assert.True(t, strings.Contains(ds.Columns["year"].Description, "2013-2023"))

	require.Len(t, decoded.Questions, 1)
	assert.Equal(t, "offline-fallback", decoded.Questions[0].Source)
	assert.Equal(t, 3, decoded.Questions[0].Requested)
	assert.Len(t, decoded.Questions[0].Items, 3)

	require.Len(t, decoded.Failures, 1)
	assert.Equal(t, "broken.csv", decoded.Failures[0].Dataset)
}
