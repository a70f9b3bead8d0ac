// Package classify assigns a semantic category and a human-readable
// description to every profiled column. Classification is total: a column
// that matches no rule degrades to the unresolved category, it never fails.
package classify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KaramelBytes/askloom-cli/internal/ingest"
)

// Category is the inferred domain meaning of a column.
type Category string

const (
	TemporalYear         Category = "temporal-year"
	TemporalQuarter      Category = "temporal-quarter"
	TemporalMonth        Category = "temporal-month"
	TemporalDay          Category = "temporal-day"
	FinancialRatio       Category = "financial-ratio"
	FinancialRevenue     Category = "financial-revenue"
	FinancialCost        Category = "financial-cost"
	FinancialBalance     Category = "financial-balance-sheet"
	FinancialProfit      Category = "financial-profitability"
	Identifier           Category = "identifier"
	CategoricalLabel     Category = "categorical-label"
	CategoricalStatus    Category = "categorical-status"
	CategoricalGeography Category = "categorical-geography"
	BooleanFlag          Category = "boolean-flag"
	GenericNumeric       Category = "generic-numeric"
	GenericCategorical   Category = "generic-categorical"
	Unresolved           Category = "unresolved"
)

// Descriptor is the classifier's verdict for one column. Read-only once
// produced; one Descriptor per Column.
type Descriptor struct {
	ColumnName  string
	Category    Category
	Description string
}

// printer groups thousands the way the descriptions expect ("1,234,567").
var printer = message.NewPrinter(language.English)

// Classify maps one profiled column to a Descriptor. rows is the dataset's
// row count, used for the uniqueness identifier heuristic.
func Classify(col ingest.Column, rows int) Descriptor {
	d := Descriptor{ColumnName: col.Name, Category: Unresolved}

	switch col.Kind {
	case ingest.KindNumeric:
		d.Category, d.Description = classifyNumeric(col, rows)
	case ingest.KindText:
		d.Category, d.Description = classifyText(col, rows)
	case ingest.KindTemporal:
		d.Category = TemporalDay
		d.Description = printer.Sprintf(
			"Datetime field. Range: %s to %s. Enables temporal analysis and time-based filtering.",
			col.Stats.MinTime.Format("2006-01-02"), col.Stats.MaxTime.Format("2006-01-02"))
	case ingest.KindBoolean:
		d.Category = BooleanFlag
		total := col.Stats.NonNull
		truePct := 0.0
		if total > 0 {
			truePct = float64(col.Stats.TrueCount) * 100 / float64(total)
		}
		d.Description = printer.Sprintf(
			"Boolean flag. %.1f%% True, %.1f%% False. Used for binary classification and filtering.",
			truePct, 100-truePct)
	default:
		d.Description = printer.Sprintf(
			"Data field of unresolved type. %d unique values. Requires domain knowledge for interpretation.",
			col.Stats.Unique)
	}
	return d
}

// All classifies every column of a dataset in order.
func All(ds *ingest.Dataset) []Descriptor {
	out := make([]Descriptor, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		out = append(out, Classify(c, ds.Rows))
	}
	return out
}

func classifyNumeric(col ingest.Column, rows int) (Category, string) {
	if col.Stats.NonNull == 0 {
		return Unresolved, "Empty numeric series. No values to analyze."
	}
	for _, r := range numericRules {
		if r.matches(col.Name) {
			return r.category, r.describe(printer, col)
		}
	}
	// Uniqueness forces identifier even without an id-like name.
	if col.Stats.Unique == rows || containsAny(col.Name, "id") {
		return Identifier, printer.Sprintf(
			"Unique identifier with %d distinct values. Used for record identification and data joining.",
			col.Stats.Unique)
	}
	return GenericNumeric, printer.Sprintf(
		"Numeric metric. Range: %.2f to %.2f, Mean: %.2f. %d unique values.",
		col.Stats.Min, col.Stats.Max, col.Stats.Mean, col.Stats.Unique)
}

func classifyText(col ingest.Column, rows int) (Category, string) {
	if col.Stats.NonNull == 0 {
		return Unresolved, "Empty text series. No values to analyze."
	}
	// Every-value-distinct columns are identifiers no matter what they are
	// called (free-text notes, reference strings, hashes).
	if rows > 0 && col.Stats.Unique == rows {
		return Identifier, printer.Sprintf(
			"Categorical identifier. %d unique values. Used for grouping and entity identification.",
			col.Stats.Unique)
	}
	for _, r := range textRules {
		if r.matches(col.Name) {
			return r.category, r.describe(printer, col)
		}
	}
	return GenericCategorical, printer.Sprintf(
		"Categorical text field. %d unique values (most common: '%s'). Useful for grouping and filtering.",
		col.Stats.Unique, col.Stats.TopValue)
}
