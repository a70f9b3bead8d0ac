package classify

import (
	"strings"

	"golang.org/x/text/message"

	"github.com/KaramelBytes/askloom-cli/internal/ingest"
)

// rule is one ordered keyword predicate. The chains below are evaluated
// first-match-wins; once a rule matches, later rules are never consulted.
type rule struct {
	keywords []string
	category Category
	describe func(p *message.Printer, col ingest.Column) string
}

func (r rule) matches(name string) bool {
	return containsAny(name, r.keywords...)
}

func containsAny(name string, keywords ...string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// numericRules covers temporal markers first, then financial markers.
// The identifier heuristic and the generic fallback live in classifyNumeric
// because they depend on statistics, not just the name.
var numericRules = []rule{
	{
		keywords: []string{"year", "yr"},
		category: TemporalYear,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Temporal identifier representing calendar year. Range: %d-%d. Used for time-series analysis and year-over-year comparisons.",
				int(col.Stats.Min), int(col.Stats.Max))
		},
	},
	{
		keywords: []string{"quarter", "qtr"},
		category: TemporalQuarter,
		describe: func(p *message.Printer, col ingest.Column) string {
			return "Quarterly time period identifier (1-4). Enables seasonal analysis and quarterly performance tracking."
		},
	},
	{
		keywords: []string{"month", "mon"},
		category: TemporalMonth,
		describe: func(p *message.Printer, col ingest.Column) string {
			return "Monthly identifier (1-12). Supports monthly trend analysis and seasonal pattern detection."
		},
	},
	{
		keywords: []string{"day", "date"},
		category: TemporalDay,
		describe: func(p *message.Printer, col ingest.Column) string {
			return "Daily identifier. Supports granular time-series analysis and day-level patterns."
		},
	},
	{
		keywords: []string{"ratio", "rate", "percent", "pct"},
		category: FinancialRatio,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Financial ratio/rate metric. Range: %.2f to %.2f, Avg: %.2f. Used for financial health assessment and comparative analysis.",
				col.Stats.Min, col.Stats.Max, col.Stats.Mean)
		},
	},
	{
		keywords: []string{"revenue", "sales", "income"},
		category: FinancialRevenue,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Revenue/income metric. Range: %.0f to %.0f. Key performance indicator for financial performance evaluation.",
				col.Stats.Min, col.Stats.Max)
		},
	},
	{
		keywords: []string{"cost", "expense", "expenditure"},
		category: FinancialCost,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Cost/expense metric. Range: %.0f to %.0f. Used for cost analysis and budgeting.",
				col.Stats.Min, col.Stats.Max)
		},
	},
	{
		keywords: []string{"asset", "liability", "equity"},
		category: FinancialBalance,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Balance sheet item. Range: %.0f to %.0f. Critical for financial position analysis.",
				col.Stats.Min, col.Stats.Max)
		},
	},
	{
		keywords: []string{"profit", "margin", "earnings"},
		category: FinancialProfit,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Profitability metric. Range: %.2f to %.2f. Measures business profitability and operational efficiency.",
				col.Stats.Min, col.Stats.Max)
		},
	},
}

// textRules is the categorical chain. The uniqueness identifier check runs
// before this chain in classifyText.
var textRules = []rule{
	{
		keywords: []string{"id", "code", "key", "carrier", "ticker", "symbol"},
		category: Identifier,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Categorical identifier. %d unique values (e.g., '%s'). Used for grouping and entity identification.",
				col.Stats.Unique, col.Stats.TopValue)
		},
	},
	{
		keywords: []string{"name", "title", "label"},
		category: CategoricalLabel,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Descriptive name/label field. %d unique values. Used for display and reference purposes.",
				col.Stats.Unique)
		},
	},
	{
		keywords: []string{"category", "type", "class", "group"},
		category: CategoricalLabel,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Classification/category field. %d categories (most common: '%s'). Enables segmentation and comparative analysis.",
				col.Stats.Unique, col.Stats.TopValue)
		},
	},
	{
		keywords: []string{"status", "state", "flag"},
		category: CategoricalStatus,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Status/state indicator. %d possible states (e.g., '%s'). Tracks entity state or condition.",
				col.Stats.Unique, col.Stats.TopValue)
		},
	},
	{
		keywords: []string{"location", "region", "city", "country"},
		category: CategoricalGeography,
		describe: func(p *message.Printer, col ingest.Column) string {
			return p.Sprintf("Geographic identifier. %d locations. Supports geographic analysis and regional comparisons.",
				col.Stats.Unique)
		},
	},
}
