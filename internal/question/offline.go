package question

import (
	"fmt"
	"strings"
)

// Hint selects which offline template set fits a dataset, derived from
// keywords in the dataset name.
type Hint int

const (
	HintGeneric Hint = iota
	HintAsset
	HintLiability
	HintRatio
)

func (h Hint) String() string {
	switch h {
	case HintAsset:
		return "asset-like"
	case HintLiability:
		return "liability-like"
	case HintRatio:
		return "ratio-like"
	}
	return "generic"
}

// DetectHint maps a dataset name to its template hint.
func DetectHint(datasetName string) Hint {
	lower := strings.ToLower(datasetName)
	switch {
	case strings.Contains(lower, "asset"):
		return HintAsset
	case strings.Contains(lower, "liabilit"):
		return HintLiability
	case strings.Contains(lower, "ratio"):
		return HintRatio
	}
	return HintGeneric
}

// metricTemplates is shared by the three financial hints; %s is replaced
// with the hint's metric term. Each entry is already a complete, clean
// question so offline blocks satisfy the normalizer contract by slicing.
var metricTemplates = []string{
	"What specific trends and patterns can be identified in %s levels over the covered period?",
	"How do %s levels correlate with seasonal variations in operations?",
	"What measurable insights can be extracted from %s data to guide financial risk assessment?",
	"In what ways do %s patterns reveal unexpected relationships or anomalies across entities?",
	"How can %s information be leveraged to predict future financial stability?",
	"What key performance indicators emerge from analyzing %s trends for risk management?",
	"How do seasonal or temporal variations manifest in %s data across different quarters?",
	"What factors contribute most significantly to the variations observed in %s levels?",
	"In what ways can %s data inform strategic business decisions?",
	"How do different entities compare in terms of %s management efficiency?",
	"What are the critical %s thresholds that indicate financial risk?",
	"How do %s trends differ across distinct economic periods?",
	"What %s patterns can be used to identify entities at risk of financial distress?",
	"How do %s levels correlate with overall financial performance metrics?",
	"What actionable insights can decision makers derive from %s analysis for strategic planning?",
}

// genericTemplates parametrize on the dataset name instead of a metric.
var genericTemplates = []string{
	"What specific trends and patterns can be identified in the %s dataset over time?",
	"How do different variables in the %s dataset correlate with each other?",
	"What measurable insights can be extracted from the %s dataset to guide decision-making?",
	"In what ways do the data points in %s reveal unexpected relationships or anomalies?",
	"How can the information in the %s dataset be leveraged to predict future outcomes?",
	"What key performance indicators emerge from analyzing the %s dataset?",
	"How do seasonal or temporal variations manifest in the %s data?",
	"What factors contribute most significantly to the variations observed in %s?",
	"In what ways can the %s dataset inform strategic business decisions?",
	"How do different segments or categories within %s compare in terms of key metrics?",
	"What are the critical thresholds that indicate risk in the %s dataset?",
	"How do trends in %s differ across different time periods?",
	"What patterns in %s can be used to identify potential issues?",
	"How do %s metrics correlate with overall performance indicators?",
	"What actionable insights can be derived from %s analysis for strategic planning?",
}

var comparisonTemplates = []string{
	"How do the key performance metrics compare across %s?",
	"What are the significant differences in trends between the datasets?",
	"Which dataset shows the strongest correlation patterns and why?",
	"How do the data quality and completeness compare across all datasets?",
	"What insights emerge when analyzing all datasets together for risk assessment?",
	"Which dataset contains the most actionable insights for decision-making?",
	"How do the temporal patterns differ between the datasets?",
	"What cross-dataset relationships can be identified for risk management?",
	"Which dataset provides the most reliable predictions for future outcomes?",
	"How do the anomaly patterns compare across all datasets?",
}

func metricFor(h Hint) string {
	switch h {
	case HintAsset:
		return "current asset"
	case HintLiability:
		return "current liability"
	case HintRatio:
		return "current ratio"
	}
	return ""
}

// Individual builds the offline question block for one dataset. The result
// is final: sliced to n items, contiguously numbered, never normalized
// again. Asking for more than the template set holds yields a short block.
func Individual(datasetName string, n int) Block {
	if n < 1 {
		n = 1
	}
	hint := DetectHint(datasetName)
	texts := make([]string, 0, n)
	if hint == HintGeneric {
		for _, tpl := range genericTemplates {
			texts = append(texts, fmt.Sprintf(tpl, datasetName))
		}
	} else {
		metric := metricFor(hint)
		for _, tpl := range metricTemplates {
			texts = append(texts, fmt.Sprintf(tpl, metric))
		}
	}
	if len(texts) > n {
		texts = texts[:n]
	}
	return assemble(fmt.Sprintf("--- Enhanced Questions for %s ---", datasetName), texts, n)
}

// Comparison builds the offline block for cross-dataset analysis.
func Comparison(datasetNames []string, n int) Block {
	if n < 1 {
		n = 1
	}
	joined := strings.Join(datasetNames, ", ")
	texts := make([]string, 0, n)
	for i, tpl := range comparisonTemplates {
		if i == 0 {
			texts = append(texts, fmt.Sprintf(tpl, joined))
			continue
		}
		texts = append(texts, tpl)
	}
	if len(texts) > n {
		texts = texts[:n]
	}
	return assemble("--- Enhanced Comparison Questions ---", texts, n)
}

func assemble(header string, texts []string, requested int) Block {
	b := Block{Header: header, Requested: requested, Source: SourceOffline}
	b.Items = make([]Item, len(texts))
	for i, t := range texts {
		b.Items[i] = Item{Position: i + 1, Text: t}
	}
	return b
}
