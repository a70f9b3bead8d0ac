package briefing

import "strings"

// Predefined briefing templates for common analysis scenarios. Used when no
// background text is supplied and the caller wants a ready-made record.
var templates = map[string]*Record{
	"financial": {
		SubjectArea:     "financial analysis",
		Objectives:      []string{"performance evaluation", "risk assessment", "trend analysis", "ROI optimization"},
		TargetAudience:  "financial analysts",
		Narrative:       "Investment decisions, portfolio management, and financial planning",
		TimeSensitivity: UrgencyHigh,
	},
	"marketing": {
		SubjectArea:     "marketing analytics",
		Objectives:      []string{"campaign effectiveness", "customer segmentation", "ROI analysis", "brand performance"},
		TargetAudience:  "marketing managers",
		Narrative:       "Marketing strategy optimization, budget allocation, and customer acquisition",
		TimeSensitivity: UrgencyMedium,
	},
	"operations": {
		SubjectArea:     "operational analytics",
		Objectives:      []string{"efficiency optimization", "cost reduction", "process improvement", "quality control"},
		TargetAudience:  "operations managers",
		Narrative:       "Operational excellence, resource optimization, and process automation",
		TimeSensitivity: UrgencyHigh,
	},
	"sales": {
		SubjectArea:     "sales analytics",
		Objectives:      []string{"sales performance", "pipeline analysis", "forecasting", "territory optimization"},
		TargetAudience:  "sales managers",
		Narrative:       "Sales strategy, revenue optimization, and performance management",
		TimeSensitivity: UrgencyHigh,
	},
	"customer": {
		SubjectArea:     "customer analytics",
		Objectives:      []string{"customer behavior", "retention analysis", "satisfaction measurement", "lifetime value"},
		TargetAudience:  "customer success managers",
		Narrative:       "Customer experience improvement, retention strategies, and loyalty programs",
		TimeSensitivity: UrgencyMedium,
	},
	"hr": {
		SubjectArea:     "human resources analytics",
		Objectives:      []string{"employee performance", "retention analysis", "workforce planning", "diversity metrics"},
		TargetAudience:  "HR managers",
		Narrative:       "Talent management, organizational development, and employee engagement",
		TimeSensitivity: UrgencyMedium,
	},
	"supply-chain": {
		SubjectArea:     "supply chain analytics",
		Objectives:      []string{"inventory optimization", "demand forecasting", "supplier performance", "logistics efficiency"},
		TargetAudience:  "supply chain managers",
		Narrative:       "Supply chain optimization, cost reduction, and risk mitigation",
		TimeSensitivity: UrgencyHigh,
	},
	"retail": {
		SubjectArea:     "retail analytics",
		Objectives:      []string{"sales optimization", "inventory management", "customer insights", "pricing strategy"},
		TargetAudience:  "retail managers",
		Narrative:       "Retail performance optimization, customer experience, and profitability",
		TimeSensitivity: UrgencyMedium,
	},
}

// Template returns the predefined briefing for a key, or nil if unknown.
// Returned records are copies; callers may mutate them freely.
func Template(key string) *Record {
	t, ok := templates[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil
	}
	cp := *t
	cp.Objectives = append([]string(nil), t.Objectives...)
	return &cp
}

// TemplateKeys lists the available template names.
func TemplateKeys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	return keys
}

// subjectInference maps dataset-name keywords to an inferred subject area.
var subjectInference = []struct {
	keywords []string
	subject  string
}{
	{[]string{"stock", "price", "financial", "revenue", "profit"}, "financial analysis"},
	{[]string{"sales", "customer", "marketing", "campaign"}, "sales and marketing analytics"},
	{[]string{"employee", "hr", "payroll", "performance"}, "human resources analytics"},
	{[]string{"inventory", "supply", "logistics", "operations"}, "operational analytics"},
}

// InferSubject guesses a subject area from dataset file names. Always
// returns a concrete value; unknown names yield the generic subject.
func InferSubject(datasetNames []string) string {
	combined := strings.ToLower(strings.Join(datasetNames, " "))
	for _, r := range subjectInference {
		if containsAny(combined, r.keywords) {
			return r.subject
		}
	}
	return "general data analytics"
}

// Quick builds a minimal briefing from dataset names alone, used when no
// background text exists and no template was chosen.
func Quick(datasetNames []string) *Record {
	return &Record{
		SubjectArea:     InferSubject(datasetNames),
		Objectives:      []string{"exploratory analysis"},
		TargetAudience:  "data analysts",
		Background:      "Analysis of " + strings.Join(datasetNames, ", "),
		Narrative:       "Data-driven insights and decision support",
		TimeSensitivity: UrgencyMedium,
	}
}
