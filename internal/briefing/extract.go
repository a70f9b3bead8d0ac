// Package briefing turns free-text business context into a structured
// record that steers question generation. Extraction is keyword-driven and
// deliberately shallow; when the text carries too little signal the package
// returns nil so the caller can fall back to a template or prompt a human.
package briefing

import "strings"

// Urgency is the time sensitivity of an analysis request.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Record is a structured briefing. SubjectArea, TargetAudience and
// TimeSensitivity always carry a concrete value; the extended fields
// default to empty and are only filled by richer sources.
type Record struct {
	SubjectArea     string
	Objectives      []string
	TargetAudience  string
	Background      string
	Narrative       string
	TimeSensitivity Urgency

	// Extended, optional.
	ProblemStatement string
	Hypotheses       []string
	Benchmarks       []string
	DecisionContext  string
	RiskAreas        string
}

const (
	// minBackgroundLen is the signal floor: shorter background text cannot
	// be classified and yields a nil Record.
	minBackgroundLen = 50

	narrativeMax  = 500
	messageMax    = 200
	backgroundMax = 300
)

// subjectRules map line keywords to a subject area. Later lines override
// earlier ones; within one line the first matching rule wins.
var subjectRules = []struct {
	keywords []string
	subject  string
}{
	{[]string{"financial", "finance", "asset", "revenue", "profit"}, "financial analysis"},
	{[]string{"sales", "pipeline", "customer"}, "sales performance"},
	{[]string{"marketing", "campaign", "brand", "customer acquisition"}, "marketing analytics"},
	{[]string{"operational", "operations", "efficiency", "process"}, "operational analytics"},
}

// objectiveRules accumulate: every rule whose keywords all appear in a line
// appends its objective. anyOf is an additional one-of requirement.
var objectiveRules = []struct {
	all       []string
	anyOf     []string
	objective string
}{
	{all: []string{"risk", "assessment"}, objective: "risk assessment"},
	{all: []string{"performance"}, anyOf: []string{"evaluation", "analysis"}, objective: "performance evaluation"},
	{all: []string{"trend"}, objective: "trend analysis"},
	{all: []string{"optimization"}, objective: "optimization analysis"},
}

var audienceRules = []struct {
	keyword  string
	audience string
}{
	{"executive", "executives"},
	{"manager", "managers"},
	{"analyst", "analysts"},
}

// Extract parses background text (and an optional instruction message) into
// a Record. Returns nil when the background is absent or under the minimum
// length threshold; extraction itself never fails.
func Extract(background, message string) *Record {
	background = strings.TrimSpace(background)
	message = strings.TrimSpace(message)
	if len(background) <= minBackgroundLen {
		return nil
	}

	rec := &Record{
		SubjectArea:     "general analysis",
		TargetAudience:  "analysts",
		Background:      background,
		TimeSensitivity: UrgencyMedium,
	}

	for _, raw := range strings.Split(strings.ToLower(background), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, r := range subjectRules {
			if containsAny(line, r.keywords) {
				rec.SubjectArea = r.subject
				break
			}
		}
		for _, r := range objectiveRules {
			if containsAll(line, r.all) && (len(r.anyOf) == 0 || containsAny(line, r.anyOf)) {
				rec.Objectives = appendUnique(rec.Objectives, r.objective)
			}
		}
		for _, r := range audienceRules {
			if strings.Contains(line, r.keyword) {
				rec.TargetAudience = r.audience
				break
			}
		}
		if strings.Contains(line, "urgent") || strings.Contains(line, "high") {
			rec.TimeSensitivity = UrgencyHigh
		} else if strings.Contains(line, "low") {
			rec.TimeSensitivity = UrgencyLow
		}
	}

	if len(rec.Objectives) == 0 {
		rec.Objectives = []string{"general analysis"}
	}
	rec.Narrative = buildNarrative(background, message)
	return rec
}

// buildNarrative synthesizes a bounded summary from the raw texts. The
// truncation lengths are fixed, not configurable.
func buildNarrative(background, message string) string {
	if message != "" {
		return "Instructions: " + truncate(message, messageMax) +
			" | Background: " + truncate(background, backgroundMax)
	}
	return truncate(background, narrativeMax)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

func containsAll(line string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(line, kw) {
			return false
		}
	}
	return true
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
