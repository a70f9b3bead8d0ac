package ai

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/askloom-cli/internal/briefing"
	"github.com/KaramelBytes/askloom-cli/internal/classify"
	"github.com/KaramelBytes/askloom-cli/internal/ingest"
)

// BuildQuestionPrompt assembles the user prompt for generating analytical
// questions about one dataset. The briefing record is optional; when nil the
// prompt carries only the dataset profile.
func BuildQuestionPrompt(ds *ingest.Dataset, descriptors []classify.Descriptor, rec *briefing.Record, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate exactly %d analytical questions about the dataset %q.\n", count, ds.Name)
	fmt.Fprintf(&sb, "The dataset has %d rows and %d columns:\n", ds.Rows, len(ds.Columns))
	for _, d := range descriptors {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", d.ColumnName, d.Category, d.Description)
	}
	if rec != nil {
		fmt.Fprintf(&sb, "\nBusiness context:\n")
		fmt.Fprintf(&sb, "- Subject area: %s\n", rec.SubjectArea)
		fmt.Fprintf(&sb, "- Objectives: %s\n", strings.Join(rec.Objectives, ", "))
		fmt.Fprintf(&sb, "- Audience: %s\n", rec.TargetAudience)
		fmt.Fprintf(&sb, "- Time sensitivity: %s\n", rec.TimeSensitivity)
		if rec.Narrative != "" {
			fmt.Fprintf(&sb, "- Narrative: %s\n", rec.Narrative)
		}
	}
	fmt.Fprintf(&sb, "\nNumber the questions 1 through %d, one per line, with no other text.", count)
	return sb.String()
}

// BuildComparisonPrompt assembles the user prompt for cross-dataset
// comparison questions.
func BuildComparisonPrompt(names []string, rec *briefing.Record, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate exactly %d analytical questions comparing these datasets: %s.\n",
		count, strings.Join(names, ", "))
	if rec != nil {
		fmt.Fprintf(&sb, "Subject area: %s. Audience: %s.\n", rec.SubjectArea, rec.TargetAudience)
	}
	fmt.Fprintf(&sb, "Number the questions 1 through %d, one per line, with no other text.", count)
	return sb.String()
}

// systemPrompt frames the generator as a data analyst.
const systemPrompt = "You are a senior data analyst. You write sharp, specific, answerable analytical questions about tabular datasets."

// QuestionMessages wraps a prompt into a chat request message list.
func QuestionMessages(prompt string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}
