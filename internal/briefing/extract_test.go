package briefing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReturnsNilOnThinBackground(t *testing.T) {
	assert.Nil(t, Extract("", ""))
	assert.Nil(t, Extract("   ", "long message that should not matter"))
	assert.Nil(t, Extract("quarterly numbers attached", ""))
}

func TestExtractFinancialBriefing(t *testing.T) {
	background := strings.Join([]string{
		"This dataset covers the revenue and profit of our regional branches.",
		"We need a risk assessment and a trend review before the board meeting.",
		"The findings go to the executive committee.",
		"This request is urgent.",
	}, "\n")

	rec := Extract(background, "")
	require.NotNil(t, rec)
	assert.Equal(t, "financial analysis", rec.SubjectArea)
	assert.Equal(t, []string{"risk assessment", "trend analysis"}, rec.Objectives)
	assert.Equal(t, "executives", rec.TargetAudience)
	assert.Equal(t, UrgencyHigh, rec.TimeSensitivity)
	assert.Equal(t, background, rec.Background)
	assert.Equal(t, background, rec.Narrative)
}

func TestExtractLastMatchingLineWinsForSubject(t *testing.T) {
	background := strings.Join([]string{
		"The first tab contains marketing campaign spend for last season.",
		"The second and much larger tab tracks warehouse operations throughput.",
	}, "\n")

	rec := Extract(background, "")
	require.NotNil(t, rec)
	assert.Equal(t, "operational analytics", rec.SubjectArea)
}

func TestExtractInjectsDefaultObjective(t *testing.T) {
	background := "Weekly export of the booking ledger from the reservation system, one record per booking."
	rec := Extract(background, "")
	require.NotNil(t, rec)
	assert.Equal(t, []string{"general analysis"}, rec.Objectives)
	assert.Equal(t, "general analysis", rec.SubjectArea)
	assert.Equal(t, UrgencyMedium, rec.TimeSensitivity)
}

func TestExtractDeduplicatesObjectives(t *testing.T) {
	background := strings.Join([]string{
		"Prepare a trend overview of monthly bookings.",
		"The trend since January matters most.",
		"Include the optimization opportunities we discussed.",
	}, "\n")

	rec := Extract(background, "")
	require.NotNil(t, rec)
	assert.Equal(t, []string{"trend analysis", "optimization analysis"}, rec.Objectives)
}

func TestNarrativeTruncation(t *testing.T) {
	background := strings.Repeat("b", 600)
	rec := Extract(background, "")
	require.NotNil(t, rec)
	assert.Len(t, rec.Narrative, narrativeMax+3)
	assert.True(t, strings.HasSuffix(rec.Narrative, "..."))

	message := strings.Repeat("m", 250)
	rec = Extract(background, message)
	require.NotNil(t, rec)
	assert.Contains(t, rec.Narrative, "Instructions: "+strings.Repeat("m", messageMax)+"...")
	assert.Contains(t, rec.Narrative, "| Background: "+strings.Repeat("b", backgroundMax)+"...")
}

func TestExtractNeverTruncatesShortNarrative(t *testing.T) {
	background := "Ticketing data for the two busiest routes, collected over the summer period."
	rec := Extract(background, "focus on the weekend peaks")
	require.NotNil(t, rec)
	assert.Equal(t, "Instructions: focus on the weekend peaks | Background: "+background, rec.Narrative)
}

func TestTemplateLookup(t *testing.T) {
	rec := Template("financial")
	require.NotNil(t, rec)
	assert.Equal(t, "financial analysis", rec.SubjectArea)
	assert.Equal(t, UrgencyHigh, rec.TimeSensitivity)

	// Returned record is a copy: mutating it must not leak into the table.
	rec.Objectives[0] = "mutated"
	again := Template("financial")
	require.NotNil(t, again)
	assert.Equal(t, "performance evaluation", again.Objectives[0])

	assert.Nil(t, Template("astrology"))
	assert.NotEmpty(t, TemplateKeys())
}

func TestInferSubject(t *testing.T) {
	cases := []struct {
		names   []string
		subject string
	}{
		{[]string{"stock_prices_2023.csv"}, "financial analysis"},
		{[]string{"customer_churn.csv", "campaign_spend.csv"}, "sales and marketing analytics"},
		{[]string{"payroll_q1.xlsx"}, "human resources analytics"},
		{[]string{"inventory_snapshot.json"}, "operational analytics"},
		{[]string{"mystery.csv"}, "general data analytics"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.subject, InferSubject(tc.names), "names %v", tc.names)
	}
}

func TestQuickBriefing(t *testing.T) {
	rec := Quick([]string{"stock_prices.csv", "dividends.csv"})
	require.NotNil(t, rec)
	assert.Equal(t, "financial analysis", rec.SubjectArea)
	assert.Equal(t, []string{"exploratory analysis"}, rec.Objectives)
	assert.Contains(t, rec.Background, "stock_prices.csv, dividends.csv")
}
