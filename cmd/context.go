package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/askloom-cli/internal/briefing"
)

var contextCmd = &cobra.Command{
	Use:   "context <background.txt> [message.txt]",
	Short: "Preview the briefing extracted from context text files",
	Long: `Context runs the keyword extractor over a background file (and an
optional instruction file) and prints the structured briefing that
'analyze' would use. Background text under the minimum length yields no
briefing; analyze then falls back to dataset-name inference.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		background, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read background: %w", err)
		}
		var message []byte
		if len(args) == 2 {
			message, err = os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read message: %w", err)
			}
		}

		rec := briefing.Extract(string(background), string(message))
		if rec == nil {
			fmt.Println("No briefing: background text is missing or too short to classify.")
			return nil
		}
		printBriefing(rec)
		return nil
	},
}

func printBriefing(rec *briefing.Record) {
	fmt.Printf("Subject area:     %s\n", rec.SubjectArea)
	fmt.Printf("Objectives:       %s\n", strings.Join(rec.Objectives, ", "))
	fmt.Printf("Target audience:  %s\n", rec.TargetAudience)
	fmt.Printf("Time sensitivity: %s\n", rec.TimeSensitivity)
	if rec.Narrative != "" {
		fmt.Printf("Narrative:        %s\n", rec.Narrative)
	}
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
