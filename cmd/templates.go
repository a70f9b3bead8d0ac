package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/askloom-cli/internal/briefing"
	"github.com/KaramelBytes/askloom-cli/internal/question"
)

var (
	tplPreview      string
	tplPreviewCount int
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List briefing templates or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tplPreview != "" {
			b := question.Individual(tplPreview, tplPreviewCount)
			fmt.Println(question.Render(b))
			if b.Short() {
				fmt.Printf("(template set holds only %d questions)\n", len(b.Items))
			}
			return nil
		}
		if len(args) == 1 {
			rec := briefing.Template(args[0])
			if rec == nil {
				return fmt.Errorf("unknown template: %s", args[0])
			}
			printBriefing(rec)
			return nil
		}
		keys := briefing.TemplateKeys()
		sort.Strings(keys)
		for _, k := range keys {
			rec := briefing.Template(k)
			fmt.Printf("%-14s %s (audience: %s)\n", k, rec.SubjectArea, rec.TargetAudience)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVar(&tplPreview, "preview-questions", "", "preview the offline question set a dataset name would select")
	templatesCmd.Flags().IntVar(&tplPreviewCount, "count", 15, "number of questions to preview")
}
