package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/askloom-cli/internal/ai"
	"github.com/KaramelBytes/askloom-cli/internal/briefing"
	"github.com/KaramelBytes/askloom-cli/internal/logging"
	"github.com/KaramelBytes/askloom-cli/internal/pipeline"
	"github.com/KaramelBytes/askloom-cli/internal/utils"
)

var (
	anaOutputPath    string
	anaFormat        string
	anaQuestions     int
	anaCompQuestions int
	anaMaxRows       int
	anaBackground    string
	anaMessage       string
	anaTemplate      string
	anaYes           bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Profile datasets and generate analytical questions",
	Long: `Analyze loads each dataset file, classifies its columns, and attaches a
numbered question block per dataset (plus a comparison block when two or
more datasets load successfully). Failures are collected per dataset and
never abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		log, err := logging.New(debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		if anaQuestions > 0 {
			cfg.Questions = anaQuestions
		}
		if anaCompQuestions > 0 {
			cfg.ComparisonQuestions = anaCompQuestions
		}
		if anaMaxRows > 0 {
			cfg.MaxRows = anaMaxRows
		}

		rec, err := resolveBriefing(args)
		if err != nil {
			return err
		}

		var client pipeline.Generator
		if !cfg.Offline {
			key := cfg.APIKey
			if key == "" {
				key = os.Getenv("OPENROUTER_API_KEY")
			}
			if key == "" {
				log.Warn("no API key configured, falling back to offline templates")
			} else {
				client = ai.NewClient(key,
					time.Duration(cfg.HTTPTimeoutSec)*time.Second,
					cfg.RetryMaxAttempts,
					time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond,
					time.Duration(cfg.RetryMaxDelayMs)*time.Millisecond)
			}
		}

		runner := pipeline.New(pipeline.Options{
			Cfg:          cfg,
			Log:          log,
			Client:       client,
			ConfirmLarge: confirmLargeFile,
		})

		rep, err := runner.Run(context.Background(), args, rec)
		if err != nil {
			return err
		}

		var out []byte
		switch strings.ToLower(anaFormat) {
		case "", "text":
			out = []byte(rep.Text())
		case "table":
			out = []byte(rep.Table() + "\n" + rep.Text())
		case "json":
			out, err = rep.JSON()
			if err != nil {
				return fmt.Errorf("render json: %w", err)
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use text|table|json)", anaFormat)
		}

		if anaOutputPath != "" {
			if err := utils.EnsureDir(filepath.Dir(anaOutputPath)); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote report to %s\n", anaOutputPath)
		} else {
			fmt.Println(string(out))
		}

		if len(rep.Failures) > 0 {
			fmt.Fprintf(os.Stderr, "⚠ %d of %d datasets failed\n", len(rep.Failures), len(args))
		}
		return nil
	},
}

// resolveBriefing picks the business context for the run: an explicit
// template, extracted background/message files, or inference from the
// dataset names.
func resolveBriefing(paths []string) (*briefing.Record, error) {
	if anaTemplate != "" {
		rec := briefing.Template(anaTemplate)
		if rec == nil {
			return nil, fmt.Errorf("unknown briefing template: %s (see 'askloom templates')", anaTemplate)
		}
		return rec, nil
	}
	var background, message string
	if anaBackground != "" {
		b, err := os.ReadFile(anaBackground)
		if err != nil {
			return nil, fmt.Errorf("read background: %w", err)
		}
		background = string(b)
	}
	if anaMessage != "" {
		m, err := os.ReadFile(anaMessage)
		if err != nil {
			return nil, fmt.Errorf("read message: %w", err)
		}
		message = string(m)
	}
	if rec := briefing.Extract(background, message); rec != nil {
		return rec, nil
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return briefing.Quick(names), nil
}

// confirmLargeFile prompts on stdin for files in the warn band; --yes
// accepts everything without asking.
func confirmLargeFile(path string, sizeMB float64) bool {
	if anaYes {
		return true
	}
	fmt.Printf("⚠ %s is %.1fMB; loading may be slow. Continue? (y/n): ", filepath.Base(path), sizeMB)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "text", "report format: text | table | json")
	analyzeCmd.Flags().IntVarP(&anaQuestions, "questions", "n", 0, "questions per dataset (overrides config)")
	analyzeCmd.Flags().IntVar(&anaCompQuestions, "comparison-questions", 0, "questions in the comparison block (overrides config)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to load per dataset (overrides config)")
	analyzeCmd.Flags().StringVar(&anaBackground, "background", "", "path to a background text file for context extraction")
	analyzeCmd.Flags().StringVar(&anaMessage, "message", "", "path to an instruction/message text file")
	analyzeCmd.Flags().StringVar(&anaTemplate, "template", "", "use a predefined briefing template (see 'askloom templates')")
	analyzeCmd.Flags().BoolVarP(&anaYes, "yes", "y", false, "auto-confirm large-file warnings")
}
