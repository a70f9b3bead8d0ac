// Package pipeline drives one analysis run: ingest each dataset, classify
// its columns, and attach an exact-count question block, falling back to
// the offline templates when generation is unavailable or disabled.
// Datasets are independent; one failure never aborts the rest.
package pipeline

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/askloom-cli/internal/ai"
	"github.com/KaramelBytes/askloom-cli/internal/briefing"
	"github.com/KaramelBytes/askloom-cli/internal/classify"
	"github.com/KaramelBytes/askloom-cli/internal/config"
	"github.com/KaramelBytes/askloom-cli/internal/ingest"
	"github.com/KaramelBytes/askloom-cli/internal/logging"
	"github.com/KaramelBytes/askloom-cli/internal/question"
	"github.com/KaramelBytes/askloom-cli/internal/report"
	"github.com/KaramelBytes/askloom-cli/internal/utils"
)

// Generator is the question-generation backend. *ai.Client satisfies it;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error)
}

// Options configures a Runner. Client may be nil, which forces the offline
// path regardless of cfg.Offline. ConfirmLarge is consulted for files in
// the warn band; nil means proceed without asking.
type Options struct {
	Cfg          *config.Global
	Log          *logging.Logger
	Client       Generator
	ConfirmLarge func(path string, sizeMB float64) bool
}

type Runner struct {
	cfg     *config.Global
	log     *logging.Logger
	client  Generator
	confirm func(string, float64) bool
}

func New(opts Options) *Runner {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{
		cfg:     opts.Cfg,
		log:     log,
		client:  opts.Client,
		confirm: opts.ConfirmLarge,
	}
}

func (r *Runner) ingestOptions() ingest.Options {
	opt := ingest.DefaultOptions()
	if r.cfg.MaxRows > 0 {
		opt.MaxRows = r.cfg.MaxRows
	}
	if r.cfg.MaxFileSizeMB > 0 {
		opt.MaxFileMB = r.cfg.MaxFileSizeMB
	}
	if r.cfg.LargeFileWarnMB > 0 {
		opt.WarnFileMB = r.cfg.LargeFileWarnMB
	}
	return opt
}

func (r *Runner) questionCount() int {
	if r.cfg.Questions > 0 {
		return r.cfg.Questions
	}
	return 15
}

func (r *Runner) comparisonCount() int {
	if r.cfg.ComparisonQuestions > 0 {
		return r.cfg.ComparisonQuestions
	}
	return 10
}

// Run analyzes every path and returns the collected report. Per-dataset
// errors land in the report's failure list; Run itself only errors when
// the context is cancelled.
func (r *Runner) Run(ctx context.Context, paths []string, rec *briefing.Record) (*report.Report, error) {
	rep := report.New()
	opt := r.ingestOptions()

	var loaded []*ingest.Dataset
	var loadedDesc [][]classify.Descriptor
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		ds, err := r.loadOne(path, opt)
		if err != nil {
			r.log.Warn("dataset skipped", "path", path, "error", err)
			rep.AddFailure(path, err)
			continue
		}
		desc := classify.All(ds)
		rep.AddDataset(ds, desc)
		loaded = append(loaded, ds)
		loadedDesc = append(loadedDesc, desc)
	}

	count := r.questionCount()
	for i, ds := range loaded {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.AddBlock(r.questionsFor(ctx, ds, loadedDesc[i], rec, count))
	}

	if len(loaded) >= 2 {
		names := make([]string, len(loaded))
		for i, ds := range loaded {
			names[i] = ds.Name
		}
		rep.AddBlock(r.comparisonFor(ctx, names, rec))
	}
	return rep, nil
}

// loadOne applies the size policy, asks for confirmation in the warn band,
// and loads the dataset.
func (r *Runner) loadOne(path string, opt ingest.Options) (*ingest.Dataset, error) {
	verdict, sizeMB, err := ingest.CheckFile(path, opt)
	if err != nil {
		return nil, err
	}
	if verdict == ingest.VerdictWarn {
		r.log.Warn("large file", "path", path, "size_mb", fmt.Sprintf("%.1f", sizeMB))
		if r.confirm != nil && !r.confirm(path, sizeMB) {
			return nil, fmt.Errorf("skipped: large file (%.1fMB) declined", sizeMB)
		}
	}
	return ingest.Load(path, opt)
}

func (r *Runner) questionsFor(ctx context.Context, ds *ingest.Dataset, desc []classify.Descriptor, rec *briefing.Record, count int) question.Block {
	header := fmt.Sprintf("--- Enhanced Questions for %s ---", ds.Name)
	if r.cfg.Offline || r.client == nil {
		r.log.Debug("offline questions", "dataset", ds.Name, "hint", question.DetectHint(ds.Name))
		return question.Individual(ds.Name, count)
	}

	prompt := ai.BuildQuestionPrompt(ds, desc, rec, count)
	r.log.Debug("prompt built", "dataset", ds.Name, "est_tokens", utils.CountTokens(prompt))
	resp, err := r.client.Generate(ctx, ai.GenerateRequest{
		Model:    r.cfg.DefaultModel,
		Messages: ai.QuestionMessages(prompt),
	})
	if err != nil {
		r.log.Warn("generation failed, using offline fallback", "dataset", ds.Name, "error", err)
		return question.Individual(ds.Name, count)
	}
	b := question.Normalize(header, resp.Content(), count, question.SourceGenerated)
	if b.Short() {
		r.log.Warn("generator returned fewer questions than requested",
			"dataset", ds.Name, "got", len(b.Items), "requested", count)
	}
	return b
}

func (r *Runner) comparisonFor(ctx context.Context, names []string, rec *briefing.Record) question.Block {
	count := r.comparisonCount()
	if r.cfg.Offline || r.client == nil {
		return question.Comparison(names, count)
	}
	prompt := ai.BuildComparisonPrompt(names, rec, count)
	resp, err := r.client.Generate(ctx, ai.GenerateRequest{
		Model:    r.cfg.DefaultModel,
		Messages: ai.QuestionMessages(prompt),
	})
	if err != nil {
		r.log.Warn("comparison generation failed, using offline fallback", "error", err)
		return question.Comparison(names, count)
	}
	return question.Normalize("--- Enhanced Comparison Questions ---", resp.Content(), count, question.SourceGenerated)
}
