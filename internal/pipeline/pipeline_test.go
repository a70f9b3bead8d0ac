package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/askloom-cli/internal/ai"
	"github.com/KaramelBytes/askloom-cli/internal/config"
	"github.com/KaramelBytes/askloom-cli/internal/question"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.GenerateResponse{
		Choices: []ai.Choice{{Message: ai.Message{Role: "assistant", Content: f.reply}}},
	}, nil
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig() *config.Global {
	return &config.Global{
		Questions:           3,
		ComparisonQuestions: 2,
		MaxRows:             1000,
	}
}

func TestRunOfflineProducesFullReport(t *testing.T) {
	dir := t.TempDir()
	assets := writeCSV(t, dir, "Assets.csv", "year,assets\n2021,100\n2022,200\n")
	bookings := writeCSV(t, dir, "bookings.csv", "route,seats\nAB,10\nCD,20\n")

	cfg := testConfig()
	cfg.Offline = true
	r := New(Options{Cfg: cfg})

	rep, err := r.Run(context.Background(), []string{assets, bookings}, nil)
	require.NoError(t, err)

	require.Len(t, rep.Summaries, 2)
	assert.Equal(t, "Assets.csv", rep.Summaries[0].Name)
	assert.Equal(t, 2, rep.Summaries[0].Rows)

	// One block per dataset plus the comparison block.
	require.Len(t, rep.Blocks, 3)
	for _, b := range rep.Blocks[:2] {
		assert.Equal(t, question.SourceOffline, b.Source)
		assert.Len(t, b.Items, 3)
	}
	comparison := rep.Blocks[2]
	assert.Contains(t, comparison.Header, "Comparison")
	assert.Len(t, comparison.Items, 2)
	assert.Empty(t, rep.Failures)
}

func TestRunCollectsFailuresIndependently(t *testing.T) {
	dir := t.TempDir()
	good := writeCSV(t, dir, "good.csv", "a,b\n1,2\n")
	missing := filepath.Join(dir, "missing.csv")
	empty := writeCSV(t, dir, "empty.csv", "")

	cfg := testConfig()
	cfg.Offline = true
	r := New(Options{Cfg: cfg})

	rep, err := r.Run(context.Background(), []string{missing, good, empty}, nil)
	require.NoError(t, err)

	require.Len(t, rep.Summaries, 1)
	assert.Equal(t, "good.csv", rep.Summaries[0].Name)
	require.Len(t, rep.Failures, 2)
	assert.Equal(t, missing, rep.Failures[0].Dataset)
	assert.Equal(t, empty, rep.Failures[1].Dataset)
	// Single surviving dataset: no comparison block.
	require.Len(t, rep.Blocks, 1)
}

func TestRunUsesGeneratorAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	sales := writeCSV(t, dir, "sales.csv", "region,revenue\nnorth,10\nsouth,20\n")

	gen := &fakeGenerator{reply: "Here you go:\n\n1. Alpha\n2. Beta\n3. Gamma\n4. Delta extra"}
	r := New(Options{Cfg: testConfig(), Client: gen})

	rep, err := r.Run(context.Background(), []string{sales}, nil)
	require.NoError(t, err)
	require.Len(t, rep.Blocks, 1)

	b := rep.Blocks[0]
	assert.Equal(t, question.SourceGenerated, b.Source)
	require.Len(t, b.Items, 3)
	assert.Equal(t, "Alpha", b.Items[0].Text)
	assert.False(t, b.Short())
	assert.Equal(t, 1, gen.calls)
}

func TestRunFallsBackOfflineOnGeneratorError(t *testing.T) {
	dir := t.TempDir()
	sales := writeCSV(t, dir, "sales.csv", "region,revenue\nnorth,10\n")

	gen := &fakeGenerator{err: errors.New("rate limited")}
	r := New(Options{Cfg: testConfig(), Client: gen})

	rep, err := r.Run(context.Background(), []string{sales}, nil)
	require.NoError(t, err)
	require.Len(t, rep.Blocks, 1)
	assert.Equal(t, question.SourceOffline, rep.Blocks[0].Source)
	assert.Len(t, rep.Blocks[0].Items, 3)
	assert.Empty(t, rep.Failures)
}

func TestRunOfflineFlagSkipsGenerator(t *testing.T) {
	dir := t.TempDir()
	sales := writeCSV(t, dir, "sales.csv", "region,revenue\nnorth,10\n")

	gen := &fakeGenerator{reply: "1. Should not be used"}
	cfg := testConfig()
	cfg.Offline = true
	r := New(Options{Cfg: cfg, Client: gen})

	rep, err := r.Run(context.Background(), []string{sales}, nil)
	require.NoError(t, err)
	assert.Zero(t, gen.calls)
	assert.Equal(t, question.SourceOffline, rep.Blocks[0].Source)
}

func TestRunHonorsLargeFileDecline(t *testing.T) {
	dir := t.TempDir()
	big := writeCSV(t, dir, "big.csv", "a,b\n1,2\n3,4\n")

	cfg := testConfig()
	cfg.Offline = true
	cfg.LargeFileWarnMB = 0.00001 // every file lands in the warn band

	declined := ""
	r := New(Options{Cfg: cfg, ConfirmLarge: func(path string, sizeMB float64) bool {
		declined = path
		return false
	}})

	rep, err := r.Run(context.Background(), []string{big}, nil)
	require.NoError(t, err)
	assert.Equal(t, big, declined)
	assert.Empty(t, rep.Summaries)
	require.Len(t, rep.Failures, 1)
	assert.Contains(t, rep.Failures[0].Error, "declined")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeCSV(t, dir, fmt.Sprintf("d%d.csv", 0), "a\n1\n")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Offline = true
	_, err := New(Options{Cfg: cfg}).Run(ctx, paths, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
