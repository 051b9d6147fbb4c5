package generate

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Elizabeth1979/nano-banana/internal/infra"
)

// maxConcurrent caps in-flight upstream calls per batch. The ceiling exists to
// avoid hammering the upstream API, not for correctness.
const maxConcurrent = 4

type variationSource interface {
	Variations(ctx context.Context, basePrompt string, count int) []string
}

type taskRunner interface {
	Run(ctx context.Context, task Task) Result
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	Variations  variationSource
	Worker      taskRunner
	Logger      *infra.Logger
	Concurrency int
}

// Orchestrator fans a batch of generation tasks out to a bounded pool of
// workers and joins their results in task order.
type Orchestrator struct {
	variations  variationSource
	worker      taskRunner
	logger      *infra.Logger
	concurrency int
}

// Summary tallies a batch outcome.
type Summary struct {
	Successful int
	Failed     int
}

// NewOrchestrator wires the variation source and worker together.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = maxConcurrent
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Orchestrator{
		variations:  opts.Variations,
		worker:      opts.Worker,
		logger:      logger,
		concurrency: concurrency,
	}
}

// GenerateBatch derives count prompt variations, runs one task per variation
// through the worker pool, and returns exactly count results ordered by task
// index. The call blocks until every task has completed or failed; a failed
// task never aborts its siblings.
func (o *Orchestrator) GenerateBatch(ctx context.Context, basePrompt string, count int, editingImage string) []Result {
	if count <= 0 {
		return nil
	}

	prompts := o.variations.Variations(ctx, basePrompt, count)
	o.logger.Info().Int("count", count).Bool("editing", editingImage != "").Msg("generate: batch started")

	results := make([]Result, count)
	var group errgroup.Group
	group.SetLimit(o.concurrency)
	for i, p := range prompts {
		task := Task{Index: i, Prompt: p, EditingImage: editingImage}
		group.Go(func() error {
			// Each task writes only its own slot, so the join needs no lock.
			results[task.Index] = o.worker.Run(ctx, task)
			return nil
		})
	}
	_ = group.Wait()

	tally := Tally(results)
	o.logger.Info().
		Int("successful", tally.Successful).
		Int("failed", tally.Failed).
		Msg("generate: batch finished")
	return results
}

// Tally counts successful and failed results.
func Tally(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}
