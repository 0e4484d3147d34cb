// Package fanout sends the same rough prompt to several providers at once so
// their refinements can be compared side by side.
package fanout

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/promptlight/internal/refine"
)

type Config struct {
	// Timeout bounds each individual provider call. Zero means no bound
	// beyond the parent context.
	Timeout time.Duration
	// Limit caps concurrent calls. Zero or negative runs all at once.
	Limit int
}

// Result is the outcome of one provider call.
type Result struct {
	Provider refine.Provider
	Model    string
	Text     string
	Err      error
	Latency  time.Duration
}

type Outcome struct {
	Results   []Result
	Succeeded int
	Failed    int
}

// Best returns the first successful result in request order.
func (o *Outcome) Best() (Result, bool) {
	for _, r := range o.Results {
		if r.Err == nil {
			return r, true
		}
	}
	return Result{}, false
}

type Runner struct {
	refiner refine.Refiner
	config  Config
}

func New(r refine.Refiner, config Config) *Runner {
	return &Runner{refiner: r, config: config}
}

// Execute runs every request concurrently. A failing provider never cancels
// the others; results keep the order of reqs.
func (r *Runner) Execute(ctx context.Context, reqs []refine.Request) *Outcome {
	results := make([]Result, len(reqs))

	var g errgroup.Group
	if r.config.Limit > 0 {
		g.SetLimit(r.config.Limit)
	}

	for i, req := range reqs {
		g.Go(func() error {
			callCtx := ctx
			if r.config.Timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
				defer cancel()
			}

			model := req.Model
			if model == "" && refine.IsSupported(req.Provider) {
				model = refine.DefaultModel(req.Provider)
			}

			start := time.Now()
			text, err := r.refiner.Refine(callCtx, req)
			results[i] = Result{
				Provider: req.Provider,
				Model:    model,
				Text:     text,
				Err:      err,
				Latency:  time.Since(start),
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &Outcome{Results: results}
	for _, res := range results {
		if res.Err != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	return out
}
