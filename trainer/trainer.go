// Package trainer implements the parallel training driver: job-parallel
// batch evaluation of a generation across isolated simulation workers,
// with results merged back into the population.
package trainer

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
	"github.com/pthm-cable/neuroarena/match"
	"github.com/pthm-cable/neuroarena/telemetry"
)

// worker is one slot in the pool. Its circuit breaker trips after a
// single WorkerFault, at which point the worker is excluded from
// dispatch until it recovers (gobreaker's half-open retry).
type worker struct {
	id      int
	breaker *gobreaker.CircuitBreaker
}

// Trainer fans a batch of jobs out across a bounded worker pool and
// merges the results back into a live Population.
type Trainer struct {
	cfg     *config.Config
	workers []*worker
	metrics *telemetry.Metrics
}

// New creates a trainer with min(cfg.Worker.MaxWorkers, GOMAXPROCS)
// workers, each guarded by its own circuit breaker. metrics may be nil,
// in which case fault counting is skipped (Metrics' methods are
// nil-receiver-safe, but New accepts nil so callers that don't run a
// Prometheus registry don't need a stub).
func New(cfg *config.Config, metrics *telemetry.Metrics) *Trainer {
	n := cfg.Worker.MaxWorkers
	if avail := runtime.GOMAXPROCS(0); avail < n {
		n = avail
	}
	if n < 1 {
		n = 1
	}

	workers := make([]*worker, n)
	for i := range workers {
		workers[i] = &worker{
			id: i,
			breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        "trainer-worker",
				MaxRequests: 1,
				Timeout:     5 * time.Second,
				ReadyToTrip: func(c gobreaker.Counts) bool {
					// A single abnormal termination marks a worker
					// not-ready; its chunk is requeued to a fresh
					// worker on the next batch.
					return c.ConsecutiveFailures >= 1
				},
			}),
		}
	}
	return &Trainer{cfg: cfg, workers: workers, metrics: metrics}
}

// BatchReport is the outcome of one RunBatch call.
type BatchReport struct {
	Results []*match.Result
	// Failed holds jobs whose worker faulted before they completed.
	// The caller decides whether to requeue them (see job.Attempts).
	Failed []Job
}

// readyWorkers returns the subset of workers whose breaker is not
// open. A batch started before all workers are ready dispatches only
// to those available, per the readiness rule.
func (t *Trainer) readyWorkers() []*worker {
	ready := make([]*worker, 0, len(t.workers))
	for _, w := range t.workers {
		if w.breaker.State() != gobreaker.StateOpen {
			ready = append(ready, w)
		}
	}
	return ready
}

// RunBatch slices jobs into contiguous chunks, one per ready worker,
// and runs them concurrently. It returns once every dispatched chunk
// has reported back (the driver's only suspension point).
func (t *Trainer) RunBatch(ctx context.Context, jobs []Job) BatchReport {
	ready := t.readyWorkers()
	if len(ready) == 0 {
		return BatchReport{Failed: jobs}
	}

	chunkSize := (len(jobs) + len(ready) - 1) / len(ready)

	var mu sync.Mutex
	var report BatchReport

	g, gctx := errgroup.WithContext(ctx)
	_ = gctx

	for wi, w := range ready {
		start := wi * chunkSize
		if start >= len(jobs) {
			break
		}
		end := start + chunkSize
		if end > len(jobs) {
			end = len(jobs)
		}
		chunk := jobs[start:end]
		w := w

		g.Go(func() error {
			_, err := w.breaker.Execute(func() (any, error) {
				results, runErr := runChunk(t.cfg, w.id, chunk)
				if runErr != nil {
					return nil, runErr
				}
				mu.Lock()
				report.Results = append(report.Results, results...)
				mu.Unlock()
				return nil, nil
			})
			if err != nil {
				t.metrics.ObserveWorkerFault()
				mu.Lock()
				report.Failed = append(report.Failed, chunk...)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return report
}

// RunGeneration runs one full generation: builds jobs from pop,
// evaluates them (requeuing worker-faulted jobs at most once, per
// spec.md's WorkerFault recovery, before scoring any unrecovered job
// as a zero-fitness loss for both participants), merges deltas into
// pop, and finally calls pop.Evolve.
func (t *Trainer) RunGeneration(ctx context.Context, pop *evolution.Population, rng *rand.Rand) []*match.Result {
	jobs := BuildJobs(t.cfg, pop, rng)

	report := t.RunBatch(ctx, jobs)
	results := report.Results

	var retry []Job
	for _, j := range report.Failed {
		if j.Attempts < t.cfg.Worker.MaxRequeueAttempts {
			j.Attempts++
			retry = append(retry, j)
		} else {
			results = append(results, zeroFitnessResult(j))
		}
	}

	if len(retry) > 0 {
		second := t.RunBatch(ctx, retry)
		results = append(results, second.Results...)
		for _, j := range second.Failed {
			results = append(results, zeroFitnessResult(j))
		}
	}

	Merge(pop, results)
	pop.Evolve()
	return results
}

// zeroFitnessResult scores a doubly-failed job as a zero-fitness loss
// for both participants, per spec.md's WorkerFault recovery.
func zeroFitnessResult(j Job) *match.Result {
	return &match.Result{
		JobID:     j.ID,
		Genome1ID: j.Genome1.ID,
		Genome2ID: j.Genome2.ID,
		Winner:    match.Draw,
	}
}

// Merge walks the job/result list and applies each result's deltas to
// the live genome with the matching id. Results whose id is no longer
// present in the population (e.g. the population was reset mid-flight)
// are discarded.
func Merge(pop *evolution.Population, results []*match.Result) {
	for _, r := range results {
		applyResult(pop, r)
	}
}

func applyResult(pop *evolution.Population, r *match.Result) {
	if r.Genome1ID != "" {
		if g := pop.ByID(r.Genome1ID); g != nil {
			g.Fitness += r.Genome1FitnessDelta
			if r.Genome1Won {
				g.MatchesWon++
			}
		}
	}
	if r.Genome2ID != "" {
		if g := pop.ByID(r.Genome2ID); g != nil {
			g.Fitness += r.Genome2FitnessDelta
			if r.Genome2Won {
				g.MatchesWon++
			}
		}
	}
}
