package trainer

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
	"github.com/pthm-cable/neuroarena/genome"
	"github.com/pthm-cable/neuroarena/match"
	"github.com/pthm-cable/neuroarena/telemetry"
)

// GenerationObserver is notified after each completed generation. The
// observer in cmd/train implements it (structurally) and forwards each
// generation to the CSV log, the metrics, and the api event hub; this
// package does not import api.
type GenerationObserver interface {
	ObserveGeneration(pop *evolution.Population, results []*match.Result)
}

// Coordinator owns the live Population and drives it generation by
// generation, exposing the start/pause/resume/reset/import surface
// the control API calls into. It satisfies api.Controller by
// structural typing.
//
// The pause signal is only honored between generations: a generation
// already dispatched to the pool always finishes.
type Coordinator struct {
	cfg       *config.Config
	trainer   *Trainer
	pop       *evolution.Population
	best      *telemetry.BestGenomeStore
	observers []GenerationObserver
	rng       *rand.Rand

	mu       sync.Mutex
	cond     *sync.Cond
	running  bool
	paused   atomic.Bool
	simSpeed atomic.Value // float64
	cancel   context.CancelFunc
	log      *slog.Logger
}

// NewCoordinator creates a coordinator with a fresh generation-1
// population seeded from cfg.RNG.Seed. metrics may be nil if the
// caller isn't running a Prometheus registry.
func NewCoordinator(cfg *config.Config, best *telemetry.BestGenomeStore, metrics *telemetry.Metrics, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	rng := rand.New(rand.NewSource(cfg.RNG.Seed))
	c := &Coordinator{
		cfg:     cfg,
		trainer: New(cfg, metrics),
		pop:     evolution.New(cfg, rng),
		best:    best,
		rng:     rng,
		log:     log,
	}
	c.cond = sync.NewCond(&c.mu)
	c.simSpeed.Store(1.0)
	return c
}

// AddObserver registers an observer invoked after every generation.
func (c *Coordinator) AddObserver(o GenerationObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Start launches the training loop in a background goroutine. Calling
// Start while already running is a no-op.
func (c *Coordinator) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	go c.loop(ctx)
}

func (c *Coordinator) loop(ctx context.Context) {
	// Wake the paused loop (if any) as soon as ctx is cancelled, since
	// cond.Wait has no way to select on a context directly.
	go func() {
		<-ctx.Done()
		c.cond.Broadcast()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		for c.paused.Load() && ctx.Err() == nil {
			c.cond.Wait()
		}
		c.mu.Unlock()

		if ctx.Err() != nil {
			return
		}

		results := c.trainer.RunGeneration(ctx, c.pop, c.rng)
		c.best.Update(c.pop.BestGenome, c.pop.Generation-1)
		c.log.Info("generation complete",
			"generation", c.pop.Generation-1,
			"best_fitness", c.pop.BestFitness,
			"mutation_rate", c.pop.CurrentMutationRate,
			"matches", len(results))

		c.mu.Lock()
		observers := append([]GenerationObserver(nil), c.observers...)
		c.mu.Unlock()
		for _, o := range observers {
			o.ObserveGeneration(c.pop, results)
		}
	}
}

// Pause stops the loop from starting a new generation; the in-flight
// one always finishes first.
func (c *Coordinator) Pause() { c.paused.Store(true) }

// Resume releases a Pause, waking the loop if it's blocked waiting.
func (c *Coordinator) Resume() {
	c.paused.Store(false)
	c.cond.Broadcast()
}

// Stop cancels the training loop.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.running = false
}

// ResetPopulation replaces the population with a fresh generation 1,
// optionally clearing the recorded best genome too.
func (c *Coordinator) ResetPopulation(clearBest bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pop.Reset(clearBest)
}

// SetMutationRate switches the population between adaptive and a
// fixed mutation rate.
func (c *Coordinator) SetMutationRate(rate float64, adaptive bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pop.AdaptiveMutation = adaptive
	if !adaptive {
		c.pop.FixedMutationRate = rate
		c.pop.CurrentMutationRate = rate
	}
}

// SetSimSpeed records the requested simulation speed multiplier.
// Training itself always runs at unbounded speed; this value is only
// meaningful to a rendering front end outside this package's scope.
func (c *Coordinator) SetSimSpeed(multiplier float64) {
	c.simSpeed.Store(multiplier)
}

// SimSpeed returns the last requested simulation speed.
func (c *Coordinator) SimSpeed() float64 {
	return c.simSpeed.Load().(float64)
}

// ErrEmptyPopulation is returned by ImportGenome when there is no
// population member to replace.
var ErrEmptyPopulation = errors.New("trainer: population is empty")

// ImportGenome injects an externally trained genome into the
// population, replacing the current worst-performing member. The
// network has already passed genome.Import's architecture check by
// the time it reaches here (see api.Server.handleImportGenome).
func (c *Coordinator) ImportGenome(g *genome.Genome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pop.Genomes) == 0 {
		return ErrEmptyPopulation
	}
	worst := c.pop.Genomes[0]
	for _, candidate := range c.pop.Genomes {
		if candidate.Fitness < worst.Fitness {
			worst = candidate
		}
	}
	worst.Network = g.Network.Clone()
	worst.Fitness = 0
	worst.MatchesWon = 0
	return nil
}

// Population returns the live population for read-only inspection
// (e.g. by telemetry or the api layer).
func (c *Coordinator) Population() *evolution.Population {
	return c.pop
}
