// Package evolution owns the population across generations: match
// scheduling feeds fitness deltas in, and Evolve produces the next
// generation by elitism, tournament-style crossover, and adaptive
// mutation.
package evolution

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/genome"
	"github.com/pthm-cable/neuroarena/neural"
)

// HistoryEntry is one generation's summary, retained in the bounded
// fitness_history queue.
type HistoryEntry struct {
	Generation    int
	BestFitness   float64
	MeanFitness   float64
	MutationRate  float64
}

const (
	maxFitnessHistory = 20
	maxRecentBest     = 10
)

// Population owns a fixed-size, ordered sequence of genomes and the
// evolution state (generation counter, best-fitness tracking, adaptive
// mutation rate).
type Population struct {
	Genomes []*genome.Genome

	Generation   int
	BestFitness  float64
	BestGenome   *genome.Genome
	RecentBest   []float64
	FitnessHistory []HistoryEntry

	CurrentMutationRate float64

	// AdaptiveMutation selects between the adaptive controller (true)
	// and a fixed rate taken directly from settings (false).
	AdaptiveMutation bool
	FixedMutationRate float64

	cfg *config.Config
	rng *rand.Rand
}

// New creates generation 1: N genomes with random networks, ids of the
// form "gen1-<index>".
func New(cfg *config.Config, rng *rand.Rand) *Population {
	p := &Population{
		Generation:          1,
		AdaptiveMutation:    true,
		CurrentMutationRate: cfg.Mutation.InitRate,
		cfg:                 cfg,
		rng:                 rng,
	}
	p.Genomes = make([]*genome.Genome, cfg.Population.Size)
	for i := range p.Genomes {
		p.Genomes[i] = genome.New(fmt.Sprintf("gen%d-%d", p.Generation, i), neural.NewRandom(rng))
	}
	return p
}

// Reset replaces the population with a fresh generation-1 population.
// If clearBest is false, the previously recorded best-trained genome
// is preserved across the reset.
func (p *Population) Reset(clearBest bool) {
	fresh := New(p.cfg, p.rng)
	if !clearBest {
		fresh.BestGenome = p.BestGenome
		fresh.BestFitness = p.BestFitness
	}
	*p = *fresh
}

// Evolve sorts the current generation by fitness, updates the
// best-trained genome, records history, computes the next mutation
// rate, and produces the next generation by elitism + tournament
// crossover + mutation.
func (p *Population) Evolve() {
	sort.SliceStable(p.Genomes, func(i, j int) bool {
		return p.Genomes[i].Fitness > p.Genomes[j].Fitness
	})

	if p.BestGenome == nil || p.Genomes[0].Fitness > p.BestFitness {
		p.BestFitness = p.Genomes[0].Fitness
		p.BestGenome = p.Genomes[0].Clone()
	}

	mean := p.meanFitness()
	p.FitnessHistory = appendBounded(p.FitnessHistory, HistoryEntry{
		Generation:   p.Generation,
		BestFitness:  p.Genomes[0].Fitness,
		MeanFitness:  mean,
		MutationRate: p.CurrentMutationRate,
	}, maxFitnessHistory)
	p.RecentBest = appendBoundedF(p.RecentBest, p.Genomes[0].Fitness, maxRecentBest)

	if p.AdaptiveMutation {
		p.CurrentMutationRate = ComputeMutationRate(p.cfg.Mutation, p.Generation, p.RecentBest)
	} else {
		p.CurrentMutationRate = p.FixedMutationRate
	}

	next := p.reproduce()

	p.Generation++
	p.Genomes = next
}

// reproduce builds the next generation: elite carry-over followed by
// tournament-style crossover + mutation until the population is back
// to its configured size. The loop has the trivial upper bound N since
// each iteration appends exactly one genome.
func (p *Population) reproduce() []*genome.Genome {
	n := p.cfg.Population.Size
	next := make([]*genome.Genome, 0, n)

	eliteCount := p.cfg.Population.EliteCount
	if eliteCount > len(p.Genomes) {
		eliteCount = len(p.Genomes)
	}
	for i := 0; i < eliteCount; i++ {
		clone := p.Genomes[i].Clone()
		clone.ID = p.childID(len(next))
		clone.Fitness = 0
		clone.MatchesWon = 0
		next = append(next, clone)
	}

	poolSize := p.cfg.Derived.SelectionPoolSize
	if poolSize > len(p.Genomes) {
		poolSize = len(p.Genomes)
	}
	pool := p.Genomes[:poolSize]

	for len(next) < n {
		parentA := pool[p.rng.Intn(len(pool))]
		parentB := pool[p.rng.Intn(len(pool))]

		child, err := neural.Crossover(p.rng, parentA.Network, parentB.Network)
		if err != nil {
			// Parent networks are always the compiled-in shape inside
			// this process; a shape mismatch here means a caller built
			// the population with foreign networks, which is a bug in
			// the caller, not a recoverable runtime condition.
			panic(err)
		}
		child.Mutate(p.rng, p.CurrentMutationRate, p.cfg.Mutation.ReplaceProbability)

		next = append(next, genome.New(p.childID(len(next)), child))
	}

	return next
}

func (p *Population) childID(index int) string {
	return fmt.Sprintf("gen%d-%d", p.Generation+1, index)
}

func (p *Population) meanFitness() float64 {
	if len(p.Genomes) == 0 {
		return 0
	}
	var sum float64
	for _, g := range p.Genomes {
		sum += g.Fitness
	}
	return sum / float64(len(p.Genomes))
}

func appendBounded(s []HistoryEntry, v HistoryEntry, max int) []HistoryEntry {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

func appendBoundedF(s []float64, v float64, max int) []float64 {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

// ByID locates a genome by id, returning nil if none matches.
func (p *Population) ByID(id string) *genome.Genome {
	for _, g := range p.Genomes {
		if g.ID == id {
			return g
		}
	}
	return nil
}
