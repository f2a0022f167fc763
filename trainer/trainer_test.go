package trainer

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
	"github.com/pthm-cable/neuroarena/genome"
	"github.com/pthm-cable/neuroarena/match"
	"github.com/pthm-cable/neuroarena/neural"
)

func TestMergeAppliesDeltasByGenomeID(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	pop := evolution.New(cfg, rng)

	g1, g2 := pop.Genomes[0], pop.Genomes[1]
	results := []*match.Result{
		{
			Genome1ID:           g1.ID,
			Genome2ID:           g2.ID,
			Genome1FitnessDelta: 10,
			Genome2FitnessDelta: -3,
			Genome1Won:          true,
		},
	}

	Merge(pop, results)

	if g1.Fitness != 10 || g1.MatchesWon != 1 {
		t.Errorf("g1 = fitness=%v won=%v, want 10/1", g1.Fitness, g1.MatchesWon)
	}
	if g2.Fitness != -3 || g2.MatchesWon != 0 {
		t.Errorf("g2 = fitness=%v won=%v, want -3/0", g2.Fitness, g2.MatchesWon)
	}
}

func TestMergeDiscardsUnknownGenomeIDs(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(2))
	pop := evolution.New(cfg, rng)

	results := []*match.Result{
		{Genome1ID: "ghost-id", Genome1FitnessDelta: 999},
	}

	Merge(pop, results) // must not panic on an id no longer in the population
	for _, g := range pop.Genomes {
		if g.Fitness != 0 {
			t.Errorf("unexpected fitness change on genome %s", g.ID)
		}
	}
}

func TestZeroFitnessResultCarriesNoReward(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	job := Job{
		ID:      "j1",
		Genome1: genome.New("g1", neural.NewRandom(rng)),
		Genome2: genome.New("g2", neural.NewRandom(rng)),
	}

	r := zeroFitnessResult(job)
	if r.Genome1FitnessDelta != 0 || r.Genome2FitnessDelta != 0 {
		t.Errorf("expected zero deltas, got %v/%v", r.Genome1FitnessDelta, r.Genome2FitnessDelta)
	}
	if r.Winner != match.Draw {
		t.Errorf("Winner = %v, want Draw", r.Winner)
	}
}
