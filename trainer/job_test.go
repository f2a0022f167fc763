package trainer

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
)

func TestBuildJobsPairsEveryGenomeExactlyOnce(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	pop := evolution.New(cfg, rng)

	jobs := BuildJobs(cfg, pop, rng)

	seen := make(map[string]int)
	for _, j := range jobs {
		seen[j.Genome1.ID]++
		seen[j.Genome2.ID]++
	}
	for _, g := range pop.Genomes {
		if seen[g.ID] != 1 {
			t.Errorf("genome %s appears in %d jobs, want exactly 1", g.ID, seen[g.ID])
		}
	}
}

func TestBuildJobsDeepCopiesGenomes(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(2))
	pop := evolution.New(cfg, rng)

	jobs := BuildJobs(cfg, pop, rng)
	jobs[0].Genome1.Fitness = 12345

	if pop.Genomes[0].Fitness == 12345 {
		t.Error("job genome shares storage with the live population")
	}
}

func TestBuildJobsOddPopulationPairsLeftover(t *testing.T) {
	cfg := config.Default()
	cfg.Population.Size = 5
	rng := rand.New(rand.NewSource(3))
	pop := evolution.New(cfg, rng)

	jobs := BuildJobs(cfg, pop, rng)
	if len(jobs) != 3 {
		t.Fatalf("len(jobs) = %d, want 3 for 5 genomes", len(jobs))
	}
}
