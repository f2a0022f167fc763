package trainer

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
	"github.com/pthm-cable/neuroarena/genome"
)

// Job is one match to be evaluated by a worker: two independent genome
// snapshots and their spawn positions. Snapshots are deep copies —
// workers never share mutable state with the population or each other.
type Job struct {
	ID       string
	Genome1  *genome.Genome
	Genome2  *genome.Genome
	Spawn1X  float64
	Spawn2X  float64
	Attempts int
}

// BuildJobs pairs up a population into jobs. Consecutive genomes
// (2k, 2k+1) are paired; if the population is odd-sized, the leftover
// genome is paired with a uniformly random earlier genome. Every
// genome handed to a job is first deep-copied.
func BuildJobs(cfg *config.Config, pop *evolution.Population, rng *rand.Rand) []Job {
	n := len(pop.Genomes)
	jobs := make([]Job, 0, (n+1)/2)

	i := 0
	for i+1 < n {
		jobs = append(jobs, newJob(cfg, rng, pop.Genomes[i], pop.Genomes[i+1]))
		i += 2
	}
	if i < n {
		partnerIdx := rng.Intn(i)
		jobs = append(jobs, newJob(cfg, rng, pop.Genomes[i], pop.Genomes[partnerIdx]))
	}
	return jobs
}

func newJob(cfg *config.Config, rng *rand.Rand, g1, g2 *genome.Genome) Job {
	return Job{
		ID:      uuid.NewString(),
		Genome1: g1.Clone(),
		Genome2: g2.Clone(),
		Spawn1X: 280 + uniform(rng, -50, 50),
		Spawn2X: 470 + uniform(rng, -50, 50),
	}
}

func uniform(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}
