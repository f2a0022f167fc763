package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the trainer's live state to a Prometheus scraper.
type Metrics struct {
	Generation       prometheus.Gauge
	BestFitness      prometheus.Gauge
	MutationRate     prometheus.Gauge
	MatchesCompleted prometheus.Counter
	WorkerFaults     prometheus.Counter
}

// NewMetrics creates and registers the trainer's gauges and counters
// against reg. Pass prometheus.NewRegistry() for an isolated registry
// in tests, or prometheus.DefaultRegisterer in production.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neuroarena",
			Name:      "generation",
			Help:      "Current generation index.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neuroarena",
			Name:      "best_fitness",
			Help:      "Best fitness ever recorded.",
		}),
		MutationRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neuroarena",
			Name:      "mutation_rate",
			Help:      "Current adaptive mutation rate.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neuroarena",
			Name:      "matches_completed_total",
			Help:      "Total matches completed across all workers.",
		}),
		WorkerFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neuroarena",
			Name:      "worker_faults_total",
			Help:      "Total worker faults observed by the trainer.",
		}),
	}
	reg.MustRegister(m.Generation, m.BestFitness, m.MutationRate, m.MatchesCompleted, m.WorkerFaults)
	return m
}

// Observe updates the gauges from one generation's summary and
// increments MatchesCompleted by matchCount.
func (m *Metrics) Observe(generation int, bestFitness, mutationRate float64, matchCount int) {
	if m == nil {
		return
	}
	m.Generation.Set(float64(generation))
	m.BestFitness.Set(bestFitness)
	m.MutationRate.Set(mutationRate)
	m.MatchesCompleted.Add(float64(matchCount))
}

// ObserveWorkerFault increments the worker fault counter.
func (m *Metrics) ObserveWorkerFault() {
	if m == nil {
		return
	}
	m.WorkerFaults.Add(1)
}
