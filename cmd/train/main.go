// Command train runs the neuroevolution training driver: it loads
// configuration, starts the generation loop, and serves the control
// API and event feed over HTTP.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/neuroarena/api"
	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/evolution"
	"github.com/pthm-cable/neuroarena/match"
	"github.com/pthm-cable/neuroarena/telemetry"
	"github.com/pthm-cable/neuroarena/trainer"
)

// observer wires one generation's completion to the CSV log, the
// metrics registry, and the live event feed.
type observer struct {
	csv  *telemetry.CSVExporter
	hub  *api.EventHub
	metr *telemetry.Metrics
}

func (o *observer) ObserveGeneration(pop *evolution.Population, results []*match.Result) {
	gen := pop.Generation - 1
	var mean float64
	if len(pop.FitnessHistory) > 0 {
		mean = pop.FitnessHistory[len(pop.FitnessHistory)-1].MeanFitness
	}

	if err := o.csv.WriteGeneration(telemetry.GenerationRecord{
		Generation:   gen,
		BestFitness:  pop.BestFitness,
		MeanFitness:  mean,
		MutationRate: pop.CurrentMutationRate,
	}); err != nil {
		slog.Warn("writing generation csv", "err", err)
	}

	o.metr.Observe(gen, pop.BestFitness, pop.CurrentMutationRate, len(results))

	o.hub.Publish(api.Event{
		Type: api.GenerationCompleted,
		Data: map[string]any{
			"generation":    gen,
			"best_fitness":  pop.BestFitness,
			"mutation_rate": pop.CurrentMutationRate,
			"matches":       len(results),
		},
	})
	for _, r := range results {
		o.hub.Publish(api.Event{Type: api.MatchCompleted, Data: r})
	}

	o.hub.Publish(api.Event{
		Type: api.FitnessUpdated,
		Data: map[string]any{"history": pop.RecentBest},
	})
}

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = embedded defaults)")
	addr := flag.String("addr", ":8090", "control API listen address")
	csvPath := flag.String("csv", "", "generation log CSV path (empty = disabled)")
	autostart := flag.Bool("autostart", true, "start training immediately")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	cfg := config.Cfg()

	csvExporter, err := telemetry.NewCSVExporter(*csvPath)
	if err != nil {
		log.Fatalf("opening csv log: %v", err)
	}
	defer csvExporter.Close()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	best := telemetry.NewBestGenomeStore()
	hub := api.NewEventHub()

	coord := trainer.NewCoordinator(cfg, best, metrics, logger)
	coord.AddObserver(&observer{csv: csvExporter, hub: hub, metr: metrics})

	server := api.NewServer(coord, best, hub, logger)

	mux := http.NewServeMux()
	mux.Handle("/", server.Router())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if *autostart {
		coord.Start()
	}

	logger.Info("train server listening", "addr", *addr)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(httpServer.ListenAndServe())
}
