// Package api exposes the trainer's control surface: a small command
// API over HTTP and a live event feed over websocket.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pthm-cable/neuroarena/genome"
	"github.com/pthm-cable/neuroarena/telemetry"
)

// Controller is the subset of the trainer the API can drive. The
// trainer's Coordinator implements it; api never imports trainer, and
// cmd/train wires a Coordinator into a Server.
type Controller interface {
	Start()
	Pause()
	Resume()
	ResetPopulation(clearBest bool)
	SetMutationRate(rate float64, adaptive bool)
	SetSimSpeed(multiplier float64)
	ImportGenome(g *genome.Genome) error
}

// Server wraps a mux.Router exposing the trainer's command endpoints
// and the event websocket.
type Server struct {
	router     *mux.Router
	controller Controller
	best       *telemetry.BestGenomeStore
	hub        *EventHub
	log        *slog.Logger
}

// NewServer builds the router. log may be nil, in which case
// slog.Default() is used.
func NewServer(controller Controller, best *telemetry.BestGenomeStore, hub *EventHub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		router:     mux.NewRouter(),
		controller: controller,
		best:       best,
		hub:        hub,
		log:        log,
	}
	s.routes()
	return s
}

// Router returns the underlying router, e.g. for http.ListenAndServe.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/commands/start", s.handleStart).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/pause", s.handlePause).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/resume", s.handleResume).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/reset_population", s.handleResetPopulation).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/set_mutation_rate", s.handleSetMutationRate).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/set_sim_speed", s.handleSetSimSpeed).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/import_genome", s.handleImportGenome).Methods(http.MethodPost)
	s.router.HandleFunc("/commands/export_best_genome", s.handleExportBestGenome).Methods(http.MethodGet)
	s.router.HandleFunc("/events", s.hub.ServeWebsocket)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.controller.Start()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.controller.Pause()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.controller.Resume()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleResetPopulation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClearBest bool `json:"clear_best"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.controller.ResetPopulation(body.ClearBest)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSetMutationRate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rate     float64 `json:"rate"`
		Adaptive bool    `json:"adaptive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.controller.SetMutationRate(body.Rate, body.Adaptive)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSetSimSpeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Multiplier float64 `json:"multiplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.controller.SetSimSpeed(body.Multiplier)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleImportGenome(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	g, err := genome.Import(data)
	if err != nil {
		s.log.Warn("genome import rejected", "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.controller.ImportGenome(g); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleExportBestGenome(w http.ResponseWriter, r *http.Request) {
	data, err := s.best.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "no best genome recorded yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
