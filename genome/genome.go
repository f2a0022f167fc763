// Package genome defines the Genome type and its JSON transport: the
// serialized payload described in the external interface, together
// with the ShapeMismatch/ParseError failure modes surfaced to import.
package genome

import (
	"encoding/json"
	"fmt"

	"github.com/pthm-cable/neuroarena/neural"
)

// Genome pairs a network with its scoring state for one generation.
// Fitness and MatchesWon are zeroed at the start of each generation;
// only Network carries forward.
type Genome struct {
	ID         string
	Network    *neural.Network
	Fitness    float64
	MatchesWon int
}

// New creates a genome with the given lineage id and network.
func New(id string, network *neural.Network) *Genome {
	return &Genome{ID: id, Network: network}
}

// AddFitness implements fighter.FitnessSink by structural typing, so a
// genome can (when the caller chooses to) be wired directly as a
// fighter's sink — used by arcade/human-vs-best-genome play, where
// there is no population coordinator batching deltas. Training workers
// use fitness.Accumulator instead, and trainer.Merge applies the
// resulting deltas; see match.Result.
func (g *Genome) AddFitness(delta float64) {
	g.Fitness += delta
}

// Clone deep-copies a genome, including its network.
func (g *Genome) Clone() *Genome {
	return &Genome{
		ID:         g.ID,
		Network:    g.Network.Clone(),
		Fitness:    g.Fitness,
		MatchesWon: g.MatchesWon,
	}
}

// ParseError reports that a serialized genome payload was malformed.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genome: parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Payload is the wire-format schema for a genome: id, score metadata,
// the network payload, and the declared architecture.
type Payload struct {
	ID           string              `json:"id"`
	Fitness      float64             `json:"fitness"`
	MatchesWon   int                 `json:"matches_won"`
	Generation   int                 `json:"generation"`
	Network      neural.Payload      `json:"network"`
	Architecture neural.Architecture `json:"architecture"`
}

// Export serializes a genome to its wire payload, tagging it with the
// generation it was produced in.
func Export(g *Genome, generation int) ([]byte, error) {
	p := Payload{
		ID:           g.ID,
		Fitness:      g.Fitness,
		MatchesWon:   g.MatchesWon,
		Generation:   generation,
		Network:      g.Network.ToPayload(),
		Architecture: neural.CompiledArchitecture,
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return data, nil
}

// Import deserializes a genome from its wire payload. It fails with
// ParseError on malformed JSON and with neural.ShapeMismatch if the
// declared or actual architecture differs from the compiled-in shape.
func Import(data []byte) (*Genome, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Cause: err}
	}

	expected := neural.CompiledArchitecture
	if p.Architecture != expected {
		return nil, &neural.ShapeMismatch{
			Expected: neural.Shape{Input: expected.Input, Hidden: expected.Hidden, Output: expected.Output},
			Actual:   neural.Shape{Input: p.Architecture.Input, Hidden: p.Architecture.Hidden, Output: p.Architecture.Output},
		}
	}

	net, err := neural.FromPayload(p.Network)
	if err != nil {
		return nil, err
	}

	return &Genome{
		ID:         p.ID,
		Network:    net,
		Fitness:    p.Fitness,
		MatchesWon: p.MatchesWon,
	}, nil
}
