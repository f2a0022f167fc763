// Package match runs a two-fighter episode: the tick loop, collision
// resolution, termination, and end-of-match fitness scoring.
package match

import (
	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/fighter"
	"github.com/pthm-cable/neuroarena/fitness"
)

// Status is the match's coarse phase.
type Status int

const (
	Countdown Status = iota
	Fighting
	Ended
)

// Winner identifies the match outcome.
type Winner int

const (
	None Winner = iota
	P1
	P2
	Draw
)

// countdownFrames is how long Countdown holds before Fighting starts.
const countdownFrames = 3 * 60

// Result is the outcome handed back to the coordinator. It carries
// fitness *deltas*, never genome references: the evaluator that ran
// this match never mutates a genome directly.
type Result struct {
	JobID string

	// Genome1ID/Genome2ID are set by the caller after the match
	// returns (Match itself only knows about fighters, not the
	// genomes behind their policies) so the coordinator can merge
	// deltas back without threading genome identity through Fighter.
	Genome1ID string
	Genome2ID string

	Genome1FitnessDelta float64
	Genome2FitnessDelta float64
	Genome1Won          bool
	Genome2Won          bool
	Winner              Winner
	P1Health            float64
	P2Health            float64
	DurationFrames      int
}

// Match is a two-fighter episode on a fixed-size arena.
type Match struct {
	JobID string

	P1 *fighter.Fighter
	P2 *fighter.Fighter

	TimerFrames int
	Status      Status

	p1Acc *fitness.Accumulator
	p2Acc *fitness.Accumulator

	p1DamageDealt float64
	p2DamageDealt float64

	countdown int
	tick      int
	cfg       *config.Config
}

// New creates a match between two fighters, wiring each fighter's
// fitness sink to a fresh per-match accumulator so shaping rewards
// never touch a live genome directly.
func New(cfg *config.Config, jobID string, p1, p2 *fighter.Fighter) *Match {
	m := &Match{
		JobID:       jobID,
		P1:          p1,
		P2:          p2,
		TimerFrames: cfg.Derived.MatchFrameCap,
		Status:      Countdown,
		p1Acc:       &fitness.Accumulator{},
		p2Acc:       &fitness.Accumulator{},
		countdown:   countdownFrames,
		cfg:         cfg,
	}
	p1.Sink = m.p1Acc
	p2.Sink = m.p2Acc
	return m
}

// Tick advances the match by one frame. humanInput is P1's polled
// device state; it is ignored unless P1 is human-controlled (P1.Policy
// == nil). Tick returns a non-nil Result only on the frame the match
// ends.
func (m *Match) Tick(humanInput action.Signals) *Result {
	if m.Status == Ended {
		return nil
	}

	m.tick++

	if m.Status == Countdown {
		m.countdown--
		if m.countdown <= 0 {
			m.Status = Fighting
		}
		return nil
	}

	m.P1.Update(humanInput, m.P2)
	m.P2.Update(action.Null, m.P1)

	resolveBodyPenetration(m.P1, m.P2)

	if r := m.P1.CheckHit(m.P2); r.Landed {
		m.p1DamageDealt += r.DamageDealt
	}
	if r := m.P2.CheckHit(m.P1); r.Landed {
		m.p2DamageDealt += r.DamageDealt
	}

	if m.Status == Fighting {
		m.TimerFrames--
	}

	if ko := m.P1.Health <= 0 || m.P2.Health <= 0; ko || m.TimerFrames <= 0 {
		return m.settle(ko)
	}
	return nil
}

// resolveBodyPenetration pushes overlapping fighters apart horizontally
// by half the overlap, along the axis of their relative position,
// without altering facing.
func resolveBodyPenetration(p1, p2 *fighter.Fighter) {
	a, b := p1.AABB(), p2.AABB()
	verticallyOverlapping := a.Y < b.Y+b.H && a.Y+a.H > b.Y
	if !verticallyOverlapping {
		return
	}

	left, right := p1, p2
	if b.X < a.X {
		left, right = p2, p1
	}
	la, ra := left.AABB(), right.AABB()
	overlap := la.X + la.W - ra.X
	if overlap <= 0 {
		return
	}
	half := overlap / 2
	left.X -= half
	right.X += half
}

// settle computes the match result at KO or timeout and marks the match
// Ended.
func (m *Match) settle(ko bool) *Result {
	m.Status = Ended

	p1Won := false
	p2Won := false
	winner := Draw

	if ko {
		switch {
		case m.P1.Health <= 0 && m.P2.Health <= 0:
			winner = Draw
		case m.P1.Health <= 0:
			winner = P2
			p2Won = true
			m.p2Acc.AddFitness(fitness.KOWinBonus)
		default:
			winner = P1
			p1Won = true
			m.p1Acc.AddFitness(fitness.KOWinBonus)
		}
	} else {
		totalDamage := m.p1DamageDealt + m.p2DamageDealt
		switch {
		case totalDamage < fitness.StalemateDamageFloor:
			winner = Draw
			m.p1Acc.AddFitness(fitness.StalematePenalty)
			m.p2Acc.AddFitness(fitness.StalematePenalty)
		case m.P1.Health > m.P2.Health:
			winner = P1
			p1Won = true
			m.p1Acc.AddFitness(fitness.TimeoutWinBonus)
		case m.P2.Health > m.P1.Health:
			winner = P2
			p2Won = true
			m.p2Acc.AddFitness(fitness.TimeoutWinBonus)
		default:
			winner = Draw
		}
	}

	m.p1Acc.AddFitness(fitness.DamageDealtAward(m.p1DamageDealt))
	m.p2Acc.AddFitness(fitness.DamageDealtAward(m.p2DamageDealt))
	m.p1Acc.AddFitness(fitness.HealthRemainingAward(m.P1.Health))
	m.p2Acc.AddFitness(fitness.HealthRemainingAward(m.P2.Health))

	return &Result{
		JobID:               m.JobID,
		Genome1FitnessDelta: m.p1Acc.Total(),
		Genome2FitnessDelta: m.p2Acc.Total(),
		Genome1Won:          p1Won,
		Genome2Won:          p2Won,
		Winner:              winner,
		P1Health:            m.P1.Health,
		P2Health:            m.P2.Health,
		DurationFrames:      m.tick,
	}
}

// Run drives the match to completion at unbounded speed (no frame
// pacing), as used by headless training workers. humanInput supplies
// P1's device state every tick when P1 is human-controlled.
func Run(cfg *config.Config, jobID string, p1, p2 *fighter.Fighter, humanInput func(tick int) action.Signals) *Result {
	m := New(cfg, jobID, p1, p2)
	for {
		input := action.Null
		if humanInput != nil {
			input = humanInput(m.tick)
		}
		if r := m.Tick(input); r != nil {
			return r
		}
	}
}
