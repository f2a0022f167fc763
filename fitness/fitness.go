// Package fitness computes the per-tick shaping rewards and
// end-of-match awards that score a genome's behavior. Functions here
// are pure: they take primitive readings from a fighter rather than a
// *fighter.Fighter, so the fighter and evolution packages can both
// depend on this one without a cycle.
package fitness

import "github.com/pthm-cable/neuroarena/action"

// ShapingInput carries the fighter readings needed to compute one
// tick's shaping reward.
type ShapingInput struct {
	Distance             float64
	CanvasWidth          float64
	FighterWidth         float64
	SelfX                float64
	FacingTowardOpponent bool
	SelfState            action.Action
	SelfVX               float64
}

// PerTick returns the per-tick shaping reward added to the acting
// fighter's genome fitness. Effects stack: a fighter within 80px of its
// opponent collects all three distance bonuses.
func PerTick(in ShapingInput) float64 {
	var reward float64

	if in.Distance < 400 {
		reward += 0.005
	}
	if in.Distance < 200 {
		reward += 0.02
	}
	if in.Distance < 80 {
		reward += 0.05
	}

	if in.FacingTowardOpponent {
		reward += 0.02
	}

	if in.Distance < 100 && (in.SelfState == action.Punch || in.SelfState == action.Kick) {
		reward += 0.1
	}

	reward -= 0.005 // idle penalty

	if in.SelfX < 60 || in.SelfX > in.CanvasWidth-in.FighterWidth-60 {
		reward -= 0.04
	}

	center := in.CanvasWidth / 2
	if absf(in.SelfX-center) < 150 {
		reward += 0.015
	}

	if absf(in.SelfVX) > 0.5 {
		reward += 0.008
	}

	return reward
}

// Award constants applied once at match end by the population
// coordinator, never by the per-tick path.
const (
	DamageDealtWeight     = 2.0
	HealthRemainingWeight = 2.5
	KOWinBonus            = 300.0
	TimeoutWinBonus       = 150.0
	StalematePenalty      = -100.0
	StalemateDamageFloor  = 30.0 // below this combined damage, a timeout is a stalemate
)

// DamageDealtAward scores damage a fighter dealt over the match.
func DamageDealtAward(damageDealt float64) float64 {
	return DamageDealtWeight * damageDealt
}

// HealthRemainingAward scores a fighter's health at match end.
func HealthRemainingAward(healthAtEnd float64) float64 {
	return HealthRemainingWeight * healthAtEnd
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Accumulator sums fitness deltas for one fighter over the course of a
// single match. It satisfies fighter.FitnessSink by structural typing;
// the evaluator never writes to a genome directly (see match.Result) —
// only the population coordinator applies an Accumulator's Total to a
// live genome, after the match completes.
type Accumulator struct {
	total float64
}

// AddFitness accumulates a fitness delta.
func (a *Accumulator) AddFitness(delta float64) {
	a.total += delta
}

// Total returns the sum of all deltas accumulated so far.
func (a *Accumulator) Total() float64 {
	return a.total
}
