// Package fighter implements the single-fighter state machine: physics
// integration, hitbox/damage resolution, energy budgeting, and the
// perception vector handed to neural policies.
package fighter

import (
	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/config"
)

// Rect is an axis-aligned rectangle, used both for a fighter's body AABB
// and for an active attack's hitbox.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// FitnessSink receives per-tick and end-of-match fitness deltas for the
// genome backing an AI-controlled fighter. Human fighters carry a nil
// sink; deltas addressed to a nil sink are simply dropped.
type FitnessSink interface {
	AddFitness(delta float64)
}

// Policy decides the next tick's input signals for a fighter given its
// own state and its opponent's. Non-human fighters hold a non-nil
// Policy; the match loop still calls Update with a null input for them
// since the policy supplies its own decision.
type Policy interface {
	Decide(self, opponent *Fighter) action.Signals
}

// Fighter is a single combatant's transient, per-match state.
type Fighter struct {
	X, Y      float64
	VX, VY    float64
	Direction float64 // -1 (facing left) or +1 (facing right)

	Health float64
	Energy float64

	State    action.Action
	Cooldown int
	Hitbox   *Rect

	Policy Policy      // nil for a human-controlled fighter
	Sink   FitnessSink // nil unless backed by a genome

	cfg *config.ArenaConfig
	cmb *config.CombatConfig
}

// New creates a fighter at the given spawn position, facing toward
// positive or negative x depending on facingRight.
func New(cfg *config.Config, x, y float64, facingRight bool) *Fighter {
	dir := -1.0
	if facingRight {
		dir = 1.0
	}
	return &Fighter{
		X:         x,
		Y:         cfg.Derived.Ground - cfg.Arena.FighterHeight,
		Direction: dir,
		Health:    100,
		Energy:    100,
		State:     action.Idle,
		cfg:       &cfg.Arena,
		cmb:       &cfg.Combat,
	}
}

// Width returns the fighter's fixed body width.
func (f *Fighter) Width() float64 { return f.cfg.FighterWidth }

// Height returns the fighter's fixed body height.
func (f *Fighter) Height() float64 { return f.cfg.FighterHeight }

// AABB returns the fighter's axis-aligned body bounding box.
func (f *Fighter) AABB() Rect {
	return Rect{X: f.X, Y: f.Y, W: f.cfg.FighterWidth, H: f.cfg.FighterHeight}
}

// clamp0to100 clamps health/energy to [0, 100].
func clamp0to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
