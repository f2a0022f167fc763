package fighter

import "github.com/pthm-cable/neuroarena/action"

// HitResult reports what a successful CheckHit did, so the caller (the
// match loop) can feed damage dealt into end-of-match fitness awards.
type HitResult struct {
	Landed       bool
	DamageDealt  float64
	WasKick      bool
}

// CheckHit resolves self's active hitbox against opponent's body AABB.
// If they overlap and opponent is still alive, damage and knockback are
// applied to opponent and self's hitbox is cleared so the same active
// window cannot hit twice.
func (f *Fighter) CheckHit(opponent *Fighter) HitResult {
	if f.Hitbox == nil || opponent.Health <= 0 {
		return HitResult{}
	}
	if !f.Hitbox.Overlaps(opponent.AABB()) {
		return HitResult{}
	}

	isKick := f.State == action.Kick
	damage := f.cmb.PunchDamage
	if isKick {
		damage = f.cmb.KickDamage
	}

	switch opponent.State {
	case action.Block:
		damage *= 0.5
		opponent.Energy = clamp0to100(opponent.Energy - 1)
	case action.Crouch:
		if isKick {
			damage *= 0.25
		} else {
			damage *= 0.5
		}
		opponent.Energy = clamp0to100(opponent.Energy - 1)
	}

	opponent.Health = clamp0to100(opponent.Health - damage)

	knockback := 8.0
	if isKick {
		knockback = 15.0
	}
	opponent.VX = f.Direction * knockback
	opponent.VY = -5

	f.Hitbox = nil

	return HitResult{Landed: true, DamageDealt: damage, WasKick: isKick}
}
