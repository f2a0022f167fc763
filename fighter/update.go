package fighter

import (
	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/fitness"
)

// Update advances the fighter by one 1/60-second tick. input is used
// verbatim for a human-controlled fighter (Policy == nil); otherwise
// the fighter's own Policy decides the tick's signals and input is
// ignored (the match loop passes the null input for non-humans).
func (f *Fighter) Update(input action.Signals, opponent *Fighter) {
	if f.Health <= 0 {
		f.ragdoll()
		return
	}

	signals := input
	if f.Policy != nil {
		signals = f.Policy.Decide(f, opponent)
	}

	f.applyShaping(opponent)

	f.tickCooldownAndEnergy(signals)

	if f.Cooldown <= 5 {
		f.applyMovement(signals)
	}

	if f.Cooldown == 0 {
		f.attemptAttack(signals)
	}

	f.updateHitbox()
	f.integratePhysics()
}

// applyShaping adds this tick's per-tick fitness reward to the owning
// genome, computed from the fighter's state as of the *start* of this
// tick (i.e. before any of this tick's transitions below are applied).
func (f *Fighter) applyShaping(opponent *Fighter) {
	if f.Sink == nil {
		return
	}
	d := absf(f.X - opponent.X)
	facingToward := (f.Direction > 0 && opponent.X >= f.X) || (f.Direction < 0 && opponent.X <= f.X)
	delta := fitness.PerTick(fitness.ShapingInput{
		Distance:             d,
		CanvasWidth:          f.cfg.CanvasWidth,
		FighterWidth:         f.cfg.FighterWidth,
		SelfX:                f.X,
		FacingTowardOpponent: facingToward,
		SelfState:            f.State,
		SelfVX:               f.VX,
	})
	f.Sink.AddFitness(delta)
}

func (f *Fighter) tickCooldownAndEnergy(signals action.Signals) {
	if f.Cooldown > 0 {
		f.Cooldown--
	}

	nearlyStationary := absf(f.VX) < 0.5 && absf(f.VY) < 0.5
	idle := f.State == action.Idle && nearlyStationary
	if idle {
		f.Energy = clamp0to100(f.Energy + f.cmb.EnergyRegenIdle)
	} else {
		f.Energy = clamp0to100(f.Energy + f.cmb.EnergyRegenActive)
	}
}

func (f *Fighter) applyMovement(signals action.Signals) {
	onGround := f.Y >= f.cfg.CanvasHeight-f.cfg.FighterHeight
	f.State = action.Idle

	if signals.Left && f.spendEnergy(f.cmb.MoveEnergyCost) {
		f.VX -= f.cmb.MoveAccel
		f.Direction = -1
		f.State = action.MoveLeft
	}
	if signals.Right && f.spendEnergy(f.cmb.MoveEnergyCost) {
		f.VX += f.cmb.MoveAccel
		f.Direction = 1
		f.State = action.MoveRight
	}

	if signals.Up && onGround && f.spendEnergy(f.cmb.JumpEnergyCost) {
		f.VY = -f.cmb.JumpVY
		f.State = action.Jump
	}

	if signals.Down && onGround && f.spendEnergy(f.cmb.CrouchEnergyCost) {
		f.VX *= f.cmb.CrouchVXFactor
		f.State = action.Crouch
	}

	if signals.Action3 && f.spendEnergy(f.cmb.BlockEnergyCostPerTick) {
		f.VX *= f.cmb.BlockVXFactor
		f.State = action.Block
	}
}

func (f *Fighter) attemptAttack(signals action.Signals) {
	switch {
	case signals.Action1 && f.spendEnergy(f.cmb.PunchEnergyCost):
		f.State = action.Punch
		f.Cooldown = f.cmb.AttackCooldownFrames
		f.VX *= 0.2
	case signals.Action2 && f.spendEnergy(f.cmb.KickEnergyCost):
		f.State = action.Kick
		f.Cooldown = f.cmb.AttackCooldownFrames
		f.VX *= 0.2
	}
}

// spendEnergy deducts cost from Energy if affordable, returning whether
// the action may proceed. Energy never goes negative from a spend.
func (f *Fighter) spendEnergy(cost float64) bool {
	if f.Energy < cost {
		return false
	}
	f.Energy = clamp0to100(f.Energy - cost)
	return true
}

// updateHitbox sets or clears the active attack hitbox. A hitbox exists
// only during cooldown in (5, 15) of a Punch or Kick, positioned ahead
// of the fighter in its facing direction.
func (f *Fighter) updateHitbox() {
	active := f.Cooldown > 5 && f.Cooldown < 15 && (f.State == action.Punch || f.State == action.Kick)
	if !active {
		f.Hitbox = nil
		return
	}

	if f.State == action.Punch {
		f.Hitbox = f.attackRect(46, 20, 20, f.cfg.FighterHeight*0.3)
		return
	}
	f.Hitbox = f.attackRect(66, 30, 66, f.cfg.FighterHeight*0.6)
}

// attackRect builds a hitbox of the given width/height, offset ahead of
// the fighter by reach in its facing direction, at the given height
// from the top of the fighter's body.
func (f *Fighter) attackRect(w, h, reach, yOffset float64) *Rect {
	x := f.X + f.cfg.FighterWidth/2
	if f.Direction > 0 {
		x += reach
	} else {
		x -= reach + w
	}
	return &Rect{X: x, Y: f.Y + yOffset, W: w, H: h}
}

// integratePhysics applies one tick of position/velocity integration,
// ground clamping, and canvas clamping.
func (f *Fighter) integratePhysics() {
	f.X += f.VX
	f.Y += f.VY
	f.VY += f.cfg.Gravity
	f.VX *= f.cfg.Friction

	ground := f.cfg.CanvasHeight - f.cfg.FighterHeight
	if f.Y >= ground {
		f.Y = ground
		f.VY = 0
		if f.State == action.Jump {
			f.State = action.Idle
		}
	}

	if f.X < 0 {
		f.X = 0
	}
	maxX := f.cfg.CanvasWidth - f.cfg.FighterWidth
	if f.X > maxX {
		f.X = maxX
	}
}

// ragdoll applies physics-only post-death integration: gravity, heavy
// friction, and settling above the ground.
func (f *Fighter) ragdoll() {
	f.VX += 0
	f.VY += f.cfg.Gravity
	f.VX *= 0.5
	f.X += f.VX
	f.Y += f.VY
	settle := f.cfg.CanvasHeight - f.cfg.GroundRagdollOffset
	if f.Y > settle {
		f.Y = settle
		f.VY = 0
	}
	f.Hitbox = nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
