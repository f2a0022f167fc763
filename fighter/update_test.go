package fighter

import (
	"testing"

	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/config"
)

func TestUpdateWithNullSignalsStaysIdleAndUndamaged(t *testing.T) {
	cfg := config.Default()
	p1 := New(cfg, 280, 0, true)
	p2 := New(cfg, 470, 0, false)

	for i := 0; i < 120; i++ {
		p1.Update(action.Null, p2)
		p2.Update(action.Null, p1)
	}

	if p1.Health != 100 || p2.Health != 100 {
		t.Errorf("health changed with no attacks: p1=%v p2=%v", p1.Health, p2.Health)
	}
	if p1.State != action.Idle || p2.State != action.Idle {
		t.Errorf("state changed with no input: p1=%v p2=%v", p1.State, p2.State)
	}
}

func TestUpdateDeadFighterRagdollsWithoutPanicking(t *testing.T) {
	cfg := config.Default()
	p1 := New(cfg, 280, 0, true)
	p2 := New(cfg, 470, 0, false)
	p1.Health = 0

	p1.Update(action.Null, p2)

	if p1.Hitbox != nil {
		t.Error("dead fighter retained an active hitbox")
	}
}

func TestAttemptAttackOpensHitboxDuringCooldownWindow(t *testing.T) {
	cfg := config.Default()
	p1 := New(cfg, 280, 0, true)
	p2 := New(cfg, 470, 0, false)

	punch := action.Signals{Action1: true}
	p1.Update(punch, p2)

	if p1.State != action.Punch {
		t.Fatalf("State = %v, want Punch", p1.State)
	}
	if p1.Cooldown != cfg.Combat.AttackCooldownFrames {
		t.Fatalf("Cooldown = %v, want %v", p1.Cooldown, cfg.Combat.AttackCooldownFrames)
	}

	// Advance until cooldown is in (5, 15): hitbox should be active.
	var sawHitbox bool
	for p1.Cooldown > 5 {
		p1.Update(action.Null, p2)
		if p1.Hitbox != nil {
			sawHitbox = true
		}
	}
	if !sawHitbox {
		t.Error("expected hitbox to open during the (5,15) cooldown window")
	}
}

func TestSpendEnergyRefusesWhenInsufficient(t *testing.T) {
	cfg := config.Default()
	f := New(cfg, 0, 0, true)
	f.Energy = 1

	if f.spendEnergy(50) {
		t.Error("spendEnergy succeeded with insufficient energy")
	}
	if f.Energy != 1 {
		t.Errorf("Energy changed on refused spend: %v", f.Energy)
	}
}
