package fitness

import (
	"math"
	"testing"

	"github.com/pthm-cable/neuroarena/action"
)

func TestPerTickDistanceBonusesStack(t *testing.T) {
	close := PerTick(ShapingInput{
		Distance:     50,
		CanvasWidth:  1280,
		FighterWidth: 64,
		SelfX:        640,
	})
	far := PerTick(ShapingInput{
		Distance:     500,
		CanvasWidth:  1280,
		FighterWidth: 64,
		SelfX:        640,
	})
	if close <= far {
		t.Errorf("close reward %v should exceed far reward %v", close, far)
	}
}

func TestPerTickCornerPenalty(t *testing.T) {
	center := PerTick(ShapingInput{Distance: 1000, CanvasWidth: 1280, FighterWidth: 64, SelfX: 640})
	corner := PerTick(ShapingInput{Distance: 1000, CanvasWidth: 1280, FighterWidth: 64, SelfX: 10})
	if corner >= center {
		t.Errorf("cornered reward %v should be lower than centered reward %v", corner, center)
	}
}

func TestPerTickAttackInRangeBonus(t *testing.T) {
	noAttack := PerTick(ShapingInput{Distance: 50, CanvasWidth: 1280, FighterWidth: 64, SelfX: 640, SelfState: action.Idle})
	attacking := PerTick(ShapingInput{Distance: 50, CanvasWidth: 1280, FighterWidth: 64, SelfX: 640, SelfState: action.Punch})
	if attacking <= noAttack {
		t.Errorf("in-range punch reward %v should exceed idle reward %v", attacking, noAttack)
	}
}

func TestDamageAndHealthAwards(t *testing.T) {
	if got := DamageDealtAward(10); got != 20 {
		t.Errorf("DamageDealtAward(10) = %v, want 20", got)
	}
	if got := HealthRemainingAward(40); got != 100 {
		t.Errorf("HealthRemainingAward(40) = %v, want 100", got)
	}
}

func TestAccumulatorSumsDeltas(t *testing.T) {
	var a Accumulator
	a.AddFitness(1.5)
	a.AddFitness(-0.5)
	a.AddFitness(2)
	if math.Abs(a.Total()-3) > 1e-9 {
		t.Errorf("Total() = %v, want 3", a.Total())
	}
}
