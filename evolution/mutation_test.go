package evolution

import (
	"testing"

	"github.com/pthm-cable/neuroarena/config"
)

func TestComputeMutationRateOscillationBoostAtGeneration25(t *testing.T) {
	cfg := config.Default().Mutation
	recentBest := []float64{50, 51, 52, 53, 54}

	got := ComputeMutationRate(cfg, 25, recentBest)
	want := 0.15 // decayed 0.10 + oscillation_boost 0.05 on the 25th-generation interval
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ComputeMutationRate(gen=25) = %v, want %v", got, want)
	}
}

func TestComputeMutationRateDecaysWithGeneration(t *testing.T) {
	cfg := config.Default().Mutation
	early := ComputeMutationRate(cfg, 1, nil)
	late := ComputeMutationRate(cfg, 100, nil)
	if late > early {
		t.Errorf("rate should decay: gen1=%v gen100=%v", early, late)
	}
}

func TestComputeMutationRateNeverBelowFloor(t *testing.T) {
	cfg := config.Default().Mutation
	got := ComputeMutationRate(cfg, 10000, nil)
	if got < cfg.FloorRate {
		t.Errorf("rate %v fell below floor %v", got, cfg.FloorRate)
	}
}

func TestPlateauedRequiresFullWindow(t *testing.T) {
	cfg := config.Default().Mutation
	if plateaued(cfg, []float64{1, 2}) {
		t.Error("plateaued() should be false with fewer entries than PlateauThreshold")
	}
}
