package evolution

import "github.com/pthm-cable/neuroarena/config"

// ComputeMutationRate implements the adaptive mutation controller:
// linear decay from the generation count, a plateau spike when
// recent best-fitness has stalled, and a periodic oscillation boost,
// all clamped to [FloorRate, MaxRate].
//
// recentBest is the bounded queue of the last PlateauThreshold-or-more
// best-fitness values, oldest first.
func ComputeMutationRate(cfg config.MutationConfig, generation int, recentBest []float64) float64 {
	rate := cfg.InitRate - float64(generation)*cfg.DecayPerGeneration
	if rate < cfg.FloorRate {
		rate = cfg.FloorRate
	}

	if plateaued(cfg, recentBest) {
		rate = maxf(rate, cfg.PlateauSpike)
	}

	if generation > 0 && generation%cfg.OscillationInterval == 0 {
		rate += cfg.OscillationBoost
	}

	return clamp(rate, cfg.FloorRate, cfg.MaxRate)
}

// plateaued examines the last PlateauThreshold best-fitness values and
// reports whether the improvement ratio between the oldest and newest
// is below 1%.
func plateaued(cfg config.MutationConfig, recentBest []float64) bool {
	if len(recentBest) < cfg.PlateauThreshold {
		return false
	}
	window := recentBest[len(recentBest)-cfg.PlateauThreshold:]
	oldest := window[0]
	newest := window[len(window)-1]

	var improvement float64
	if oldest > 0 {
		improvement = (newest - oldest) / oldest
	} else {
		improvement = newest - oldest
	}
	return improvement < 0.01
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
