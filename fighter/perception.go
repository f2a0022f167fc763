package fighter

// NumPerceptionInputs is the width of the perception vector handed to
// neural policies.
const NumPerceptionInputs = 9

// ComputeAIInputs produces the 9-element perception vector described in
// the design: relative position, health, opponent state, energy,
// facing, and opponent cooldown/energy, each normalized to roughly
// [-1, 1] or [0, 1].
func (f *Fighter) ComputeAIInputs(opponent *Fighter) [NumPerceptionInputs]float64 {
	return [NumPerceptionInputs]float64{
		(opponent.X - f.X) / f.cfg.CanvasWidth,
		(opponent.Y - f.Y) / f.cfg.CanvasHeight,
		f.Health / 100,
		opponent.Health / 100,
		float64(opponent.State) / 7,
		f.Energy / 100,
		f.Direction,
		float64(opponent.Cooldown) / 40,
		opponent.Energy / 100,
	}
}
