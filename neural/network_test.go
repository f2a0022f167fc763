package neural

import (
	"math/rand"
	"testing"
)

func TestNewRandomProducesCompiledShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := NewRandom(rng)
	if err := checkShape(n); err != nil {
		t.Fatalf("checkShape: %v", err)
	}
}

func TestPredictIntoMatchesPredict(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := NewRandom(rng)
	var inputs [NumInputs]float64
	for i := range inputs {
		inputs[i] = float64(i) / float64(NumInputs)
	}

	got := n.Predict(inputs)
	scratch := NewScratch()
	gotScratch := n.PredictInto(scratch, inputs)

	if got != gotScratch {
		t.Fatalf("Predict() = %v, PredictInto() = %v", got, gotScratch)
	}
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("output[%d] = %v, want sigmoid range [0,1]", i, v)
		}
	}
}

func TestMutateDeterministicWithSeed(t *testing.T) {
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	base := NewRandom(rand.New(rand.NewSource(1)))
	a := base.Clone()
	b := base.Clone()

	a.Mutate(rng1, 0.5, 0.1)
	b.Mutate(rng2, 0.5, 0.1)

	pa, pb := a.ToPayload(), b.ToPayload()
	for i := range pa.Biases {
		if pa.Biases[i] != pb.Biases[i] {
			t.Fatalf("bias %d diverged between identically seeded mutations", i)
		}
	}
}

func TestCrossoverRejectsShapeMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	good := NewRandom(rng)
	bad := &Network{
		InputWeights:  good.InputWeights,
		OutputWeights: good.OutputWeights,
		Biases:        good.Biases[:len(good.Biases)-1],
	}

	if _, err := Crossover(rng, good, bad); err == nil {
		t.Fatal("expected ShapeMismatch, got nil")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := NewRandom(rng)
	c := n.Clone()
	c.Biases[0] += 100

	if n.Biases[0] == c.Biases[0] {
		t.Fatal("Clone shares backing storage with the original")
	}
}
