// Package neural implements the fixed-shape feed-forward controller: a
// dense 9→13→8 network with ReLU hidden activation and sigmoid output
// activation, plus the mutation, crossover, and serialization operators
// used by the genetic-algorithm loop.
package neural

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/neuroarena/action"
)

// Fixed, compiled-in architecture. Dimensions never change over a
// network's lifetime, and every network in the system shares them.
const (
	NumInputs  = 9
	NumHidden  = 13
	NumOutputs = action.Count // 8
	NumBiases  = NumHidden + NumOutputs
)

// ShapeMismatch reports that a network payload's dimensions differ from
// the compiled-in (NumInputs, NumHidden, NumOutputs) shape.
type ShapeMismatch struct {
	Expected Shape
	Actual   Shape
}

// Shape describes a network's input/hidden/output dimensions.
type Shape struct {
	Input  int
	Hidden int
	Output int
}

func (e *ShapeMismatch) Error() string {
	return fmt.Sprintf("neural: shape mismatch: expected %+v, got %+v", e.Expected, e.Actual)
}

// Network is the fixed-shape feed-forward evaluator.
//
// InputWeights is NumInputs x NumHidden, OutputWeights is NumHidden x
// NumOutputs, Biases is length NumBiases (first NumHidden for the
// hidden layer, next NumOutputs for the output layer).
type Network struct {
	InputWeights  *mat.Dense
	OutputWeights *mat.Dense
	Biases        []float64
}

// New allocates a zero-valued network of the compiled-in shape.
func New() *Network {
	return &Network{
		InputWeights:  mat.NewDense(NumInputs, NumHidden, nil),
		OutputWeights: mat.NewDense(NumHidden, NumOutputs, nil),
		Biases:        make([]float64, NumBiases),
	}
}

// NewRandom creates a network with every weight and bias drawn
// uniformly from [-1, 1].
func NewRandom(rng *rand.Rand) *Network {
	n := New()
	fill := func(d *mat.Dense) {
		r, c := d.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				d.Set(i, j, uniform(rng, -1, 1))
			}
		}
	}
	fill(n.InputWeights)
	fill(n.OutputWeights)
	for i := range n.Biases {
		n.Biases[i] = uniform(rng, -1, 1)
	}
	return n
}

// uniform draws a uniform sample from [a, b).
func uniform(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// Predict runs the forward pass: hidden = ReLU(inputs * InputWeights +
// bias), outputs = sigmoid(hidden * OutputWeights + bias). Predict
// allocates fresh gonum vectors on every call; hot paths that run one
// prediction per tick per fighter should use PredictInto with a
// preallocated Scratch instead.
func (n *Network) Predict(inputs [NumInputs]float64) [NumOutputs]float64 {
	return n.PredictInto(NewScratch(), inputs)
}

// Scratch holds the intermediate vectors of a forward pass, allocated
// once and reused every tick so the hot path performs no allocation.
type Scratch struct {
	in     *mat.VecDense
	hidden *mat.VecDense
	out    *mat.VecDense
}

// NewScratch allocates a Scratch sized for the compiled-in architecture.
func NewScratch() *Scratch {
	return &Scratch{
		in:     mat.NewVecDense(NumInputs, nil),
		hidden: mat.NewVecDense(NumHidden, nil),
		out:    mat.NewVecDense(NumOutputs, nil),
	}
}

// PredictInto runs the forward pass using s for all intermediate
// storage, allocating nothing.
func (n *Network) PredictInto(s *Scratch, inputs [NumInputs]float64) [NumOutputs]float64 {
	for i := 0; i < NumInputs; i++ {
		s.in.SetVec(i, inputs[i])
	}

	s.hidden.MulVec(n.InputWeights.T(), s.in)
	for i := 0; i < NumHidden; i++ {
		s.hidden.SetVec(i, relu(s.hidden.AtVec(i)+n.Biases[i]))
	}

	s.out.MulVec(n.OutputWeights.T(), s.hidden)

	var outputs [NumOutputs]float64
	for i := 0; i < NumOutputs; i++ {
		outputs[i] = sigmoid(s.out.AtVec(i) + n.Biases[NumHidden+i])
	}
	return outputs
}

func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Mutate perturbs every scalar weight and bias independently with
// probability rate: with probability replaceProbability (0.1 in the
// default config) it is replaced by value + U(-2, 2); otherwise it
// drifts by U(-m, m) where m = 0.5 + rate/2.
func (n *Network) Mutate(rng *rand.Rand, rate, replaceProbability float64) {
	m := 0.5 + rate/2
	mutateScalar := func(v float64) float64 {
		if rng.Float64() >= rate {
			return v
		}
		if rng.Float64() < replaceProbability {
			return v + uniform(rng, -2, 2)
		}
		return v + uniform(rng, -m, m)
	}

	mutateDense := func(d *mat.Dense) {
		r, c := d.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				d.Set(i, j, mutateScalar(d.At(i, j)))
			}
		}
	}
	mutateDense(n.InputWeights)
	mutateDense(n.OutputWeights)
	for i := range n.Biases {
		n.Biases[i] = mutateScalar(n.Biases[i])
	}
}

// Crossover performs scalar-wise uniform crossover between a and b: for
// each position, the child inherits the value from a or b with equal
// probability. a and b must share the compiled-in shape.
func Crossover(rng *rand.Rand, a, b *Network) (*Network, error) {
	if err := checkShape(a); err != nil {
		return nil, err
	}
	if err := checkShape(b); err != nil {
		return nil, err
	}

	child := New()
	pick := func(x, y float64) float64 {
		if rng.Float64() < 0.5 {
			return x
		}
		return y
	}

	crossDense := func(dst, x, y *mat.Dense) {
		r, c := x.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				dst.Set(i, j, pick(x.At(i, j), y.At(i, j)))
			}
		}
	}
	crossDense(child.InputWeights, a.InputWeights, b.InputWeights)
	crossDense(child.OutputWeights, a.OutputWeights, b.OutputWeights)
	for i := range child.Biases {
		child.Biases[i] = pick(a.Biases[i], b.Biases[i])
	}
	return child, nil
}

// Clone deep-copies a network. Used whenever a network crosses a
// worker boundary or becomes the shared best-trained snapshot.
func (n *Network) Clone() *Network {
	c := New()
	c.InputWeights.Copy(n.InputWeights)
	c.OutputWeights.Copy(n.OutputWeights)
	copy(c.Biases, n.Biases)
	return c
}

func checkShape(n *Network) error {
	ir, ic := n.InputWeights.Dims()
	or, oc := n.OutputWeights.Dims()
	if ir != NumInputs || ic != NumHidden || or != NumHidden || oc != NumOutputs || len(n.Biases) != NumBiases {
		return &ShapeMismatch{
			Expected: Shape{Input: NumInputs, Hidden: NumHidden, Output: NumOutputs},
			Actual:   Shape{Input: ir, Hidden: ic, Output: oc},
		}
	}
	return nil
}
