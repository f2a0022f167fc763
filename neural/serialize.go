package neural

// Payload is the wire-format representation of a Network: a dense tree
// of numbers with no behavior, suitable for JSON encoding. Dimensions
// are not fixed at the type level (unlike Network) so that a malformed
// or foreign-architecture payload can be decoded and then rejected with
// a descriptive ShapeMismatch rather than silently truncated.
type Payload struct {
	InputWeights  [][]float64 `json:"input_weights"`
	OutputWeights [][]float64 `json:"output_weights"`
	Biases        []float64   `json:"biases"`
}

// Architecture describes a payload's declared shape, carried alongside
// the payload in the genome transport schema so import can validate it
// without inspecting the matrices themselves.
type Architecture struct {
	Input  int `json:"input"`
	Hidden int `json:"hidden"`
	Output int `json:"output"`
}

// CompiledArchitecture is the fixed (9, 13, 8) shape every network in
// this build must match.
var CompiledArchitecture = Architecture{Input: NumInputs, Hidden: NumHidden, Output: NumOutputs}

// ToPayload serializes a network to its wire representation.
func (n *Network) ToPayload() Payload {
	p := Payload{
		InputWeights:  make([][]float64, NumInputs),
		OutputWeights: make([][]float64, NumHidden),
		Biases:        make([]float64, NumBiases),
	}
	for i := 0; i < NumInputs; i++ {
		row := make([]float64, NumHidden)
		for j := 0; j < NumHidden; j++ {
			row[j] = n.InputWeights.At(i, j)
		}
		p.InputWeights[i] = row
	}
	for i := 0; i < NumHidden; i++ {
		row := make([]float64, NumOutputs)
		for j := 0; j < NumOutputs; j++ {
			row[j] = n.OutputWeights.At(i, j)
		}
		p.OutputWeights[i] = row
	}
	copy(p.Biases, n.Biases)
	return p
}

// actualShape infers a payload's dimensions directly from its slice
// lengths, independent of any declared Architecture.
func actualShape(p Payload) Shape {
	s := Shape{Input: len(p.InputWeights), Output: 0}
	if len(p.InputWeights) > 0 {
		s.Hidden = len(p.InputWeights[0])
	} else if len(p.OutputWeights) > 0 {
		s.Hidden = len(p.OutputWeights)
	}
	if len(p.OutputWeights) > 0 {
		s.Output = len(p.OutputWeights[0])
	}
	return s
}

// FromPayload validates p against the compiled-in (NumInputs, NumHidden,
// NumOutputs) shape and, on success, builds a Network from it. Every
// row of InputWeights and OutputWeights must have consistent length, and
// Biases must have exactly NumBiases entries, or ShapeMismatch is
// returned.
func FromPayload(p Payload) (*Network, error) {
	shape := actualShape(p)
	expected := Shape{Input: NumInputs, Hidden: NumHidden, Output: NumOutputs}

	if shape != expected || len(p.Biases) != NumBiases {
		return nil, &ShapeMismatch{Expected: expected, Actual: shape}
	}
	for _, row := range p.InputWeights {
		if len(row) != NumHidden {
			return nil, &ShapeMismatch{Expected: expected, Actual: shape}
		}
	}
	for _, row := range p.OutputWeights {
		if len(row) != NumOutputs {
			return nil, &ShapeMismatch{Expected: expected, Actual: shape}
		}
	}

	n := New()
	for i, row := range p.InputWeights {
		for j, v := range row {
			n.InputWeights.Set(i, j, v)
		}
	}
	for i, row := range p.OutputWeights {
		for j, v := range row {
			n.OutputWeights.Set(i, j, v)
		}
	}
	copy(n.Biases, p.Biases)
	return n, nil
}
