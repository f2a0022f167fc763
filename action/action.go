// Package action defines the fighter action enum shared by the fighter,
// neural, and policy packages. The ordinal values are contractual: they
// are the index of the output neuron mapped to each action and must
// never be reordered.
package action

// Action is a fighter's current or requested action.
type Action int

const (
	Idle Action = iota
	MoveLeft
	MoveRight
	Jump
	Crouch
	Punch
	Kick
	Block

	// Count is the number of distinct actions, and therefore the
	// required width of a network's output layer.
	Count = 8
)

func (a Action) String() string {
	switch a {
	case Idle:
		return "Idle"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case Jump:
		return "Jump"
	case Crouch:
		return "Crouch"
	case Punch:
		return "Punch"
	case Kick:
		return "Kick"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// Signals is the boolean input-signal vector shared by every policy
// kind (human device, neural threshold, script call). Field order
// matches the MoveLeft..Block ordinals used for both inputs and
// network outputs; Idle has no field of its own.
type Signals struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Action1 bool // punch
	Action2 bool // kick
	Action3 bool // block
}

// Null is the all-false signal vector substituted for missed policy
// deadlines and non-human fighters that receive no external input.
var Null = Signals{}

// FromOutputs maps an 8-wide network/threshold output vector onto the
// same input-signal shape used everywhere else, using the ordinal
// table above. Any output above the 0.5 threshold triggers its action;
// Idle (index 0) carries no signal of its own.
func FromOutputs(outputs [Count]float64) Signals {
	fires := func(i int) bool { return outputs[i] > 0.5 }
	return Signals{
		Left:    fires(int(MoveLeft)),
		Right:   fires(int(MoveRight)),
		Up:      fires(int(Jump)),
		Down:    fires(int(Crouch)),
		Action1: fires(int(Punch)),
		Action2: fires(int(Kick)),
		Action3: fires(int(Block)),
	}
}
