package action

import "testing"

func TestFromOutputsThresholds(t *testing.T) {
	var outputs [Count]float64
	outputs[MoveRight] = 0.51
	outputs[Punch] = 0.49

	got := FromOutputs(outputs)
	want := Signals{Right: true}
	if got != want {
		t.Errorf("FromOutputs() = %+v, want %+v", got, want)
	}
}

func TestFromOutputsAllFire(t *testing.T) {
	var outputs [Count]float64
	for i := range outputs {
		outputs[i] = 1.0
	}
	got := FromOutputs(outputs)
	want := Signals{Left: true, Right: true, Up: true, Down: true, Action1: true, Action2: true, Action3: true}
	if got != want {
		t.Errorf("FromOutputs(all 1.0) = %+v, want %+v", got, want)
	}
}

func TestStringNames(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{Idle, "Idle"},
		{Punch, "Punch"},
		{Block, "Block"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}
