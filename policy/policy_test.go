package policy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/fighter"
	"github.com/pthm-cable/neuroarena/neural"
)

func TestHumanDecideReturnsPolledSignals(t *testing.T) {
	h := &Human{Signals: action.Signals{Left: true}}
	got := h.Decide(nil, nil)
	if got != h.Signals {
		t.Errorf("Decide() = %+v, want %+v", got, h.Signals)
	}
}

func TestNeuralDecideRunsForwardPass(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	net := neural.NewRandom(rng)
	p := NewNeural(net)

	self := fighter.New(cfg, 100, 0, true)
	opp := fighter.New(cfg, 300, 0, false)

	// Must not panic and must be deterministic for a fixed network/state.
	first := p.Decide(self, opp)
	second := p.Decide(self, opp)
	if first != second {
		t.Errorf("Decide() not deterministic: %+v vs %+v", first, second)
	}
}

func TestScriptDecideReturnsFnResult(t *testing.T) {
	want := action.Signals{Up: true}
	s := NewScript(func(self, opponent *fighter.Fighter) action.Signals {
		return want
	}, 50*time.Millisecond)

	got := s.Decide(nil, nil)
	if got != want {
		t.Errorf("Decide() = %+v, want %+v", got, want)
	}
}

func TestScriptDecideTimesOutToNull(t *testing.T) {
	var faultErr error
	s := NewScript(func(self, opponent *fighter.Fighter) action.Signals {
		time.Sleep(50 * time.Millisecond)
		return action.Signals{Up: true}
	}, 5*time.Millisecond)
	s.OnFault = func(err error) { faultErr = err }

	got := s.Decide(nil, nil)
	if got != action.Null {
		t.Errorf("Decide() = %+v, want Null on timeout", got)
	}
	if _, ok := faultErr.(*PolicyTimeout); !ok {
		t.Errorf("OnFault err = %T, want *PolicyTimeout", faultErr)
	}
}

func TestScriptDecideRecoversPanicToNull(t *testing.T) {
	var faultErr error
	s := NewScript(func(self, opponent *fighter.Fighter) action.Signals {
		panic("boom")
	}, 50*time.Millisecond)
	s.OnFault = func(err error) { faultErr = err }

	got := s.Decide(nil, nil)
	if got != action.Null {
		t.Errorf("Decide() = %+v, want Null on panic", got)
	}
	if _, ok := faultErr.(*PolicyFault); !ok {
		t.Errorf("OnFault err = %T, want *PolicyFault", faultErr)
	}
}

func TestScriptReportsFaultOnlyOnce(t *testing.T) {
	calls := 0
	s := NewScript(func(self, opponent *fighter.Fighter) action.Signals {
		panic("boom")
	}, 50*time.Millisecond)
	s.OnFault = func(err error) { calls++ }

	s.Decide(nil, nil)
	s.Decide(nil, nil)

	if calls != 1 {
		t.Errorf("OnFault called %d times, want 1", calls)
	}
}
