// Package policy implements the three concrete controllers behind the
// fighter.Policy interface: human passthrough, neural network, and a
// sandboxed script adapter with a bounded decision budget.
package policy

import (
	"context"
	"time"

	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/fighter"
	"github.com/pthm-cable/neuroarena/neural"
)

// Human passes through externally polled device state. It implements
// fighter.Policy only so a human fighter can be modeled uniformly, but
// a human's fighter.Policy is normally left nil (see fighter.Update);
// Human exists for callers that want an explicit tagged value anyway.
type Human struct {
	Signals action.Signals
}

// Decide returns the last polled device state, ignoring self/opponent.
func (h *Human) Decide(self, opponent *fighter.Fighter) action.Signals {
	return h.Signals
}

// Neural computes the perception vector and runs it through a network,
// thresholding each output at 0.5.
type Neural struct {
	Network *neural.Network
	scratch *neural.Scratch
}

// NewNeural wraps a network as a policy, preallocating its forward-pass
// scratch buffers once.
func NewNeural(net *neural.Network) *Neural {
	return &Neural{Network: net, scratch: neural.NewScratch()}
}

// Decide runs one forward pass and thresholds it into input signals.
func (n *Neural) Decide(self, opponent *fighter.Fighter) action.Signals {
	inputs := self.ComputeAIInputs(opponent)
	outputs := n.Network.PredictInto(n.scratch, inputs)
	return action.FromOutputs(outputs)
}

// ScriptFunc is a sandboxed, user-supplied decision function. The core
// treats it as opaque: it only requires that Decide returns within the
// configured time budget, and recovers from any panic it raises.
type ScriptFunc func(self, opponent *fighter.Fighter) action.Signals

// Script adapts a ScriptFunc to fighter.Policy, enforcing a per-tick
// wall-clock budget. A missed deadline or a recovered panic both
// degrade to the null (all-false) input for that tick rather than
// blocking the match loop.
type Script struct {
	Fn     ScriptFunc
	Budget time.Duration

	// OnFault, if set, is called once per match the first time the
	// script times out or panics (see spec PolicyFault: "logged once
	// per match").
	OnFault  func(err error)
	faulted  bool
}

// NewScript creates a script policy with the given decision budget.
func NewScript(fn ScriptFunc, budget time.Duration) *Script {
	return &Script{Fn: fn, Budget: budget}
}

// Decide runs Fn with a deadline and panic recovery, returning the
// null input on any PolicyTimeout or PolicyFault.
func (s *Script) Decide(self, opponent *fighter.Fighter) action.Signals {
	type outcome struct {
		signals action.Signals
		err     error
	}
	ch := make(chan outcome, 1)

	go func() {
		var out outcome
		defer func() {
			if r := recover(); r != nil {
				out = outcome{err: &PolicyFault{Reason: r}}
			}
			ch <- out
		}()
		out.signals = s.Fn(self, opponent)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.Budget)
	defer cancel()

	select {
	case res := <-ch:
		if res.err != nil {
			s.reportFault(res.err)
			return action.Null
		}
		return res.signals
	case <-ctx.Done():
		s.reportFault(&PolicyTimeout{Budget: s.Budget})
		return action.Null
	}
}

func (s *Script) reportFault(err error) {
	if s.faulted {
		return
	}
	s.faulted = true
	if s.OnFault != nil {
		s.OnFault(err)
	}
}

// PolicyTimeout reports that a script policy's Decide exceeded its
// per-tick budget.
type PolicyTimeout struct {
	Budget time.Duration
}

func (e *PolicyTimeout) Error() string {
	return "policy: script decide exceeded " + e.Budget.String() + " budget"
}

// PolicyFault reports that a script policy's Decide raised a panic.
type PolicyFault struct {
	Reason any
}

func (e *PolicyFault) Error() string {
	return "policy: script decide panicked"
}
