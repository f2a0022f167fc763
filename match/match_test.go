package match

import (
	"testing"

	"github.com/pthm-cable/neuroarena/action"
	"github.com/pthm-cable/neuroarena/config"
	"github.com/pthm-cable/neuroarena/fighter"
)

func TestRunWithNoInputEndsInStalemate(t *testing.T) {
	cfg := config.Default()
	p1 := fighter.New(cfg, 280, 0, true)
	p2 := fighter.New(cfg, 470, 0, false)

	result := Run(cfg, "job-1", p1, p2, nil)

	if result.Winner != Draw {
		t.Fatalf("Winner = %v, want Draw (stalemate)", result.Winner)
	}
	if result.P1Health != 100 || result.P2Health != 100 {
		t.Errorf("health should be untouched: p1=%v p2=%v", result.P1Health, result.P2Health)
	}
}

func TestTickReturnsNilUntilEnded(t *testing.T) {
	cfg := config.Default()
	p1 := fighter.New(cfg, 280, 0, true)
	p2 := fighter.New(cfg, 470, 0, false)
	m := New(cfg, "job-2", p1, p2)

	if r := m.Tick(action.Null); r != nil {
		t.Fatalf("first tick (countdown) returned non-nil result: %+v", r)
	}
	if m.Status == Ended {
		t.Fatal("match ended on its first tick")
	}
}

func TestKOEndsMatchImmediately(t *testing.T) {
	cfg := config.Default()
	p1 := fighter.New(cfg, 280, 0, true)
	p2 := fighter.New(cfg, 470, 0, false)
	m := New(cfg, "job-3", p1, p2)
	m.Status = Fighting
	m.countdown = 0

	p2.Health = 0
	result := m.Tick(action.Null)

	if result == nil {
		t.Fatal("expected a result on KO tick")
	}
	if result.Winner != P1 {
		t.Errorf("Winner = %v, want P1", result.Winner)
	}
	if !result.Genome1Won {
		t.Error("Genome1Won = false, want true")
	}
}

func TestResolveBodyPenetrationPushesApart(t *testing.T) {
	cfg := config.Default()
	p1 := fighter.New(cfg, 100, 0, true)
	p2 := fighter.New(cfg, 100, 0, false) // fully overlapping

	resolveBodyPenetration(p1, p2)

	if p1.X == p2.X {
		t.Error("expected resolveBodyPenetration to separate overlapping fighters")
	}
}
