package systems

import (
	"testing"

	"github.com/pthm-cable/nebula/gesture"
)

func TestBlendSustainedFist(t *testing.T) {
	var b BlendState
	sig := gesture.InteractionSignal{Active: true, Closed: true}

	prev := float32(0)
	for i := 0; i < 500; i++ {
		b.Update(sig)
		if b.BlackHoleCurrent < prev {
			t.Fatalf("step %d: black hole %v dropped below %v", i, b.BlackHoleCurrent, prev)
		}
		if b.BlackHoleCurrent > 1 {
			t.Fatalf("step %d: black hole %v exceeded 1", i, b.BlackHoleCurrent)
		}
		if b.ExplosionCurrent != 0 {
			t.Fatalf("step %d: explosion %v should stay at 0", i, b.ExplosionCurrent)
		}
		prev = b.BlackHoleCurrent
	}

	if b.BlackHoleCurrent < 0.9 {
		t.Errorf("black hole should approach 1 after 500 steps, got %v", b.BlackHoleCurrent)
	}
}

func TestBlendOpenHand(t *testing.T) {
	var b BlendState
	sig := gesture.InteractionSignal{Active: true}

	for i := 0; i < 500; i++ {
		b.Update(sig)
	}
	if b.ExplosionCurrent < 0.9 {
		t.Errorf("explosion should approach 1, got %v", b.ExplosionCurrent)
	}
	if b.BlackHoleCurrent != 0 {
		t.Errorf("black hole should stay at 0, got %v", b.BlackHoleCurrent)
	}
}

func TestBlendTargetsNeverBothOne(t *testing.T) {
	var b BlendState
	signals := []gesture.InteractionSignal{
		{Active: true},
		{Active: true, Closed: true},
		{},
		{Active: true, Closed: true},
		{Active: true},
	}
	for _, sig := range signals {
		b.Update(sig)
		if b.ExplosionTarget == 1 && b.BlackHoleTarget == 1 {
			t.Fatal("explosion and black hole targets must never both be 1")
		}
	}
}

func TestBlendDecaysWhenInactive(t *testing.T) {
	var b BlendState
	active := gesture.InteractionSignal{Active: true}
	for i := 0; i < 200; i++ {
		b.Update(active)
	}
	raised := b.ExplosionCurrent

	inactive := gesture.InteractionSignal{}
	for i := 0; i < 200; i++ {
		b.Update(inactive)
		if b.ExplosionCurrent > raised {
			t.Fatal("explosion must not grow while inactive")
		}
		raised = b.ExplosionCurrent
	}
	if b.ExplosionCurrent > 0.05 {
		t.Errorf("explosion should decay toward 0, got %v", b.ExplosionCurrent)
	}
}

func TestBlackHoleEngagesFasterThanRelease(t *testing.T) {
	var engage BlendState
	engage.Update(gesture.InteractionSignal{Active: true, Closed: true})

	release := BlendState{BlackHoleCurrent: 1, BlackHoleTarget: 1}
	release.Update(gesture.InteractionSignal{})

	gained := engage.BlackHoleCurrent
	lost := 1 - release.BlackHoleCurrent
	if gained <= lost {
		t.Errorf("engagement step %v should exceed release step %v", gained, lost)
	}
}
