package drum

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

// =============================================================================
// Subscribe and pair tracking
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, capture.capture)

	if len(events.listeners[COLLISION_ENTER]) != 1 {
		t.Errorf("Expected 1 listener for COLLISION_ENTER, got %d", len(events.listeners[COLLISION_ENTER]))
	}
}

func TestEvents_EnterStayExitCycle(t *testing.T) {
	events := NewEvents()
	enter := &eventCapture{}
	stay := &eventCapture{}
	exit := &eventCapture{}
	events.Subscribe(COLLISION_ENTER, enter.capture)
	events.Subscribe(COLLISION_STAY, stay.capture)
	events.Subscribe(COLLISION_EXIT, exit.capture)

	a := createBall(0, mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
	b := createBall(1, mgl64.Vec2{15, 0}, mgl64.Vec2{}, 10)

	// Tick 1: pair becomes active
	events.recordPair(a, b)
	events.flush()

	if !enter.hasEventType(COLLISION_ENTER) || enter.count() != 1 {
		t.Errorf("tick 1: expected exactly one enter event, got %d", enter.count())
	}
	if stay.count() != 0 || exit.count() != 0 {
		t.Error("tick 1: unexpected stay/exit events")
	}

	// Tick 2: pair still active
	enter.reset()
	events.recordPair(a, b)
	events.flush()

	if enter.count() != 0 {
		t.Error("tick 2: pair re-entered instead of staying")
	}
	if !stay.hasEventType(COLLISION_STAY) || stay.count() != 1 {
		t.Errorf("tick 2: expected exactly one stay event, got %d", stay.count())
	}

	// Tick 3: pair no longer active
	stay.reset()
	events.flush()

	if !exit.hasEventType(COLLISION_EXIT) || exit.count() != 1 {
		t.Errorf("tick 3: expected exactly one exit event, got %d", exit.count())
	}
	if enter.count() != 0 || stay.count() != 0 {
		t.Error("tick 3: unexpected enter/stay events")
	}
}

func TestEvents_PairKeyOrderIndependent(t *testing.T) {
	events := NewEvents()
	enter := &eventCapture{}
	stay := &eventCapture{}
	events.Subscribe(COLLISION_ENTER, enter.capture)
	events.Subscribe(COLLISION_STAY, stay.capture)

	a := createBall(0, mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
	b := createBall(1, mgl64.Vec2{15, 0}, mgl64.Vec2{}, 10)

	events.recordPair(a, b)
	events.flush()
	events.recordPair(b, a)
	events.flush()

	if enter.count() != 1 {
		t.Errorf("swapped argument order created a second pair: %d enter events", enter.count())
	}
	if stay.count() != 1 {
		t.Errorf("expected a stay event for the swapped pair, got %d", stay.count())
	}
}

func TestEvents_RemoveBallClearsTracking(t *testing.T) {
	events := NewEvents()
	exit := &eventCapture{}
	events.Subscribe(COLLISION_EXIT, exit.capture)

	a := createBall(0, mgl64.Vec2{0, 0}, mgl64.Vec2{}, 10)
	b := createBall(1, mgl64.Vec2{15, 0}, mgl64.Vec2{}, 10)

	events.recordPair(a, b)
	events.flush()

	// The ball leaves the world between ticks; no exit event may fire for it
	events.removeBall(a)
	events.flush()

	if exit.count() != 0 {
		t.Errorf("removed ball still produced %d exit events", exit.count())
	}
}

// =============================================================================
// World integration
// =============================================================================

func TestEvents_WallHitEmittedByStep(t *testing.T) {
	world := createFrozenHexagonWorld(250)
	ball := createBall(7, mgl64.Vec2{0, 0}, mgl64.Vec2{50, 0}, 10)
	world.AddBall(ball)

	var hits []WallHitEvent
	world.Events.Subscribe(WALL_HIT, func(event Event) {
		hits = append(hits, event.(WallHitEvent))
	})

	for i := 0; i < 100 && len(hits) == 0; i++ {
		world.Step(0.1)
	}

	if len(hits) != 1 {
		t.Fatalf("expected exactly one wall hit, got %d", len(hits))
	}
	if hits[0].Ball != ball {
		t.Error("wall hit reported the wrong ball")
	}
	// Right wall of the unrotated hexagon has outward normal (1, 0)
	if hits[0].Normal.Sub(mgl64.Vec2{1, 0}).Len() > 1e-9 {
		t.Errorf("wall hit normal = %v, want {1 0}", hits[0].Normal)
	}
}

func TestEvents_CollisionEnterEmittedByStep(t *testing.T) {
	world := createFrozenHexagonWorld(250)
	a := createBall(0, mgl64.Vec2{-30, 0}, mgl64.Vec2{40, 0}, 10)
	b := createBall(1, mgl64.Vec2{30, 0}, mgl64.Vec2{-40, 0}, 10)
	world.AddBall(a)
	world.AddBall(b)

	enter := &eventCapture{}
	world.Events.Subscribe(COLLISION_ENTER, enter.capture)

	for i := 0; i < 50 && enter.count() == 0; i++ {
		world.Step(0.05)
	}

	if enter.count() != 1 {
		t.Fatalf("expected one collision enter event, got %d", enter.count())
	}

	event := enter.events[0].(CollisionEnterEvent)
	if event.BallA != a && event.BallB != a {
		t.Error("collision event does not reference the colliding balls")
	}

	// The resolved pair separates and recedes, so the next tick exits
	exit := &eventCapture{}
	world.Events.Subscribe(COLLISION_EXIT, exit.capture)
	world.Step(0.05)

	if exit.count() != 1 {
		t.Errorf("expected one collision exit event, got %d", exit.count())
	}
	if a.Velocity.X() >= 0 {
		t.Errorf("BallA velocity = %v, want receding (negative x)", a.Velocity)
	}
}
