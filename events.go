package drum

import (
	"github.com/akmonengine/drum/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
	WALL_HIT
)

type pairKey struct {
	idA int
	idB int
}

// makePairKey creates a normalized pair key ordered by ball id.
// Ids are stable for the life of a ball, so keys survive list reordering.
func makePairKey(a, b *actor.Ball) pairKey {
	if b.ID < a.ID {
		a, b = b, a
	}

	return pairKey{idA: a.ID, idB: b.ID}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collision events
type CollisionEnterEvent struct {
	BallA *actor.Ball
	BallB *actor.Ball
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BallA *actor.Ball
	BallB *actor.Ball
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BallA *actor.Ball
	BallB *actor.Ball
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// WallHitEvent is emitted once per resolved wall contact
type WallHitEvent struct {
	Ball *actor.Ball
	// Normal is the outward normal of the edge that was hit
	Normal mgl64.Vec2
}

func (e WallHitEvent) Type() EventType { return WALL_HIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]Pair
	currentActivePairs  map[pairKey]Pair
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]Pair),
		currentActivePairs:  make(map[pairKey]Pair),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordPair is called during the pairwise pass for each resolved contact
func (e *Events) recordPair(a, b *actor.Ball) {
	e.currentActivePairs[makePairKey(a, b)] = Pair{BallA: a, BallB: b}
}

// recordWallHit is called once per resolved wall contact
func (e *Events) recordWallHit(ball *actor.Ball, normal mgl64.Vec2) {
	e.buffer = append(e.buffer, WallHitEvent{Ball: ball, Normal: normal})
}

// removeBall drops pair tracking for a ball leaving the world
func (e *Events) removeBall(ball *actor.Ball) {
	for key, pair := range e.previousActivePairs {
		if pair.BallA == ball || pair.BallB == ball {
			delete(e.previousActivePairs, key)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect
// Enter/Stay/Exit. Called once per tick from flush.
func (e *Events) processCollisionEvents() {
	// Detect Enter and Stay events
	for key, pair := range e.currentActivePairs {
		if _, active := e.previousActivePairs[key]; active {
			// Pair was active before and still is, Stay
			e.buffer = append(e.buffer, CollisionStayEvent{
				BallA: pair.BallA,
				BallB: pair.BallB,
			})
		} else {
			// New pair, Enter
			e.buffer = append(e.buffer, CollisionEnterEvent{
				BallA: pair.BallA,
				BallB: pair.BallB,
			})
		}
	}

	// Detect Exit events
	for key, pair := range e.previousActivePairs {
		if _, active := e.currentActivePairs[key]; !active {
			// Pair was active but is no longer, Exit
			e.buffer = append(e.buffer, CollisionExitEvent{
				BallA: pair.BallA,
				BallB: pair.BallB,
			})
		}
	}

	// Swap for next tick and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
