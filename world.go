package drum

import (
	"github.com/akmonengine/drum/actor"
	"github.com/akmonengine/drum/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// World owns one simulation instance: the ball collection, the rotating
// boundary and the state derived from them each tick. Step must be invoked
// serially; the world mutates balls and boundary with no internal locking.
// Independent simulations each get their own World.
type World struct {
	// All balls in the simulation, in creation order
	Balls []*actor.Ball
	// The rotating polygon containing the balls
	Boundary    *actor.Boundary
	SpatialGrid *SpatialGrid
	Workers     int

	Events Events

	// Boundary vertices of the current tick, refreshed at the top of Step
	vertices []mgl64.Vec2
}

// NewWorld creates a world around the given boundary. The spatial grid is
// sized for ball radii well below the circumradius; callers with unusual
// scales can replace it before the first Step.
func NewWorld(boundary *actor.Boundary) *World {
	return &World{
		Boundary:    boundary,
		SpatialGrid: NewSpatialGrid(boundary.Circumradius/4, 64),
		Workers:     DEFAULT_WORKERS,
		Events:      NewEvents(),
	}
}

// AddBall adds a ball to the world
func (w *World) AddBall(ball *actor.Ball) {
	w.Balls = append(w.Balls, ball)
}

// RemoveBall removes a ball from the world
func (w *World) RemoveBall(ball *actor.Ball) {
	k := -1
	for i, b := range w.Balls {
		if b == ball {
			k = i
			break
		}
	}

	if k != -1 {
		w.Balls = append(w.Balls[:k], w.Balls[k+1:]...)
	}

	w.Events.removeBall(ball)
}

// Vertices returns the boundary vertices of the current tick, for rendering.
// The slice is owned by the world and must not be mutated.
func (w *World) Vertices() []mgl64.Vec2 {
	if w.vertices == nil {
		w.vertices = w.Boundary.Vertices()
	}

	return w.vertices
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: boundary rotation, then fresh vertices for this tick
	w.Boundary.Advance(dt)
	w.vertices = w.Boundary.Vertices()

	// Phase 2: explicit Euler integration
	w.integrate(dt)

	// Phase 3: wall contacts, at most one per ball
	w.resolveWalls()

	// Phase 4: pairwise contacts, single pass in fixed order
	w.resolvePairs()

	w.Events.flush()
}

func (w *World) integrate(dt float64) {
	task(w.Workers, w.Balls, func(_ int, ball *actor.Ball) {
		ball.Integrate(dt)
	})
}

// resolveWalls detects and resolves wall contacts per ball. Each ball only
// reads the shared vertices and writes its own state, so the phase fans out;
// event recording stays sequential.
func (w *World) resolveWalls() {
	hits := make([]*constraint.WallContact, len(w.Balls))

	task(w.Workers, w.Balls, func(i int, ball *actor.Ball) {
		if contact, ok := CollideWall(ball, w.vertices); ok {
			contact.Resolve()
			hits[i] = &contact
		}
	})

	for _, contact := range hits {
		if contact != nil {
			w.Events.recordWallHit(contact.Ball, contact.Normal)
		}
	}
}

// resolvePairs runs the single pairwise pass. Pairs are re-tested at
// resolution time, so a correction from an earlier pair is seen by later
// ones; a ball overlapping several neighbors is corrected several times.
func (w *World) resolvePairs() {
	pairs := BroadPhase(w.SpatialGrid, w.Balls)

	for _, pair := range pairs {
		contact, ok := CollidePair(pair.BallA, pair.BallB)
		if !ok {
			continue
		}

		contact.Resolve()
		w.Events.recordPair(pair.BallA, pair.BallB)
	}
}
