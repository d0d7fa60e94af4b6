package actor

import "github.com/go-gl/mathgl/mgl64"

// Ball represents a circular rigid body in the simulation.
// Position and Velocity are mutated in place by the world's resolvers;
// ID and Radius are fixed at creation.
type Ball struct {
	ID int

	Position mgl64.Vec2
	Velocity mgl64.Vec2 // Linear velocity (units/s)

	Radius float64

	aabb AABB
}

// NewBall creates a ball with the given identity and initial state
func NewBall(id int, position, velocity mgl64.Vec2, radius float64) *Ball {
	b := &Ball{
		ID:       id,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
	b.ComputeAABB()

	return b
}

// Integrate advances the position by explicit Euler over dt seconds
func (b *Ball) Integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.ComputeAABB()
}

// ComputeAABB refreshes the bounding box from the current position
func (b *Ball) ComputeAABB() {
	extent := mgl64.Vec2{b.Radius, b.Radius}
	b.aabb = AABB{
		Min: b.Position.Sub(extent),
		Max: b.Position.Add(extent),
	}
}

func (b *Ball) GetAABB() AABB {
	return b.aabb
}
