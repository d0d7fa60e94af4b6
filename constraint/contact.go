// Package constraint resolves detected contacts: positional correction plus
// the elastic velocity response. Detection lives in the root package; a contact
// carries everything resolution needs so it can be applied immediately.
package constraint

import (
	"github.com/akmonengine/drum/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SeparationEpsilon is the extra push applied after removing a wall
// penetration, so the ball does not re-enter the skin on the next tick
// through floating point drift.
const SeparationEpsilon = 0.1

// WallContact is a single ball penetrating one boundary edge
type WallContact struct {
	Ball *actor.Ball
	// Normal is the unit edge normal pointing away from the polygon interior
	Normal mgl64.Vec2
	// Penetration is radius minus the center-to-edge distance, > 0
	Penetration float64
}

// Resolve reflects the velocity about the edge normal and pushes the ball back
// toward the interior. The reflection does not check the approach direction: a
// ball detected inside the skin while already receding is reflected again.
func (c *WallContact) Resolve() {
	ball := c.Ball

	dot := ball.Velocity.Dot(c.Normal)
	ball.Velocity = ball.Velocity.Sub(c.Normal.Mul(2 * dot))

	ball.Position = ball.Position.Sub(c.Normal.Mul(c.Penetration + SeparationEpsilon))
	ball.ComputeAABB()
}

// PairContact is two overlapping balls
type PairContact struct {
	BallA *actor.Ball
	BallB *actor.Ball
	// Normal is the unit vector from BallA's center to BallB's center
	Normal mgl64.Vec2
	// Overlap is the sum of radii minus the center distance, > 0
	Overlap float64
}

// Resolve separates the balls symmetrically and swaps their normal velocity
// components, the exact outcome of a 1-D elastic collision between equal
// masses. Tangential components are untouched.
func (c *PairContact) Resolve() {
	a, b := c.BallA, c.BallB

	correction := c.Normal.Mul(c.Overlap / 2)
	a.Position = a.Position.Sub(correction)
	b.Position = b.Position.Add(correction)

	vnA := a.Velocity.Dot(c.Normal)
	vnB := b.Velocity.Dot(c.Normal)

	a.Velocity = a.Velocity.Add(c.Normal.Mul(vnB - vnA))
	b.Velocity = b.Velocity.Add(c.Normal.Mul(vnA - vnB))

	a.ComputeAABB()
	b.ComputeAABB()
}
