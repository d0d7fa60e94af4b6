package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Boundary represents the rotating regular convex polygon containing the balls.
// Center, Circumradius and Sides are fixed for a run; Rotation is advanced once
// per tick by the world. Vertices are always derived, never stored.
type Boundary struct {
	Center       mgl64.Vec2
	Circumradius float64
	Sides        int // >= 3

	Rotation        float64 // radians
	AngularVelocity float64 // rad/s, applied as a counter-clockwise spin
}

// NewBoundary creates a boundary with the given geometry and spin
func NewBoundary(center mgl64.Vec2, circumradius float64, sides int, rotation, angularVelocity float64) *Boundary {
	return &Boundary{
		Center:          center,
		Circumradius:    circumradius,
		Sides:           sides,
		Rotation:        rotation,
		AngularVelocity: angularVelocity,
	}
}

// Advance spins the boundary by dt seconds. Rotation decreases monotonically,
// which realizes a counter-clockwise spin with the vertex convention below.
func (b *Boundary) Advance(dt float64) {
	b.Rotation -= b.AngularVelocity * dt
}

// Vertices returns the current vertex positions, recomputed from scratch
func (b *Boundary) Vertices() []mgl64.Vec2 {
	return PolygonVertices(b.Center, b.Circumradius, b.Sides, b.Rotation)
}

// PolygonVertices computes the vertices of a regular polygon in
// counter-clockwise order. Vertex 0 sits at the top for rotation 0 (the -π/2
// offset); renderers must use the same convention or the drawn and simulated
// boundaries diverge.
func PolygonVertices(center mgl64.Vec2, circumradius float64, sides int, rotation float64) []mgl64.Vec2 {
	vertices := make([]mgl64.Vec2, sides)
	for i := 0; i < sides; i++ {
		angle := float64(i)*2*math.Pi/float64(sides) - math.Pi/2 + rotation
		vertices[i] = center.Add(mgl64.Vec2{
			circumradius * math.Cos(angle),
			circumradius * math.Sin(angle),
		})
	}

	return vertices
}
