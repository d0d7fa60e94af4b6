package drum

import (
	"math"

	"github.com/akmonengine/drum/actor"
	"github.com/akmonengine/drum/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// coincidentNudge breaks exactly coincident centers apart before the pair
// normal is computed (guards the division by the center distance).
const coincidentNudge = 0.01

// BroadPhase rebuilds the spatial grid from the current ball positions and
// returns the candidate pairs in a fixed order
func BroadPhase(spatialGrid *SpatialGrid, balls []*actor.Ball) []Pair {
	spatialGrid.Clear()
	for i, ball := range balls {
		spatialGrid.Insert(i, ball)
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairs(balls)
}

// CollideWall scans the boundary edges in vertex order, including the wrap
// edge, and returns a contact for the first edge the ball penetrates.
// At most one wall contact is produced per ball per tick: a ball overlapping a
// second edge near a corner is resolved against the first one only.
func CollideWall(ball *actor.Ball, vertices []mgl64.Vec2) (constraint.WallContact, bool) {
	for i := range vertices {
		p1 := vertices[i]
		p2 := vertices[(i+1)%len(vertices)]

		edge := p2.Sub(p1)
		lengthSq := edge.Dot(edge)
		if lengthSq == 0 {
			// Degenerate edge, cannot occur for a valid polygon
			continue
		}

		// Closest point on the segment to the ball center
		t := mgl64.Clamp(ball.Position.Sub(p1).Dot(edge)/lengthSq, 0, 1)
		closest := p1.Add(edge.Mul(t))

		delta := ball.Position.Sub(closest)
		distSq := delta.Dot(delta)
		if distSq >= ball.Radius*ball.Radius {
			continue
		}

		// Outward normal for counter-clockwise winding
		normal := mgl64.Vec2{edge.Y(), -edge.X()}.Normalize()

		return constraint.WallContact{
			Ball:        ball,
			Normal:      normal,
			Penetration: ball.Radius - math.Sqrt(distSq),
		}, true
	}

	return constraint.WallContact{}, false
}

// CollidePair tests two balls for overlap. Exactly coincident centers are
// nudged apart first so the contact normal is well defined.
func CollidePair(a, b *actor.Ball) (constraint.PairContact, bool) {
	delta := b.Position.Sub(a.Position)
	distSq := delta.Dot(delta)

	if distSq == 0 {
		b.Position = b.Position.Add(mgl64.Vec2{coincidentNudge, coincidentNudge})
		b.ComputeAABB()

		delta = b.Position.Sub(a.Position)
		distSq = delta.Dot(delta)
	}

	radii := a.Radius + b.Radius
	if distSq >= radii*radii {
		return constraint.PairContact{}, false
	}

	dist := math.Sqrt(distSq)

	return constraint.PairContact{
		BallA:   a,
		BallB:   b,
		Normal:  delta.Mul(1 / dist),
		Overlap: radii - dist,
	}, true
}
