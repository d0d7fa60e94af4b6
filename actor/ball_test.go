package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewBall(t *testing.T) {
	ball := NewBall(3, mgl64.Vec2{10, -20}, mgl64.Vec2{1, 2}, 5)

	if ball.ID != 3 {
		t.Errorf("ID = %d, want 3", ball.ID)
	}
	if ball.Radius != 5 {
		t.Errorf("Radius = %v, want 5", ball.Radius)
	}

	aabb := ball.GetAABB()
	if aabb.Min != (mgl64.Vec2{5, -25}) || aabb.Max != (mgl64.Vec2{15, -15}) {
		t.Errorf("AABB = %v/%v, want {5 -25}/{15 -15}", aabb.Min, aabb.Max)
	}
}

func TestBallIntegrate(t *testing.T) {
	ball := NewBall(0, mgl64.Vec2{1, 1}, mgl64.Vec2{10, -4}, 2)

	ball.Integrate(0.5)

	want := mgl64.Vec2{6, -1}
	if ball.Position != want {
		t.Errorf("Position = %v, want %v", ball.Position, want)
	}
	if ball.Velocity != (mgl64.Vec2{10, -4}) {
		t.Errorf("Velocity changed during integration: %v", ball.Velocity)
	}

	aabb := ball.GetAABB()
	if aabb.Min != (mgl64.Vec2{4, -3}) || aabb.Max != (mgl64.Vec2{8, 1}) {
		t.Errorf("AABB not refreshed: %v/%v", aabb.Min, aabb.Max)
	}
}

func TestBallIntegrate_ZeroDt(t *testing.T) {
	ball := NewBall(0, mgl64.Vec2{3, 4}, mgl64.Vec2{100, 100}, 1)

	ball.Integrate(0)

	if ball.Position != (mgl64.Vec2{3, 4}) {
		t.Errorf("Position = %v, want {3 4}", ball.Position)
	}
}
