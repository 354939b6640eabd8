package movement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/roguecore/internal/geom"
)

const dt = 1.0 / 60

func defaultParams() Params {
	return Params{
		BaseSpeed:    4,
		RunSpeed:     6,
		DefendSpeed:  2,
		Acceleration: 8,
		Deceleration: 4,
		JumpSpeed:    6,
		Gravity:      9.8,
		TurnSpeed:    6,
	}
}

func TestTargetSpeed(t *testing.T) {
	it := New(defaultParams())

	tests := []struct {
		name        string
		run, defend bool
		want        float64
	}{
		{"base", false, false, 4},
		{"run", true, false, 6},
		{"defend", false, true, 2},
		{"defend overrides run", true, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, it.TargetSpeed(tt.run, tt.defend))
		})
	}
}

func TestIntegrate_NeverOvershootsTarget(t *testing.T) {
	it := New(defaultParams())
	inputs := []Input{
		{Direction: geom.Vec2{X: 1}},
		{Direction: geom.Vec2{X: 0.6, Y: -0.8}, Run: true},
		{Direction: geom.Vec2{Y: 1}, Run: true, Defend: true},
		{Direction: geom.Vec2{X: -0.7071, Y: 0.7071}, CameraYaw: 1.2},
	}

	for _, in := range inputs {
		b := &Body{Grounded: true}
		target := it.TargetSpeed(in.Run, in.Defend) * in.Direction.Length()
		for i := 0; i < 240; i++ {
			it.Integrate(b, in, dt)
			assert.LessOrEqual(t, b.Velocity.Planar().Length(), target+1e-9)
		}
		assert.InDelta(t, target, b.Velocity.Planar().Length(), 1e-9, "converges")
	}
}

func TestIntegrate_AccelerationBounded(t *testing.T) {
	it := New(defaultParams())
	b := &Body{Grounded: true}

	it.Integrate(b, Input{Direction: geom.Vec2{X: 1}}, dt)
	assert.InDelta(t, 8*dt, b.Velocity.X, 1e-12)

	// Release: decelerates at 4 u/s², not 8.
	b.Velocity = geom.Vec3{X: 1}
	it.Integrate(b, Input{}, dt)
	assert.InDelta(t, 1-4*dt, b.Velocity.X, 1e-12)
}

func TestIntegrate_DefendSlowsFromRunSpeed(t *testing.T) {
	it := New(defaultParams())
	b := &Body{Grounded: true, Velocity: geom.Vec3{X: 6}}

	for i := 0; i < 120; i++ {
		it.Integrate(b, Input{Direction: geom.Vec2{X: 1}, Run: true, Defend: true}, dt)
	}
	assert.InDelta(t, 2, b.Velocity.X, 1e-9)
}

func TestIntegrate_CameraRelative(t *testing.T) {
	it := New(defaultParams())
	b := &Body{Grounded: true}

	it.Integrate(b, Input{Direction: geom.Vec2{Y: -1}, CameraYaw: math.Pi / 2}, dt)
	// Forward rotated by -90°: (0,-1) -> (-1, 0).
	assert.InDelta(t, -1, b.Heading.X, 1e-9)
	assert.InDelta(t, 0, b.Heading.Y, 1e-9)

	it.Integrate(b, Input{CameraYaw: math.Pi / 2}, dt)
	assert.Equal(t, geom.Zero2, b.Heading, "zero input left unrotated")
}

func TestIntegrate_GravityAndJump(t *testing.T) {
	it := New(defaultParams())

	air := &Body{Grounded: false}
	it.Integrate(air, Input{Jump: true}, dt)
	assert.InDelta(t, -9.8*dt, air.Velocity.Y, 1e-12, "no jump while airborne")

	ground := &Body{Grounded: true}
	it.Integrate(ground, Input{Jump: true}, dt)
	assert.Equal(t, 6.0, ground.Velocity.Y)

	it.Commit(ground, dt)
	assert.False(t, ground.Grounded)
	assert.InDelta(t, 6*dt, ground.Position.Y, 1e-12)

	for i := 0; i < 200 && !ground.Grounded; i++ {
		it.Integrate(ground, Input{}, dt)
		it.Commit(ground, dt)
	}
	assert.True(t, ground.Grounded, "lands again")
	assert.Equal(t, 0.0, ground.Position.Y)
	assert.Equal(t, 0.0, ground.Velocity.Y)
}

func TestIntegrate_FacingChasesShortestPath(t *testing.T) {
	it := New(defaultParams())
	b := &Body{Grounded: true, Facing: 0}

	// Input (−1, 0) targets -(π) + π/2 = -π/2: turn negative.
	it.Integrate(b, Input{Direction: geom.Vec2{X: -1}}, dt)
	assert.InDelta(t, -6*dt, b.Facing, 1e-12)

	for i := 0; i < 60; i++ {
		it.Integrate(b, Input{Direction: geom.Vec2{X: -1}}, dt)
	}
	assert.InDelta(t, -math.Pi/2, b.Facing, 1e-9)

	prev := b.Facing
	it.Integrate(b, Input{}, dt)
	assert.Equal(t, prev, b.Facing, "facing holds without input")
}

func TestMoveState(t *testing.T) {
	it := New(defaultParams())

	assert.Equal(t, StateJumping, it.MoveState(&Body{Grounded: false, Heading: geom.Vec2{X: 1}}))
	assert.Equal(t, StateRunning, it.MoveState(&Body{Grounded: true, Heading: geom.Vec2{X: 1}}))
	assert.Equal(t, StateIdle, it.MoveState(&Body{Grounded: true}))
}
