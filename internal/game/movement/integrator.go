package movement

import (
	"math"

	"github.com/udisondev/roguecore/internal/geom"
)

// State is the movement-state request sent to the animation layer.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateJumping State = "jumping"
)

// Params are the integrator tuning constants.
type Params struct {
	BaseSpeed    float64
	RunSpeed     float64
	DefendSpeed  float64
	Acceleration float64 // units/s² toward target velocity while input is held
	Deceleration float64 // units/s² toward zero without input
	JumpSpeed    float64
	Gravity      float64
	TurnSpeed    float64 // rad/s the skin yaw chases the movement direction
	FloorHeight  float64
}

// Input is the raw directional input for one step.
type Input struct {
	Direction geom.Vec2 // x: left/right, y: forward(-)/backward(+)
	Run       bool
	Defend    bool
	Jump      bool    // edge: pressed this step
	CameraYaw float64 // camera yaw, radians
}

// Body is the kinematic state of one actor.
type Body struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Facing   float64 // skin yaw
	Grounded bool

	// Heading is the camera-relative input of the last step.
	Heading geom.Vec2
}

// Integrator turns input into velocity. It never fails: zero input is a
// valid steady state.
type Integrator struct {
	p Params
}

// New creates an integrator.
func New(p Params) *Integrator {
	return &Integrator{p: p}
}

// Params returns the tuning constants.
func (it *Integrator) Params() Params { return it.p }

// TargetSpeed picks the speed for the mode. Defending overrides running.
func (it *Integrator) TargetSpeed(run, defend bool) float64 {
	switch {
	case defend:
		return it.p.DefendSpeed
	case run:
		return it.p.RunSpeed
	default:
		return it.p.BaseSpeed
	}
}

// Integrate updates planar and vertical velocity and the facing angle. It
// reads b.Grounded from the previous Commit.
func (it *Integrator) Integrate(b *Body, in Input, dt float64) {
	dir := in.Direction
	if !dir.IsZero() {
		dir = dir.Rotated(-in.CameraYaw)
	}
	b.Heading = dir

	planar := b.Velocity.Planar()
	if !dir.IsZero() {
		planar = planar.MoveToward(dir.Scale(it.TargetSpeed(in.Run, in.Defend)), it.p.Acceleration*dt)
	} else {
		planar = planar.MoveToward(geom.Zero2, it.p.Deceleration*dt)
	}
	b.Velocity = b.Velocity.WithPlanar(planar)

	if !b.Grounded {
		b.Velocity.Y -= it.p.Gravity * dt
	} else if in.Jump {
		b.Velocity.Y = it.p.JumpSpeed
	}

	if !dir.IsZero() {
		target := -dir.Angle() + math.Pi/2
		b.Facing = geom.MoveTowardAngle(b.Facing, target, it.p.TurnSpeed*dt)
	}
}

// MoveState returns the animation state for the current body.
func (it *Integrator) MoveState(b *Body) State {
	if !b.Grounded {
		return StateJumping
	}
	if !b.Heading.IsZero() {
		return StateRunning
	}
	return StateIdle
}

// Commit applies velocity to position and resolves the floor plane. This is
// the single integration step; there is no collision response.
func (it *Integrator) Commit(b *Body, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if b.Position.Y <= it.p.FloorHeight && b.Velocity.Y <= 0 {
		b.Position.Y = it.p.FloorHeight
		b.Velocity.Y = 0
		b.Grounded = true
		return
	}
	b.Grounded = false
}
