package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveToward(t *testing.T) {
	tests := []struct {
		name   string
		from   Vec2
		target Vec2
		delta  float64
		want   Vec2
	}{
		{
			name:   "partial step",
			from:   Vec2{},
			target: Vec2{X: 4},
			delta:  1,
			want:   Vec2{X: 1},
		},
		{
			name:   "snaps when within delta",
			from:   Vec2{X: 3.9},
			target: Vec2{X: 4},
			delta:  1,
			want:   Vec2{X: 4},
		},
		{
			name:   "diagonal keeps direction",
			from:   Vec2{},
			target: Vec2{X: 3, Y: 4},
			delta:  2.5,
			want:   Vec2{X: 1.5, Y: 2},
		},
		{
			name:   "already at target",
			from:   Vec2{X: 1, Y: 1},
			target: Vec2{X: 1, Y: 1},
			delta:  0.5,
			want:   Vec2{X: 1, Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.MoveToward(tt.target, tt.delta)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestRotated(t *testing.T) {
	got := Vec2{X: 1}.Rotated(math.Pi / 2)
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 1, got.Y, 1e-9)

	assert.Equal(t, Zero2, Zero2.Rotated(1.3))
}

func TestAngleDifference(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"wraps the short way", 0, 3 * math.Pi / 2, -math.Pi / 2},
		{"negative wrap", 0, -3 * math.Pi / 2, math.Pi / 2},
		{"across the seam", 3.0, -3.0, 2*math.Pi - 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AngleDifference(tt.from, tt.to), 1e-9)
		})
	}
}

func TestMoveTowardAngle(t *testing.T) {
	// Target three quarters around: must turn clockwise, not the long way.
	got := MoveTowardAngle(0, 3*math.Pi/2, 0.1)
	assert.InDelta(t, -0.1, got, 1e-9)

	assert.Equal(t, 0.5, MoveTowardAngle(0.45, 0.5, 0.1))
}
