package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulse(t *testing.T) {
	p := NewPulse(1.2, 0.2)
	assert.Equal(t, 1.0, p.Value(), "idle pulse is neutral")

	p.Start()
	p.Advance(0.1)
	assert.InDelta(t, 1.1, p.Value(), 1e-9, "linear rise")

	p.Advance(0.1)
	assert.InDelta(t, 1.2, p.Value(), 1e-9, "peak")

	// Ease-out: more than half of the way back after half of the return.
	p.Advance(0.18)
	assert.Less(t, p.Value(), 1.1)
	assert.Greater(t, p.Value(), 1.0)

	p.Advance(0.2)
	assert.False(t, p.Active())
	assert.Equal(t, 1.0, p.Value())
}

func TestPulse_ScaleKeepsVolume(t *testing.T) {
	p := NewPulse(1.2, 0.2)
	p.Start()
	p.Advance(0.2)

	x, y, z := p.Scale()
	assert.InDelta(t, 1.2, y, 1e-9)
	assert.Equal(t, x, z)
	assert.InDelta(t, 1.0, x*y*z, 1e-9)
	assert.InDelta(t, 1/math.Sqrt(1.2), x, 1e-9)
}
