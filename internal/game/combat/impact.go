package combat

import "math"

// Default squash-and-stretch tuning.
const (
	DefaultSquashPeak     = 1.2
	DefaultSquashDuration = 0.2
	squashReturnFactor    = 1.8
)

// Pulse is the squash-and-stretch impact deformation: a linear rise to Peak
// over Rise seconds, then an ease-out return to 1 over 1.8×Rise seconds.
type Pulse struct {
	Peak float64
	Rise float64

	t      float64
	active bool
}

// NewPulse creates an idle pulse. Non-positive values select the defaults.
func NewPulse(peak, rise float64) *Pulse {
	if peak <= 0 {
		peak = DefaultSquashPeak
	}
	if rise <= 0 {
		rise = DefaultSquashDuration
	}
	return &Pulse{Peak: peak, Rise: rise}
}

// Start restarts the pulse from the beginning.
func (p *Pulse) Start() {
	p.t = 0
	p.active = true
}

// Active reports whether the pulse is still playing.
func (p *Pulse) Active() bool { return p.active }

// Advance moves the pulse forward by dt seconds.
func (p *Pulse) Advance(dt float64) {
	if !p.active {
		return
	}
	p.t += dt
	if p.t >= p.Rise*(1+squashReturnFactor) {
		p.active = false
	}
}

// Value returns the current vertical stretch factor.
func (p *Pulse) Value() float64 {
	if !p.active {
		return 1
	}
	if p.t < p.Rise {
		return 1 + (p.Peak-1)*(p.t/p.Rise)
	}
	fall := p.Rise * squashReturnFactor
	x := math.Min((p.t-p.Rise)/fall, 1)
	eased := 1 - (1-x)*(1-x) // quadratic ease-out
	return p.Peak + (1-p.Peak)*eased
}

// Scale returns the non-uniform skin scale for the current value. Horizontal
// axes shrink as the vertical one stretches, keeping volume.
func (p *Pulse) Scale() (x, y, z float64) {
	s := p.Value()
	side := 1 / math.Sqrt(s)
	return side, s, side
}
