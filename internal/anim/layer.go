package anim

import "github.com/udisondev/roguecore/internal/game/movement"

// AttackRequest is the one-shot request parameter.
type AttackRequest int

const (
	AttackNone AttackRequest = iota
	AttackFire
	AttackAbort
)

func (r AttackRequest) String() string {
	switch r {
	case AttackFire:
		return "fire"
	case AttackAbort:
		return "abort"
	default:
		return "none"
	}
}

// AttackMarker identifies attack clips in animation-finished notifications.
const AttackMarker = "Attack"

// Layer is the external animation system driven by the controller.
//
// Writes: attack one-shot request, defend blend in [0,1], movement state.
// Reads: whether the attack one-shot is still active. Layers that cannot
// report it return ok=false and rely on finished notifications instead.
type Layer interface {
	RequestAttack(req AttackRequest, clip string)
	SetDefendBlend(amount float64)
	Travel(state movement.State)
	AttackActive() (active bool, ok bool)
}

// Nop is a Layer that does nothing and reports no active status.
type Nop struct{}

func (Nop) RequestAttack(AttackRequest, string) {}
func (Nop) SetDefendBlend(float64)              {}
func (Nop) Travel(movement.State)               {}
func (Nop) AttackActive() (bool, bool)          { return false, false }
