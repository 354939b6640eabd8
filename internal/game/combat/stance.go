package combat

import (
	"log/slog"
	"strings"

	"github.com/udisondev/roguecore/internal/anim"
)

// DefaultAttackMaxDuration bounds an attack when the animation layer never
// reports completion.
const DefaultAttackMaxDuration = 0.55

// FinishReason tells which trigger ended an attack.
type FinishReason int

const (
	FinishNone     FinishReason = iota
	FinishInactive              // one-shot reported no longer active
	FinishSignal                // animation-finished notification with the attack marker
	FinishTimeout               // bounded duration elapsed; request aborted
)

func (r FinishReason) String() string {
	switch r {
	case FinishInactive:
		return "inactive"
	case FinishSignal:
		return "signal"
	case FinishTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// ActiveStatus is the polled one-shot status for one step.
type ActiveStatus struct {
	Active bool
	Known  bool // false when the layer cannot report the flag
}

// StepInput is everything the stance machine reads in one step.
type StepInput struct {
	AttackPressed bool // edge
	DefendHeld    bool
	Status        ActiveStatus
}

// StepResult describes the transitions taken in one step.
type StepResult struct {
	Started   bool
	Finished  FinishReason
	Defending bool
}

// Stance is the attack/defend state machine.
//
// Idle -> Attacking on an attack edge while not attacking. Attacking -> Idle on
// whichever comes first: the one-shot going inactive after it was seen active,
// a queued finished notification whose name contains the attack marker, or the
// bounded timer running out. Defending is a separate layer sampled every step
// from raw input and never carried between steps. Player input cannot cancel
// an attack.
type Stance struct {
	maxDuration float64

	attacking bool
	timer     float64
	confirmed bool // one-shot observed active since the attack started
	defending bool

	finished []string // queued notifications, drained at the next step

	log *slog.Logger
}

// NewStance creates an idle stance. maxDuration <= 0 selects the default.
func NewStance(maxDuration float64, log *slog.Logger) *Stance {
	if maxDuration <= 0 {
		maxDuration = DefaultAttackMaxDuration
	}
	if log == nil {
		log = slog.Default()
	}
	return &Stance{maxDuration: maxDuration, log: log}
}

func (s *Stance) Attacking() bool      { return s.attacking }
func (s *Stance) Defending() bool      { return s.defending }
func (s *Stance) Timer() float64       { return s.timer }
func (s *Stance) MaxDuration() float64 { return s.maxDuration }

// AwaitingConfirmation reports whether an attack is in flight without the
// one-shot having been observed active yet.
func (s *Stance) AwaitingConfirmation() bool { return s.attacking && !s.confirmed }

// NotifyAnimationFinished queues a finished notification. It is evaluated at
// the next Step, never mid-step.
func (s *Stance) NotifyAnimationFinished(name string) {
	s.finished = append(s.finished, name)
}

// SampleDefend records the raw defend input for this step.
func (s *Stance) SampleDefend(held bool) {
	s.defending = held
}

// Step advances the machine by dt seconds.
func (s *Stance) Step(in StepInput, dt float64) StepResult {
	var res StepResult

	s.SampleDefend(in.DefendHeld)
	res.Defending = s.defending

	if s.drainFinished() {
		res.Finished = s.finish(FinishSignal)
	}

	if in.AttackPressed && !s.attacking {
		s.attacking = true
		s.timer = s.maxDuration
		s.confirmed = false
		res.Started = true
		s.log.Debug("attack started", "duration", s.maxDuration, "defending", s.defending)
	} else if s.attacking && in.Status.Known {
		// The status polled on the start step predates the fire request.
		if in.Status.Active {
			s.confirmed = true
		} else if s.confirmed {
			res.Finished = s.finish(FinishInactive)
		}
	}

	if s.attacking {
		s.timer -= dt
		if s.timer <= 0 {
			res.Finished = s.finish(FinishTimeout)
		}
	}

	return res
}

func (s *Stance) drainFinished() bool {
	hit := false
	for _, name := range s.finished {
		if strings.Contains(name, anim.AttackMarker) {
			hit = true
		}
	}
	s.finished = s.finished[:0]
	return hit && s.attacking
}

func (s *Stance) finish(reason FinishReason) FinishReason {
	s.attacking = false
	s.timer = 0
	s.confirmed = false
	s.log.Debug("attack finished", "reason", reason)
	return reason
}
