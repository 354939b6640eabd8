package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/combat"
	"github.com/udisondev/roguecore/internal/game/inventory"
	"github.com/udisondev/roguecore/internal/model"
)

// ErrPlayerDead is returned by Run when the player reached the terminal state.
var ErrPlayerDead = errors.New("player dead")

// DefaultQueueSize is the event buffer between producers and the loop.
const DefaultQueueSize = 64

// Event is anything delivered to the loop between steps.
type Event interface {
	event()
}

// InputEvent replaces the held input. Edges (attack, jump) accumulate until the
// next step consumes them.
type InputEvent struct {
	Input model.Input
}

// HitEvent delivers an incoming hit.
type HitEvent struct {
	From combat.Attacker
}

// AnimationFinishedEvent forwards an animation layer notification.
type AnimationFinishedEvent struct {
	Name string
}

// SelectEvent is an inventory selection. Delivered while paused.
type SelectEvent struct {
	Category data.Category
	Key      string
}

// ToggleInventoryEvent flips the pause flag. Delivered while paused.
type ToggleInventoryEvent struct{}

// QuitEvent stops the loop. Delivered while paused.
type QuitEvent struct{}

func (InputEvent) event()             {}
func (HitEvent) event()               {}
func (AnimationFinishedEvent) event() {}
func (SelectEvent) event()            {}
func (ToggleInventoryEvent) event()   {}
func (QuitEvent) event()              {}

// InventoryView is the inventory window shown while paused.
type InventoryView interface {
	SetVisible(visible bool)
}

// Options configure a Loop.
type Options struct {
	Step      time.Duration // fixed step; zero selects 60 Hz
	QueueSize int
	Bridge    *inventory.Bridge // nil drops selections
	View      InventoryView
	Log       *slog.Logger
}

// Loop runs the player on a fixed-rate step. All mutation of the player
// happens on the loop goroutine; producers talk to it through Send.
type Loop struct {
	player *model.Player
	bridge *inventory.Bridge
	view   InventoryView

	step   time.Duration
	events chan Event

	held   model.Input
	paused bool
	steps  uint64

	log *slog.Logger
}

// New creates a loop for player.
func New(player *model.Player, opts Options) *Loop {
	if opts.Step <= 0 {
		opts.Step = time.Second / 60
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Loop{
		player: player,
		bridge: opts.Bridge,
		view:   opts.View,
		step:   opts.Step,
		events: make(chan Event, opts.QueueSize),
		log:    opts.Log,
	}
}

// Send queues ev for the next step boundary. Blocks while the queue is full.
func (l *Loop) Send(ctx context.Context, ev Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.events <- ev:
		return nil
	}
}

// Paused reports the global pause flag.
func (l *Loop) Paused() bool { return l.paused }

// Steps returns how many simulation steps ran.
func (l *Loop) Steps() uint64 { return l.steps }

// Run steps the simulation until ctx is canceled, a quit arrives or the player
// dies (blocks).
//
// Returns nil on quit, ErrPlayerDead on death and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	l.log.Info("simulation loop started", "step", l.step)

	for {
		select {
		case <-ctx.Done():
			l.log.Info("simulation loop stopping", "steps", l.steps)
			return ctx.Err()

		case <-ticker.C:
			done, err := l.tick()
			if done {
				return err
			}
		}
	}
}

// StepN runs n steps immediately, draining queued events before each one.
// It stops early on quit or death with the same results as Run.
func (l *Loop) StepN(n int) error {
	for range n {
		if done, err := l.tick(); done {
			return err
		}
	}
	return nil
}

func (l *Loop) tick() (bool, error) {
	if quit := l.drain(); quit {
		l.log.Info("simulation loop quit", "steps", l.steps)
		return true, nil
	}
	if l.paused {
		return false, nil
	}

	l.player.Step(l.held, l.step.Seconds())
	l.steps++
	l.held.Attack = false
	l.held.Move.Jump = false

	if l.player.Dead() {
		l.log.Info("simulation loop stopped", "reason", ErrPlayerDead, "steps", l.steps)
		return true, ErrPlayerDead
	}
	return false, nil
}

// drain applies every queued event without blocking. Returns true on quit.
func (l *Loop) drain() bool {
	for {
		select {
		case ev := <-l.events:
			if l.apply(ev) {
				return true
			}
		default:
			return false
		}
	}
}

func (l *Loop) apply(ev Event) bool {
	switch e := ev.(type) {
	case QuitEvent:
		return true

	case ToggleInventoryEvent:
		l.paused = !l.paused
		if l.paused {
			// Held input does not survive the pause.
			l.held = model.Input{}
		}
		if l.view != nil {
			l.view.SetVisible(l.paused)
		}
		l.log.Debug("inventory toggled", "paused", l.paused)

	case SelectEvent:
		if l.bridge == nil {
			l.log.Warn("selection dropped, no inventory bridge", "category", e.Category, "key", e.Key)
			return false
		}
		if err := l.bridge.Select(e.Category, e.Key); err != nil {
			l.log.Warn("selection failed", "category", e.Category, "key", e.Key, "error", err)
		}

	case InputEvent:
		if l.paused {
			return false
		}
		attack := l.held.Attack || e.Input.Attack
		jump := l.held.Move.Jump || e.Input.Move.Jump
		l.held = e.Input
		l.held.Attack = attack
		l.held.Move.Jump = jump

	case HitEvent:
		if l.paused {
			return false
		}
		l.player.Hit(e.From)

	case AnimationFinishedEvent:
		if l.paused {
			return false
		}
		l.player.AnimationFinished(e.Name)

	default:
		l.log.Warn("unknown event dropped", "type", fmt.Sprintf("%T", ev))
	}
	return false
}
