package testutil

import (
	"fmt"
	"sync"

	"github.com/udisondev/roguecore/internal/anim"
	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/movement"
)

// AttackCall is one recorded RequestAttack.
type AttackCall struct {
	Request anim.AttackRequest
	Clip    string
}

// AnimLayer records every write of the controller and serves a scripted
// one-shot status.
type AnimLayer struct {
	mu sync.Mutex

	Attacks []AttackCall
	Blends  []float64
	States  []movement.State

	// Active and Reports drive AttackActive. With Reports false the layer
	// behaves like one that cannot expose the flag.
	Active  bool
	Reports bool
}

func (a *AnimLayer) RequestAttack(req anim.AttackRequest, clip string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Attacks = append(a.Attacks, AttackCall{Request: req, Clip: clip})
}

func (a *AnimLayer) SetDefendBlend(amount float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Blends = append(a.Blends, amount)
}

func (a *AnimLayer) Travel(state movement.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.States = append(a.States, state)
}

func (a *AnimLayer) AttackActive() (bool, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Active, a.Reports
}

// LastBlend returns the most recent defend blend, or -1 when none was written.
func (a *AnimLayer) LastBlend() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Blends) == 0 {
		return -1
	}
	return a.Blends[len(a.Blends)-1]
}

// Requests returns the recorded attack requests of one kind.
func (a *AnimLayer) Requests(req anim.AttackRequest) []AttackCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []AttackCall
	for _, c := range a.Attacks {
		if c.Request == req {
			out = append(out, c)
		}
	}
	return out
}

// Audio records played clips.
type Audio struct {
	mu    sync.Mutex
	Clips []string
}

func (a *Audio) PlayOnce(clip string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Clips = append(a.Clips, clip)
}

// Played returns a copy of the played clips.
func (a *Audio) Played() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.Clips...)
}

// HUD records displayed health values.
type HUD struct {
	mu     sync.Mutex
	Values []int
}

func (h *HUD) SetHealth(health int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Values = append(h.Values, health)
}

// Last returns the displayed health, or -1 when nothing was shown yet.
func (h *HUD) Last() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Values) == 0 {
		return -1
	}
	return h.Values[len(h.Values)-1]
}

// Effects records shield flashes.
type Effects struct {
	mu      sync.Mutex
	Flashes []string
}

func (e *Effects) ShieldFlash(shield *data.ItemDef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Flashes = append(e.Flashes, shield.Key)
}

// Highlighter tracks highlight state per category and key.
type Highlighter struct {
	mu    sync.Mutex
	state map[string]bool
	Calls int
}

func (h *Highlighter) SetHighlighted(cat data.Category, key string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == nil {
		h.state = make(map[string]bool)
	}
	h.state[fmt.Sprintf("%s/%s", cat, key)] = on
	h.Calls++
}

// Highlighted reports the last state written for the key.
func (h *Highlighter) Highlighted(cat data.Category, key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state[fmt.Sprintf("%s/%s", cat, key)]
}
