package main

import (
	"log/slog"

	"github.com/udisondev/roguecore/internal/anim"
	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/movement"
)

// Headless stand-ins for the engine side. They log what a renderer, mixer or
// UI would have received.

type logAnim struct {
	log *slog.Logger
}

func (a logAnim) RequestAttack(req anim.AttackRequest, clip string) {
	a.log.Info("attack request", "request", req, "clip", clip)
}

func (a logAnim) SetDefendBlend(amount float64) {
	a.log.Debug("defend blend", "amount", amount)
}

func (a logAnim) Travel(state movement.State) {
	a.log.Debug("travel", "state", state)
}

// AttackActive is unknown: the headless layer only reports through finished
// notifications.
func (a logAnim) AttackActive() (bool, bool) { return false, false }

type logAudio struct {
	log *slog.Logger
}

func (a logAudio) PlayOnce(clip string) {
	a.log.Info("play", "clip", clip)
}

type logEffects struct {
	log *slog.Logger
}

func (e logEffects) ShieldFlash(shield *data.ItemDef) {
	e.log.Info("shield flash", "shield", shield.Key)
}

type logHUD struct {
	log *slog.Logger
}

func (h logHUD) SetHealth(health int) {
	h.log.Info("health", "value", health)
}

type logHighlighter struct {
	log *slog.Logger
}

func (h logHighlighter) SetHighlighted(cat data.Category, key string, on bool) {
	h.log.Debug("highlight", "category", cat, "key", key, "on", on)
}

type logView struct {
	log *slog.Logger
}

func (v logView) SetVisible(visible bool) {
	v.log.Info("inventory window", "visible", visible)
}
