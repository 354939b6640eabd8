package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/combat"
	"github.com/udisondev/roguecore/internal/game/movement"
	"github.com/udisondev/roguecore/internal/geom"
	"github.com/udisondev/roguecore/internal/model"
	"github.com/udisondev/roguecore/internal/sim"
)

// cue is one scripted event, At after the start of the replay.
type cue struct {
	At    time.Duration
	Event sim.Event
}

func move(dir geom.Vec2, run, defend bool) sim.InputEvent {
	return sim.InputEvent{Input: model.Input{Move: movement.Input{Direction: dir, Run: run, Defend: defend}}}
}

// demoScript walks, attacks, blocks a hit, swaps weapons in the inventory and
// finally dies.
func demoScript(catalog *data.Catalog) []cue {
	forward := geom.Vec2{Y: -1}
	enemy := combat.Source{ID: "skeleton_minion", Amount: 2, Has: true}
	if sword, ok := catalog.GetItem(data.CategoryWeapon, "sword"); ok {
		enemy = combat.Source{ID: "skeleton_warrior", Amount: sword.Damage(), Has: true}
	}

	return []cue{
		{100 * time.Millisecond, move(forward, true, false)},
		{400 * time.Millisecond, sim.InputEvent{Input: model.Input{Attack: true, Move: movement.Input{Direction: forward, Run: true}}}},
		{700 * time.Millisecond, sim.AnimationFinishedEvent{Name: "1H_Melee_Attack_Stab"}},
		{900 * time.Millisecond, move(forward, false, true)},
		{1000 * time.Millisecond, sim.HitEvent{From: enemy}},
		{1300 * time.Millisecond, move(geom.Zero2, false, false)},
		{1400 * time.Millisecond, sim.ToggleInventoryEvent{}},
		{1500 * time.Millisecond, sim.SelectEvent{Category: data.CategoryWeapon, Key: "sword"}},
		{1600 * time.Millisecond, sim.SelectEvent{Category: data.CategoryStyle, Key: "tophat"}},
		{1700 * time.Millisecond, sim.ToggleInventoryEvent{}},
		{1800 * time.Millisecond, sim.InputEvent{Input: model.Input{Attack: true, Move: movement.Input{Jump: true}}}},
		{2200 * time.Millisecond, sim.HitEvent{From: enemy}},
		{2700 * time.Millisecond, sim.HitEvent{}},
		{4000 * time.Millisecond, sim.QuitEvent{}},
	}
}

// replay sends each cue at its offset. Returns when the script is exhausted or
// ctx is canceled.
func replay(ctx context.Context, loop *sim.Loop, script []cue) error {
	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for _, c := range script {
		timer.Reset(time.Until(start.Add(c.At)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if err := loop.Send(ctx, c.Event); err != nil {
			return err
		}
		slog.Debug("cue sent", "at", c.At, "event", c.Event)
	}
	return nil
}
