package model

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/roguecore/internal/anim"
	"github.com/udisondev/roguecore/internal/config"
	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/game/combat"
	"github.com/udisondev/roguecore/internal/game/equipment"
	"github.com/udisondev/roguecore/internal/game/movement"
	"github.com/udisondev/roguecore/internal/geom"
	"github.com/udisondev/roguecore/internal/scene"
)

// ErrInvalidHealth is returned when a player would spawn without health.
var ErrInvalidHealth = errors.New("starting health must be positive")

// HUD receives the displayed health.
type HUD interface {
	SetHealth(health int)
}

// Options are the per-actor tuning values.
type Options struct {
	Name     string
	Movement movement.Params

	Health             int
	AttackMaxDuration  float64
	HitInvulnerability float64
	SquashPeak         float64
	SquashDuration     float64
	HitClip            string
	ShieldHitClip      string
}

// NewOptions builds Options from controller config.
func NewOptions(name string, cfg config.Controller) Options {
	m := cfg.Movement
	c := cfg.Combat
	return Options{
		Name: name,
		Movement: movement.Params{
			BaseSpeed:    m.BaseSpeed,
			RunSpeed:     m.RunSpeed,
			DefendSpeed:  m.DefendSpeed,
			Acceleration: m.Acceleration,
			Deceleration: m.Deceleration,
			JumpSpeed:    m.JumpSpeed,
			Gravity:      m.Gravity,
			TurnSpeed:    m.TurnSpeed,
			FloorHeight:  m.FloorHeight,
		},
		Health:             c.Health,
		AttackMaxDuration:  c.AttackMaxDuration,
		HitInvulnerability: c.HitInvulnerability,
		SquashPeak:         c.SquashPeak,
		SquashDuration:     c.SquashDuration,
		HitClip:            c.HitClip,
		ShieldHitClip:      c.ShieldHitClip,
	}
}

// Deps are the collaborators of a Player. Every field is optional: without
// them the player still moves, fights and takes damage, only feedback is lost.
type Deps struct {
	Anim      anim.Layer
	Audio     combat.AudioPlayer
	Effects   combat.Effects
	HUD       HUD
	Equipment *equipment.Manager // live sockets
	Tree      *scene.Tree        // flushed at the end of every step
	Log       *slog.Logger
}

// Input is everything the player reads in one step.
type Input struct {
	Move   movement.Input
	Attack bool // edge
}

// StepReport describes one Step, for the loop and tests.
type StepReport struct {
	Move   movement.State
	Combat combat.StepResult
}

// Player is the controlled character. It owns health and the combat flags;
// other components go through its methods.
//
// Player is not safe for concurrent use. The simulation loop owns it and
// delivers every input and signal between steps.
type Player struct {
	name string

	body   movement.Body
	mover  *movement.Integrator
	stance *combat.Stance
	damage *combat.Resolver
	pulse  *combat.Pulse

	health int
	dead   bool

	anim      anim.Layer
	audio     combat.AudioPlayer
	hud       HUD
	equipment *equipment.Manager
	tree      *scene.Tree

	owned map[data.Category][]string

	onDeath func()
	log     *slog.Logger
}

// NewPlayer spawns a player on the floor. The HUD receives the starting health.
func NewPlayer(opts Options, deps Deps) (*Player, error) {
	if opts.Health <= 0 {
		return nil, fmt.Errorf("player %q: %w", opts.Name, ErrInvalidHealth)
	}

	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Name != "" {
		log = log.With("player", opts.Name)
	}

	p := &Player{
		name:      opts.Name,
		mover:     movement.New(opts.Movement),
		stance:    combat.NewStance(opts.AttackMaxDuration, log),
		pulse:     combat.NewPulse(opts.SquashPeak, opts.SquashDuration),
		health:    opts.Health,
		anim:      deps.Anim,
		audio:     deps.Audio,
		hud:       deps.HUD,
		equipment: deps.Equipment,
		tree:      deps.Tree,
		owned:     make(map[data.Category][]string),
		log:       log,
	}
	p.body.Position.Y = opts.Movement.FloorHeight
	p.body.Grounded = true

	rdeps := combat.ResolverDeps{
		Audio:         deps.Audio,
		Effects:       deps.Effects,
		Impact:        p.pulse,
		HitClip:       opts.HitClip,
		ShieldHitClip: opts.ShieldHitClip,
	}
	if deps.Equipment != nil {
		rdeps.Shields = deps.Equipment
	}
	p.damage = combat.NewResolver(p, opts.HitInvulnerability, rdeps, log)

	if p.anim == nil {
		log.Warn("no animation layer bound, attacks run on the timer only")
		p.anim = anim.Nop{}
	}
	if p.audio == nil {
		log.Warn("no audio player bound")
	}
	if p.hud == nil {
		log.Warn("no HUD bound")
	} else {
		p.hud.SetHealth(p.health)
	}
	if p.equipment == nil {
		log.Warn("no equipment sockets bound")
	}

	return p, nil
}

func (p *Player) Name() string { return p.name }

// Health returns the current health. It may be negative after a lethal hit.
func (p *Player) Health() int { return p.health }

// Dead reports the terminal state.
func (p *Player) Dead() bool { return p.dead }

// Attacking reports whether an attack is in flight.
func (p *Player) Attacking() bool { return p.stance.Attacking() }

// Defending is the flag sampled at the start of the current step. Implements
// combat.Target.
func (p *Player) Defending() bool { return p.stance.Defending() }

// Body returns a copy of the kinematic state.
func (p *Player) Body() movement.Body { return p.body }

// Stance exposes the combat state machine for inspection.
func (p *Player) Stance() *combat.Stance { return p.stance }

// Resolver exposes the damage resolver, e.g. to install a hit observer.
func (p *Player) Resolver() *combat.Resolver { return p.damage }

// SkinScale is the current squash-and-stretch scale of the visual skin.
func (p *Player) SkinScale() geom.Vec3 {
	x, y, z := p.pulse.Scale()
	return geom.Vec3{X: x, Y: y, Z: z}
}

// OnDeath installs a callback run once when health drops to zero.
func (p *Player) OnDeath(fn func()) {
	p.onDeath = fn
}

// Step advances the player by dt seconds.
//
// Order: defend sample, movement integration, combat evaluation, timers,
// position commit, then release of instances destroyed during the step.
func (p *Player) Step(in Input, dt float64) StepReport {
	var rep StepReport
	if p.dead {
		return rep
	}

	p.stance.SampleDefend(in.Move.Defend)

	mv := in.Move
	mv.Defend = p.stance.Defending()
	p.mover.Integrate(&p.body, mv, dt)
	rep.Move = p.mover.MoveState(&p.body)
	p.anim.Travel(rep.Move)

	active, known := p.anim.AttackActive()
	rep.Combat = p.stance.Step(combat.StepInput{
		AttackPressed: in.Attack,
		DefendHeld:    in.Move.Defend,
		Status:        combat.ActiveStatus{Active: active, Known: known},
	}, dt)
	p.applyCombat(rep.Combat)

	p.damage.Tick(dt)
	p.pulse.Advance(dt)
	p.mover.Commit(&p.body, dt)

	if p.tree != nil {
		p.tree.Flush()
	}
	return rep
}

func (p *Player) applyCombat(res combat.StepResult) {
	if res.Finished == combat.FinishTimeout {
		p.anim.RequestAttack(anim.AttackAbort, "")
	}
	if res.Started {
		weapon := p.weapon()
		clip := ""
		if weapon != nil {
			clip = weapon.Weapon.Animation
		}
		p.anim.RequestAttack(anim.AttackFire, clip)
		if weapon != nil && weapon.Audio != "" && p.audio != nil {
			p.audio.PlayOnce(weapon.Audio)
		}
	}

	blend := 0.0
	if res.Defending {
		blend = 1
	}
	p.anim.SetDefendBlend(blend)
}

func (p *Player) weapon() *data.ItemDef {
	if p.equipment == nil {
		return nil
	}
	def, ok := p.equipment.CurrentItem(data.CategoryWeapon)
	if !ok || def == nil || def.Weapon == nil {
		return nil
	}
	return def
}

// AnimationFinished queues an animation-finished notification for the next
// step.
func (p *Player) AnimationFinished(name string) {
	p.stance.NotifyAnimationFinished(name)
}

// Hit delivers an incoming hit. Hits on a dead player are ignored.
func (p *Player) Hit(src combat.Attacker) combat.HitResult {
	if p.dead {
		return combat.HitResult{Ignored: true}
	}
	return p.damage.Hit(src)
}

// TakeDamage subtracts amount and updates the HUD. Implements combat.Target.
func (p *Player) TakeDamage(amount int) int {
	p.health -= amount
	if p.hud != nil {
		p.hud.SetHealth(max(p.health, 0))
	}

	if p.health <= 0 && !p.dead {
		p.dead = true
		p.log.Info("player died", "health", p.health)
		if p.onDeath != nil {
			p.onDeath()
		}
	}
	return p.health
}

// Collect records a picked-up item as owned. Returns false when the item was
// already owned or is invalid.
func (p *Player) Collect(def *data.ItemDef) bool {
	if def == nil || def.Key == "" {
		return false
	}
	keys := p.owned[def.Category]
	if slices.Contains(keys, def.Key) {
		return false
	}
	p.owned[def.Category] = append(keys, def.Key)
	p.log.Debug("item collected", "category", def.Category, "key", def.Key)
	return true
}

// Owned returns the owned item keys of a category in pickup order.
func (p *Player) Owned(cat data.Category) []string {
	return slices.Clone(p.owned[cat])
}
