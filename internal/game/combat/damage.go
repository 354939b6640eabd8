package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/roguecore/internal/data"
)

// DefaultHitInvulnerability is the post-hit window during which hits are ignored.
const DefaultHitInvulnerability = 0.35

// DefaultDamage is applied when the attacker exposes no damage attribute.
const DefaultDamage = 1.0

// Attacker is the source of an incoming hit. Damage reports ok=false when the
// source has no damage attribute.
type Attacker interface {
	Name() string
	Damage() (amount float64, ok bool)
}

// Target is the actor receiving hits. Health and combat flags stay owned by
// the target; the resolver only calls through this interface.
type Target interface {
	Defending() bool
	TakeDamage(amount int) (remaining int)
}

// ShieldLookup resolves the currently equipped shield.
type ShieldLookup interface {
	CurrentItem(cat data.Category) (*data.ItemDef, bool)
}

// AudioPlayer plays fire-and-forget cues.
type AudioPlayer interface {
	PlayOnce(clip string)
}

// Effects receives visual feedback requests.
type Effects interface {
	ShieldFlash(shield *data.ItemDef)
}

// HitResult describes one call to Hit, for observers and tests.
type HitResult struct {
	Attacker  string
	Ignored   bool // invulnerability window still running
	Mitigated bool // shield path taken
	Base      float64
	Effective float64
	Applied   int
	Remaining int
}

// ResolverDeps are the optional collaborators of a Resolver. Any of them may be
// nil; gameplay stays correct and only feedback is lost.
type ResolverDeps struct {
	Shields       ShieldLookup
	Audio         AudioPlayer
	Effects       Effects
	Impact        *Pulse
	HitClip       string
	ShieldHitClip string
}

// Resolver applies incoming damage to one target.
type Resolver struct {
	target Target
	deps   ResolverDeps

	window float64
	left   float64 // invulnerability remaining

	hitObserver func(HitResult)
	log         *slog.Logger
}

// NewResolver creates a resolver with an already-elapsed invulnerability
// window. window <= 0 selects the default.
func NewResolver(target Target, window float64, deps ResolverDeps, log *slog.Logger) *Resolver {
	if window <= 0 {
		window = DefaultHitInvulnerability
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{target: target, deps: deps, window: window, log: log}
}

// SetHitObserver installs a callback receiving every HitResult.
func (r *Resolver) SetHitObserver(fn func(HitResult)) {
	r.hitObserver = fn
}

// Invulnerable reports whether the post-hit window is still running.
func (r *Resolver) Invulnerable() bool { return r.left > 0 }

// InvulnerabilityLeft returns the remaining window in seconds.
func (r *Resolver) InvulnerabilityLeft() float64 { return r.left }

// Tick counts the invulnerability window down.
func (r *Resolver) Tick(dt float64) {
	if r.left > 0 {
		r.left = math.Max(0, r.left-dt)
	}
}

// Hit resolves one incoming hit. A nil attacker deals DefaultDamage.
//
// While defending with a shield equipped the damage is multiplied by the
// shield's defense; otherwise the impact pulse plays. The target loses
// ceil(effective) health and the window restarts, even when fully mitigated.
func (r *Resolver) Hit(src Attacker) HitResult {
	res := HitResult{Attacker: "unknown"}
	if src != nil {
		res.Attacker = src.Name()
	}

	if r.Invulnerable() {
		res.Ignored = true
		r.observe(res)
		return res
	}

	res.Base = DefaultDamage
	if src != nil {
		if dmg, ok := src.Damage(); ok {
			res.Base = dmg
		}
	}
	res.Effective = res.Base

	shield, hasShield := r.currentShield()
	if r.target.Defending() && hasShield {
		mult, _ := shield.Defense()
		res.Effective = res.Base * mult
		res.Mitigated = true
		if r.deps.Effects != nil {
			r.deps.Effects.ShieldFlash(shield)
		}
		r.play(r.deps.ShieldHitClip)
	} else {
		if r.deps.Impact != nil {
			r.deps.Impact.Start()
		}
		r.play(r.deps.HitClip)
	}

	res.Applied = ceilDamage(res.Effective)
	res.Remaining = r.target.TakeDamage(res.Applied)
	r.left = r.window

	r.log.Info("player hit",
		"from", res.Attacker,
		"damage", res.Applied,
		"mitigated", res.Mitigated,
		"health", res.Remaining)

	r.observe(res)
	return res
}

// ceilDamage rounds up, ignoring float noise that lands a product a hair above
// an integer.
func ceilDamage(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

func (r *Resolver) currentShield() (*data.ItemDef, bool) {
	if r.deps.Shields == nil {
		return nil, false
	}
	def, ok := r.deps.Shields.CurrentItem(data.CategoryShield)
	if !ok || def == nil {
		return nil, false
	}
	if _, isShield := def.Defense(); !isShield {
		return nil, false
	}
	return def, true
}

func (r *Resolver) play(clip string) {
	if r.deps.Audio == nil || clip == "" {
		return
	}
	r.deps.Audio.PlayOnce(clip)
}

func (r *Resolver) observe(res HitResult) {
	if r.hitObserver != nil {
		r.hitObserver(res)
	}
}

// Source is a plain Attacker.
type Source struct {
	ID     string
	Amount float64
	Has    bool
}

func (s Source) Name() string            { return s.ID }
func (s Source) Damage() (float64, bool) { return s.Amount, s.Has }

// WeaponAttacker adapts a weapon definition into an Attacker.
type WeaponAttacker struct {
	Def *data.ItemDef
}

func (w WeaponAttacker) Name() string {
	if w.Def == nil {
		return "unknown"
	}
	return w.Def.Key
}

func (w WeaponAttacker) Damage() (float64, bool) {
	if w.Def == nil || w.Def.Weapon == nil {
		return 0, false
	}
	return w.Def.Weapon.Damage, true
}
