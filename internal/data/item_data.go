package data

import (
	"fmt"

	"github.com/udisondev/roguecore/internal/geom"
)

// Category is an equipment category. Each category maps to exactly one socket
// per actor.
type Category string

const (
	CategoryWeapon Category = "weapon"
	CategoryShield Category = "shield"
	CategoryStyle  Category = "style"
)

// Categories lists all categories in inventory tab order.
var Categories = []Category{CategoryWeapon, CategoryShield, CategoryStyle}

// ParseCategory converts a catalog string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWeapon, CategoryShield, CategoryStyle:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown item category %q", s)
	}
}

// WeaponDef holds weapon-only attributes.
type WeaponDef struct {
	Damage    float64 `yaml:"damage" validate:"gte=0"`
	Range     float64 `yaml:"range" validate:"gte=0"`
	Animation string  `yaml:"animation"` // attack clip played by the one-shot
}

// ShieldDef holds shield-only attributes.
type ShieldDef struct {
	// Defense multiplies incoming damage while defending. 1 = no mitigation.
	Defense float64 `yaml:"defense" validate:"gte=0,lte=1"`
}

// StyleDef holds cosmetic-only attributes. Styles have no gameplay stats.
type StyleDef struct{}

// Placement overrides the zeroed local transform of a spawned instance.
// Nil fields keep the identity value.
type Placement struct {
	Position *geom.Vec3 `yaml:"position,omitempty"`
	Rotation *geom.Vec3 `yaml:"rotation,omitempty"`
	Scale    *geom.Vec3 `yaml:"scale,omitempty"`
}

// ItemDef is an immutable catalog record. Exactly one of Weapon, Shield, Style
// is set and matches Category.
type ItemDef struct {
	Key       string   `yaml:"key" validate:"required"`
	Name      string   `yaml:"name"`
	Category  Category `yaml:"category" validate:"required,oneof=weapon shield style"`
	Prototype string   `yaml:"prototype" validate:"required"` // visual prototype reference
	Audio     string   `yaml:"audio,omitempty"`
	Thumbnail string   `yaml:"thumbnail,omitempty"`

	Placement *Placement `yaml:"placement,omitempty"`

	Weapon *WeaponDef `yaml:"weapon,omitempty"`
	Shield *ShieldDef `yaml:"shield,omitempty"`
	Style  *StyleDef  `yaml:"style,omitempty"`
}

// Damage returns weapon damage, or 0 for non-weapons.
func (d *ItemDef) Damage() float64 {
	if d == nil || d.Weapon == nil {
		return 0
	}
	return d.Weapon.Damage
}

// Defense returns the shield defense multiplier. ok is false for non-shields.
func (d *ItemDef) Defense() (mult float64, ok bool) {
	if d == nil || d.Shield == nil {
		return 0, false
	}
	return d.Shield.Defense, true
}

// checkVariant verifies that the variant payload matches the category.
func (d *ItemDef) checkVariant() error {
	set := 0
	for _, present := range []bool{d.Weapon != nil, d.Shield != nil, d.Style != nil} {
		if present {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("item %q: more than one variant set", d.Key)
	}

	switch d.Category {
	case CategoryWeapon:
		if d.Weapon == nil {
			return fmt.Errorf("item %q: weapon category without weapon attributes", d.Key)
		}
	case CategoryShield:
		if d.Shield == nil {
			return fmt.Errorf("item %q: shield category without shield attributes", d.Key)
		}
	case CategoryStyle:
		if d.Style == nil {
			d.Style = &StyleDef{}
		}
	}
	return nil
}

func vec(x, y, z float64) *geom.Vec3 { return &geom.Vec3{X: x, Y: y, Z: z} }

// itemDefs is the built-in catalog, in inventory display order.
var itemDefs = []ItemDef{
	// Weapons
	{Key: "dagger", Name: "Dagger", Category: CategoryWeapon, Prototype: "scenes/weapons/dagger", Audio: "audio/dagger_sound.wav", Thumbnail: "thumbnails/dagger.png",
		Weapon: &WeaponDef{Damage: 1, Range: 1.2, Animation: "1H_Melee_Attack_Stab"}},
	{Key: "sword", Name: "Sword", Category: CategoryWeapon, Prototype: "scenes/weapons/sword", Audio: "audio/sword_sound.wav", Thumbnail: "thumbnails/sword.png",
		Weapon: &WeaponDef{Damage: 2, Range: 1.5, Animation: "1H_Melee_Attack_Slice_Horizontal"}},
	{Key: "axe", Name: "Axe", Category: CategoryWeapon, Prototype: "scenes/weapons/axe", Audio: "audio/axe_sound.wav", Thumbnail: "thumbnails/axe.png",
		Weapon: &WeaponDef{Damage: 3, Range: 1.3, Animation: "2H_Melee_Attack_Spin"}},
	{Key: "staff", Name: "Staff", Category: CategoryWeapon, Prototype: "scenes/weapons/staff", Audio: "audio/staff_sound.wav", Thumbnail: "thumbnails/staff.png",
		Weapon: &WeaponDef{Damage: 1, Range: 2.1, Animation: "2H_Melee_Attack_Slice"}},

	// Shields
	{Key: "square", Name: "Square Shield", Category: CategoryShield, Prototype: "scenes/shields/square_shield", Thumbnail: "thumbnails/square.png",
		Shield: &ShieldDef{Defense: 0.8}},
	{Key: "round", Name: "Round Shield", Category: CategoryShield, Prototype: "scenes/shields/round_shield", Thumbnail: "thumbnails/round.png",
		Shield: &ShieldDef{Defense: 0.9}},
	{Key: "spike", Name: "Spike Shield", Category: CategoryShield, Prototype: "scenes/shields/spike_shield", Thumbnail: "thumbnails/spike.png",
		Shield: &ShieldDef{Defense: 0.6}},

	// Style
	{Key: "sunglasses", Name: "Sunglasses", Category: CategoryStyle, Prototype: "scenes/style/sunglasses", Thumbnail: "thumbnails/sun_glasses.png",
		Style: &StyleDef{}, Placement: &Placement{Position: vec(0, 0.05, 0.12)}},
	{Key: "starglasses", Name: "Star Glasses", Category: CategoryStyle, Prototype: "scenes/style/starglasses", Thumbnail: "thumbnails/star_glasses.png",
		Style: &StyleDef{}, Placement: &Placement{Position: vec(0, 0.05, 0.12)}},
	{Key: "duckhat", Name: "Duck Hat", Category: CategoryStyle, Prototype: "scenes/style/duck_hat", Thumbnail: "thumbnails/duck.png",
		Style: &StyleDef{}},
	{Key: "tophat", Name: "Top Hat", Category: CategoryStyle, Prototype: "scenes/style/tophat", Thumbnail: "thumbnails/top_hat.png",
		Style: &StyleDef{}, Placement: &Placement{Scale: vec(1.1, 1.1, 1.1)}},
}
