package equipment

import (
	"log/slog"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/scene"
)

// Context tells which actor a socket belongs to.
type Context string

const (
	ContextLive    Context = "live"    // the playable 3D character
	ContextPreview Context = "preview" // the inventory preview actor
)

// Socket is a named attachment point for one category in one context.
type Socket struct {
	Name     string
	Category data.Category
	Context  Context
	Node     scene.Handle
}

// Bone and slot names used by socket discovery.
const (
	BoneRightHand = "RightHand"
	BoneLeftHand  = "LeftHand"
	BoneHatOffset = "HatOffset"
	BoneHead      = "Head"

	SlotWeapon = "WeaponSlot"
	SlotShield = "ShieldSlot"
)

// Discover locates one socket per category under skeleton by naming convention:
//   - weapon: RightHand/WeaponSlot
//   - shield: LeftHand/ShieldSlot
//   - style:  HatOffset, falling back to Head
//
// A missing WeaponSlot/ShieldSlot is created under its hand bone. A missing
// bone is logged and that category is left out of the result; it simply cannot
// be equipped. Explicit overrides win over discovery.
func Discover(tree *scene.Tree, skeleton scene.Handle, ctx Context, overrides map[data.Category]scene.Handle, log *slog.Logger) map[data.Category]*Socket {
	if log == nil {
		log = slog.Default()
	}
	sockets := make(map[data.Category]*Socket, len(data.Categories))

	for cat, h := range overrides {
		if !tree.Alive(h) {
			log.Warn("socket override is not a live node", "category", cat, "context", ctx, "node", h)
			continue
		}
		sockets[cat] = &Socket{Name: tree.Name(h), Category: cat, Context: ctx, Node: h}
	}

	if !tree.Alive(skeleton) {
		log.Warn("skeleton not found, socket discovery skipped", "context", ctx)
		return sockets
	}

	if _, ok := sockets[data.CategoryWeapon]; !ok {
		if s := handSlot(tree, skeleton, BoneRightHand, SlotWeapon, log); !s.IsZero() {
			sockets[data.CategoryWeapon] = &Socket{Name: SlotWeapon, Category: data.CategoryWeapon, Context: ctx, Node: s}
		} else {
			log.Warn("weapon socket not found", "bone", BoneRightHand, "context", ctx)
		}
	}

	if _, ok := sockets[data.CategoryShield]; !ok {
		if s := handSlot(tree, skeleton, BoneLeftHand, SlotShield, log); !s.IsZero() {
			sockets[data.CategoryShield] = &Socket{Name: SlotShield, Category: data.CategoryShield, Context: ctx, Node: s}
		} else {
			log.Warn("shield socket not found", "bone", BoneLeftHand, "context", ctx)
		}
	}

	if _, ok := sockets[data.CategoryStyle]; !ok {
		head, found := tree.Find(skeleton, BoneHatOffset)
		if !found {
			head, found = tree.Find(skeleton, BoneHead)
		}
		if found {
			sockets[data.CategoryStyle] = &Socket{Name: tree.Name(head), Category: data.CategoryStyle, Context: ctx, Node: head}
		} else {
			log.Warn("style socket not found, style changes will not show", "context", ctx)
		}
	}

	return sockets
}

// handSlot returns bone/slot, creating slot under bone if needed.
func handSlot(tree *scene.Tree, skeleton scene.Handle, bone, slot string, log *slog.Logger) scene.Handle {
	hand, ok := tree.Find(skeleton, bone)
	if !ok {
		return scene.Handle{}
	}
	if h, ok := tree.Child(hand, slot); ok {
		return h
	}

	h, err := tree.NewNode(hand, slot)
	if err != nil {
		log.Warn("creating socket slot failed", "bone", bone, "slot", slot, "error", err)
		return scene.Handle{}
	}
	log.Debug("created socket slot", "bone", bone, "slot", slot)
	return h
}
