package equipment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/scene"
)

var (
	ErrNoSocket         = errors.New("socket not bound")
	ErrNilItem          = errors.New("item definition is nil")
	ErrCategoryMismatch = errors.New("item category does not match socket")
	ErrNoPrototype      = errors.New("item has no visual prototype")
)

// Instantiator spawns visual prototypes into a tree.
type Instantiator interface {
	Instantiate(t *scene.Tree, ref string) (scene.Handle, error)
}

// Instance is the equipped occupant of a socket.
type Instance struct {
	Node scene.Handle
	Item *data.ItemDef
}

// Manager owns attach/detach for every socket of one actor context.
// No other component mutates socket children.
//
// Manager runs on the simulation step and is not safe for concurrent use.
type Manager struct {
	ctx     Context
	tree    *scene.Tree
	spawner Instantiator
	sockets map[data.Category]*Socket
	current map[data.Category]Instance
	log     *slog.Logger
}

// NewManager binds the given sockets. Scene-authored placeholder children of
// each socket are cleared so the manager starts from empty sockets.
func NewManager(ctx Context, tree *scene.Tree, spawner Instantiator, sockets map[data.Category]*Socket, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		ctx:     ctx,
		tree:    tree,
		spawner: spawner,
		sockets: make(map[data.Category]*Socket, len(sockets)),
		current: make(map[data.Category]Instance, len(sockets)),
		log:     log.With("context", string(ctx)),
	}

	for cat, s := range sockets {
		if s == nil || !tree.Alive(s.Node) {
			m.log.Warn("socket unavailable", "category", cat)
			continue
		}
		m.sockets[cat] = s
		m.clearStrays(s)
	}

	for _, cat := range data.Categories {
		if _, ok := m.sockets[cat]; !ok {
			m.log.Warn("category cannot be equipped, no socket", "category", cat)
		}
	}

	return m
}

// Context returns the manager's actor context.
func (m *Manager) Context() Context { return m.ctx }

// Socket returns the socket bound for cat.
func (m *Manager) Socket(cat data.Category) (*Socket, bool) {
	s, ok := m.sockets[cat]
	return s, ok
}

// Equip replaces the occupant of cat's socket with a fresh instance of item,
// spawned from the item's own prototype.
func (m *Manager) Equip(cat data.Category, item *data.ItemDef) error {
	if item == nil {
		return m.EquipScene(cat, item, "")
	}
	return m.EquipScene(cat, item, item.Prototype)
}

// EquipScene replaces the occupant of cat's socket with an instance of
// prototype, recorded as item.
//
// The previous instance is detached and queued for deletion before the new one
// is attached, so the socket never holds two instances. If instantiation
// fails the socket is left empty. Invalid requests (no socket, nil item) are
// no-ops reported through the returned error and a warning.
func (m *Manager) EquipScene(cat data.Category, item *data.ItemDef, prototype string) error {
	s, ok := m.sockets[cat]
	if !ok {
		m.log.Warn("equip skipped", "category", cat, "reason", ErrNoSocket)
		return fmt.Errorf("equip %s: %w", cat, ErrNoSocket)
	}
	if item == nil {
		m.log.Warn("equip skipped", "category", cat, "reason", ErrNilItem)
		return fmt.Errorf("equip %s: %w", cat, ErrNilItem)
	}
	if item.Category != cat {
		m.log.Warn("equip skipped", "category", cat, "item", item.Key, "item_category", item.Category)
		return fmt.Errorf("equip %s with %s/%s: %w", cat, item.Category, item.Key, ErrCategoryMismatch)
	}
	if prototype == "" {
		m.log.Warn("equip skipped", "category", cat, "item", item.Key, "reason", ErrNoPrototype)
		return fmt.Errorf("equip %s/%s: %w", cat, item.Key, ErrNoPrototype)
	}

	m.release(cat)
	m.clearStrays(s)

	h, err := m.spawner.Instantiate(m.tree, prototype)
	if err != nil {
		m.log.Warn("equip instantiation failed", "category", cat, "item", item.Key, "prototype", prototype, "error", err)
		return fmt.Errorf("equip %s/%s: %w", cat, item.Key, err)
	}
	if err := m.tree.SetLocal(h, placed(item.Placement)); err != nil {
		m.tree.QueueFree(h)
		return fmt.Errorf("equip %s/%s: place: %w", cat, item.Key, err)
	}
	if err := m.tree.Attach(h, s.Node); err != nil {
		m.tree.QueueFree(h)
		return fmt.Errorf("equip %s/%s: attach: %w", cat, item.Key, err)
	}

	m.current[cat] = Instance{Node: h, Item: item}
	m.log.Debug("equipped", "category", cat, "item", item.Key, "prototype", prototype, "socket", s.Name, "node", h)
	return nil
}

// Unequip removes cat's occupant. Idempotent.
func (m *Manager) Unequip(cat data.Category) {
	if m.release(cat) {
		m.log.Debug("unequipped", "category", cat)
	}
}

// Current returns cat's live occupant. An occupant whose node is no longer
// alive is dropped and reported as empty.
func (m *Manager) Current(cat data.Category) (Instance, bool) {
	inst, ok := m.current[cat]
	if !ok {
		return Instance{}, false
	}
	if !m.tree.Alive(inst.Node) {
		delete(m.current, cat)
		return Instance{}, false
	}
	return inst, true
}

// CurrentItem returns the definition of cat's live occupant.
func (m *Manager) CurrentItem(cat data.Category) (*data.ItemDef, bool) {
	inst, ok := m.Current(cat)
	if !ok {
		return nil, false
	}
	return inst.Item, true
}

// Occupants returns the number of nodes attached to cat's socket.
func (m *Manager) Occupants(cat data.Category) int {
	s, ok := m.sockets[cat]
	if !ok {
		return 0
	}
	return m.tree.ChildCount(s.Node)
}

// release queues the tracked instance for deletion and forgets it.
func (m *Manager) release(cat data.Category) bool {
	inst, ok := m.current[cat]
	if !ok {
		return false
	}
	delete(m.current, cat)
	m.tree.QueueFree(inst.Node)
	return true
}

// clearStrays queues every child of s. Called after the tracked instance is
// released, so anything still attached was placed there externally.
func (m *Manager) clearStrays(s *Socket) {
	for _, ch := range m.tree.Children(s.Node) {
		m.log.Debug("clearing stray socket child", "socket", s.Name, "child", m.tree.Name(ch))
		m.tree.QueueFree(ch)
	}
}

// placed returns the zeroed transform with item overrides applied.
func placed(p *data.Placement) scene.Transform {
	tr := scene.Identity
	if p == nil {
		return tr
	}
	if p.Position != nil {
		tr.Position = *p.Position
	}
	if p.Rotation != nil {
		tr.Rotation = *p.Rotation
	}
	if p.Scale != nil {
		tr.Scale = *p.Scale
	}
	return tr
}
