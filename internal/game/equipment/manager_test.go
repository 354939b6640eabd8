package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/geom"
	"github.com/udisondev/roguecore/internal/scene"
)

// rig builds Player/Body/Skeleton3D/{RightHand,LeftHand,Head/HatOffset}.
func rig(t *testing.T) (*scene.Tree, scene.Handle) {
	t.Helper()
	tree := scene.NewTree("Player")
	skel, err := NewRig(tree, tree.Root(), "Body")
	require.NoError(t, err)
	return tree, skel
}

func newTestManager(t *testing.T) (*Manager, *scene.Tree, *data.Catalog) {
	t.Helper()
	tree, skel := rig(t)
	cat := data.DefaultCatalog()
	sockets := Discover(tree, skel, ContextLive, nil, nil)
	return NewManager(ContextLive, tree, CatalogLibrary(cat), sockets, nil), tree, cat
}

func item(t *testing.T, cat *data.Catalog, c data.Category, key string) *data.ItemDef {
	t.Helper()
	def, ok := cat.GetItem(c, key)
	require.True(t, ok, "%s/%s", c, key)
	return def
}

func TestDiscover_CreatesSlotsOnce(t *testing.T) {
	tree, skel := rig(t)

	sockets := Discover(tree, skel, ContextLive, nil, nil)
	require.Len(t, sockets, 3)
	assert.Equal(t, SlotWeapon, sockets[data.CategoryWeapon].Name)
	assert.Equal(t, SlotShield, sockets[data.CategoryShield].Name)
	assert.Equal(t, BoneHatOffset, sockets[data.CategoryStyle].Name, "HatOffset preferred over Head")

	again := Discover(tree, skel, ContextLive, nil, nil)
	assert.Equal(t, sockets[data.CategoryWeapon].Node, again[data.CategoryWeapon].Node, "existing slot reused")

	hand, _ := tree.Find(skel, BoneRightHand)
	assert.Equal(t, 1, tree.ChildCount(hand))
}

func TestDiscover_MissingBonesDegrade(t *testing.T) {
	tree := scene.NewTree("Preview")
	skel, _ := tree.NewNode(tree.Root(), "Skeleton3D")
	head, _ := tree.NewNode(skel, BoneHead)

	sockets := Discover(tree, skel, ContextPreview, nil, nil)
	require.Len(t, sockets, 1)
	assert.Equal(t, head, sockets[data.CategoryStyle].Node, "falls back to Head")

	sockets = Discover(tree, scene.Handle{}, ContextPreview, nil, nil)
	assert.Empty(t, sockets)
}

func TestDiscover_OverrideWins(t *testing.T) {
	tree, skel := rig(t)
	custom, _ := tree.NewNode(tree.Root(), "BackSheath")

	sockets := Discover(tree, skel, ContextLive, map[data.Category]scene.Handle{data.CategoryWeapon: custom}, nil)
	assert.Equal(t, custom, sockets[data.CategoryWeapon].Node)
}

func TestManager_ReequipLeavesOneInstance(t *testing.T) {
	m, tree, cat := newTestManager(t)

	require.NoError(t, m.Equip(data.CategoryWeapon, item(t, cat, data.CategoryWeapon, "dagger")))
	first, ok := m.Current(data.CategoryWeapon)
	require.True(t, ok)

	require.NoError(t, m.Equip(data.CategoryWeapon, item(t, cat, data.CategoryWeapon, "axe")))

	// Same step, before Flush: exactly one child and it is the axe.
	assert.Equal(t, 1, m.Occupants(data.CategoryWeapon))
	assert.False(t, tree.Alive(first.Node), "previous instance is stale immediately")

	cur, ok := m.Current(data.CategoryWeapon)
	require.True(t, ok)
	assert.Equal(t, "axe", cur.Item.Key)
	assert.Equal(t, "axe", tree.Name(cur.Node))

	tree.Flush()
	assert.Equal(t, 1, m.Occupants(data.CategoryWeapon))
	assert.True(t, tree.Alive(cur.Node))
}

func TestManager_RapidReequip(t *testing.T) {
	m, tree, cat := newTestManager(t)
	keys := []string{"dagger", "sword", "axe", "staff", "sword"}

	for _, k := range keys {
		require.NoError(t, m.Equip(data.CategoryWeapon, item(t, cat, data.CategoryWeapon, k)))
		assert.Equal(t, 1, m.Occupants(data.CategoryWeapon))
	}
	tree.Flush()

	cur, ok := m.CurrentItem(data.CategoryWeapon)
	require.True(t, ok)
	assert.Equal(t, "sword", cur.Key)
}

func TestManager_ClearsStrayChildren(t *testing.T) {
	tree, skel := rig(t)
	sockets := Discover(tree, skel, ContextLive, nil, nil)
	shieldSlot := sockets[data.CategoryShield].Node

	// Scene-authored placeholder, present before the manager exists.
	_, err := tree.NewNode(shieldSlot, "RoundShieldPlaceholder")
	require.NoError(t, err)

	cat := data.DefaultCatalog()
	m := NewManager(ContextLive, tree, CatalogLibrary(cat), sockets, nil)
	assert.Equal(t, 0, m.Occupants(data.CategoryShield))

	// Stray added behind the manager's back is cleared on the next equip.
	_, err = tree.NewNode(shieldSlot, "Stray")
	require.NoError(t, err)
	require.NoError(t, m.Equip(data.CategoryShield, item(t, cat, data.CategoryShield, "round")))
	assert.Equal(t, 1, m.Occupants(data.CategoryShield))
	kids := tree.Children(shieldSlot)
	assert.Equal(t, "round", tree.Name(kids[0]))
}

func TestManager_AppliesPlacement(t *testing.T) {
	m, tree, cat := newTestManager(t)

	require.NoError(t, m.Equip(data.CategoryStyle, item(t, cat, data.CategoryStyle, "tophat")))
	cur, _ := m.Current(data.CategoryStyle)
	local, err := tree.Local(cur.Node)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 1.1, Y: 1.1, Z: 1.1}, local.Scale)
	assert.Equal(t, geom.Vec3{}, local.Position)

	require.NoError(t, m.Equip(data.CategoryStyle, item(t, cat, data.CategoryStyle, "duckhat")))
	cur, _ = m.Current(data.CategoryStyle)
	local, _ = tree.Local(cur.Node)
	assert.Equal(t, scene.Identity, local, "no placement means zeroed transform")
}

func TestManager_InvalidRequests(t *testing.T) {
	m, _, cat := newTestManager(t)
	dagger := item(t, cat, data.CategoryWeapon, "dagger")

	tests := []struct {
		name string
		cat  data.Category
		item *data.ItemDef
		want error
	}{
		{"nil item", data.CategoryWeapon, nil, ErrNilItem},
		{"wrong category", data.CategoryShield, dagger, ErrCategoryMismatch},
		{"unbound socket", data.Category("boots"), dagger, ErrNoSocket},
		{"no prototype", data.CategoryWeapon, &data.ItemDef{Key: "ghost", Category: data.CategoryWeapon}, ErrNoPrototype},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, m.Equip(tt.cat, tt.item), tt.want)
		})
	}

	// Prior state is untouched by rejected requests.
	require.NoError(t, m.Equip(data.CategoryWeapon, dagger))
	assert.Error(t, m.Equip(data.CategoryWeapon, nil))
	cur, ok := m.CurrentItem(data.CategoryWeapon)
	require.True(t, ok)
	assert.Equal(t, "dagger", cur.Key)
}

func TestManager_InstantiationFailureLeavesEmpty(t *testing.T) {
	m, _, cat := newTestManager(t)
	require.NoError(t, m.Equip(data.CategoryWeapon, item(t, cat, data.CategoryWeapon, "dagger")))

	broken := &data.ItemDef{Key: "broken", Category: data.CategoryWeapon, Prototype: "scenes/missing", Weapon: &data.WeaponDef{Damage: 9}}
	err := m.Equip(data.CategoryWeapon, broken)
	assert.ErrorIs(t, err, scene.ErrUnknownPrototype)

	assert.Equal(t, 0, m.Occupants(data.CategoryWeapon))
	_, ok := m.Current(data.CategoryWeapon)
	assert.False(t, ok)
}

func TestManager_UnequipIdempotent(t *testing.T) {
	m, tree, cat := newTestManager(t)
	require.NoError(t, m.Equip(data.CategoryShield, item(t, cat, data.CategoryShield, "spike")))

	m.Unequip(data.CategoryShield)
	m.Unequip(data.CategoryShield)
	tree.Flush()

	assert.Equal(t, 0, m.Occupants(data.CategoryShield))
	_, ok := m.Current(data.CategoryShield)
	assert.False(t, ok)
}

func TestManager_CurrentChecksLiveness(t *testing.T) {
	m, tree, cat := newTestManager(t)
	require.NoError(t, m.Equip(data.CategoryShield, item(t, cat, data.CategoryShield, "square")))
	cur, _ := m.Current(data.CategoryShield)

	// Freed by someone else: the manager must not hand out the stale node.
	tree.QueueFree(cur.Node)
	tree.Flush()

	_, ok := m.Current(data.CategoryShield)
	assert.False(t, ok)
}

func TestManager_EquipSceneUsesGivenPrototype(t *testing.T) {
	m, tree, cat := newTestManager(t)
	dagger := item(t, cat, data.CategoryWeapon, "dagger")
	staff := item(t, cat, data.CategoryWeapon, "staff")

	require.NoError(t, m.EquipScene(data.CategoryWeapon, dagger, staff.Prototype))

	inst, ok := m.Current(data.CategoryWeapon)
	require.True(t, ok)
	assert.Equal(t, staff.Prototype, tree.Prototype(inst.Node))
	assert.Equal(t, "dagger", inst.Item.Key)

	assert.ErrorIs(t, m.EquipScene(data.CategoryWeapon, dagger, ""), ErrNoPrototype)
}

// staleSpawner hands out a node that was already released.
type staleSpawner struct{ h scene.Handle }

func (s staleSpawner) Instantiate(*scene.Tree, string) (scene.Handle, error) { return s.h, nil }

func TestManager_FailedPlacementLeavesNoChild(t *testing.T) {
	tree, skel := rig(t)
	cat := data.DefaultCatalog()
	gone, err := tree.NewNode(scene.Handle{}, "Gone")
	require.NoError(t, err)
	tree.QueueFree(gone)
	tree.Flush()

	m := NewManager(ContextLive, tree, staleSpawner{h: gone}, Discover(tree, skel, ContextLive, nil, nil), nil)

	err = m.Equip(data.CategoryShield, item(t, cat, data.CategoryShield, "round"))
	require.Error(t, err)
	tree.Flush()

	assert.Equal(t, 0, m.Occupants(data.CategoryShield))
	_, ok := m.Current(data.CategoryShield)
	assert.False(t, ok)
}
