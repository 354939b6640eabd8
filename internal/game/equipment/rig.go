package equipment

import (
	"fmt"

	"github.com/udisondev/roguecore/internal/data"
	"github.com/udisondev/roguecore/internal/scene"
)

// SkeletonName is the node holding the bones of a character rig.
const SkeletonName = "Skeleton3D"

// NewRig builds a character skeleton under parent:
//
//	<name>/Skeleton3D/{RightHand, LeftHand, Head/HatOffset}
//
// Returns the skeleton handle, ready for Discover.
func NewRig(tree *scene.Tree, parent scene.Handle, name string) (scene.Handle, error) {
	body, err := tree.NewNode(parent, name)
	if err != nil {
		return scene.Handle{}, fmt.Errorf("rig %s: %w", name, err)
	}
	skel, err := tree.NewNode(body, SkeletonName)
	if err != nil {
		return scene.Handle{}, fmt.Errorf("rig %s: %w", name, err)
	}

	for _, bone := range []string{BoneRightHand, BoneLeftHand, BoneHead} {
		if _, err := tree.NewNode(skel, bone); err != nil {
			return scene.Handle{}, fmt.Errorf("rig %s bone %s: %w", name, bone, err)
		}
	}
	head, _ := tree.Child(skel, BoneHead)
	if _, err := tree.NewNode(head, BoneHatOffset); err != nil {
		return scene.Handle{}, fmt.Errorf("rig %s bone %s: %w", name, BoneHatOffset, err)
	}
	return skel, nil
}

// CatalogLibrary registers a placeholder visual for every catalog item under
// its prototype reference: a root named after the item with a single mesh.
func CatalogLibrary(cat *data.Catalog) *scene.Library {
	lib := scene.NewLibrary()
	for _, c := range data.Categories {
		for _, def := range cat.Items(c) {
			lib.Register(def.Prototype, scene.Prototype{
				Name:     def.Key,
				Children: []scene.Prototype{{Name: "Mesh"}},
			})
		}
	}
	return lib
}
