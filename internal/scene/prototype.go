package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownPrototype is returned when instantiating an unregistered reference.
var ErrUnknownPrototype = errors.New("unknown prototype")

// Prototype is an instantiable node template.
type Prototype struct {
	Name     string
	Local    Transform
	Children []Prototype
}

// Library resolves prototype references into templates.
type Library struct {
	protos map[string]Prototype
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{protos: make(map[string]Prototype)}
}

// Register adds or replaces a prototype under ref. A zero Scale in the
// prototype's transforms is normalized to identity scale.
func (l *Library) Register(ref string, p Prototype) {
	l.protos[ref] = normalize(p)
}

func normalize(p Prototype) Prototype {
	if p.Local.Scale.X == 0 && p.Local.Scale.Y == 0 && p.Local.Scale.Z == 0 {
		p.Local.Scale = Identity.Scale
	}
	if len(p.Children) > 0 {
		kids := make([]Prototype, len(p.Children))
		for i, ch := range p.Children {
			kids[i] = normalize(ch)
		}
		p.Children = kids
	}
	return p
}

// Has reports whether ref is registered.
func (l *Library) Has(ref string) bool {
	_, ok := l.protos[ref]
	return ok
}

// Instantiate builds an orphan copy of the prototype registered as ref.
// The returned root carries ref as its prototype reference.
func (l *Library) Instantiate(t *Tree, ref string) (Handle, error) {
	p, ok := l.protos[ref]
	if !ok {
		return Handle{}, fmt.Errorf("%q: %w", ref, ErrUnknownPrototype)
	}

	h, err := build(t, Handle{}, p)
	if err != nil {
		return Handle{}, fmt.Errorf("instantiate %q: %w", ref, err)
	}
	t.nodes[h.index].proto = ref
	return h, nil
}

func build(t *Tree, parent Handle, p Prototype) (Handle, error) {
	h, err := t.NewNode(parent, p.Name)
	if err != nil {
		return Handle{}, err
	}
	if err := t.SetLocal(h, p.Local); err != nil {
		return Handle{}, err
	}
	for _, ch := range p.Children {
		if _, err := build(t, h, ch); err != nil {
			return Handle{}, err
		}
	}
	return h, nil
}
