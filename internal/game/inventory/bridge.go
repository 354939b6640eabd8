package inventory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/roguecore/internal/data"
)

var (
	ErrNoPrototype = errors.New("selection has no visual prototype")
	ErrNilItem     = errors.New("selection has no item definition")
)

// Equipper attaches instances of a visual prototype to the sockets of one
// actor context. *equipment.Manager implements it.
type Equipper interface {
	EquipScene(cat data.Category, item *data.ItemDef, prototype string) error
}

// Highlighter is the inventory UI callback keeping item highlights in sync.
type Highlighter interface {
	SetHighlighted(cat data.Category, key string, on bool)
}

// Bridge turns inventory selections into equip calls on the live actor and
// its preview, and keeps one highlighted item per category.
type Bridge struct {
	catalog *data.Catalog
	live    Equipper
	preview Equipper
	ui      Highlighter

	highlighted map[data.Category]map[string]struct{}

	log *slog.Logger
}

// NewBridge creates a bridge. A nil live or preview equipper leaves that half
// unbound; a nil ui drops highlight callbacks.
func NewBridge(catalog *data.Catalog, live, preview Equipper, ui Highlighter, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	b := &Bridge{
		catalog:     catalog,
		live:        live,
		preview:     preview,
		ui:          ui,
		highlighted: make(map[data.Category]map[string]struct{}, len(data.Categories)),
		log:         log,
	}
	if live == nil {
		log.Warn("live equipment unbound, selections only reach the preview")
	}
	if preview == nil {
		log.Warn("preview equipment unbound")
	}
	return b
}

// OnSelect equips an instance of prototype, described by def, on both actors
// and moves the category's highlight to key.
//
// Parameters:
//   - cat: category of the selected slot
//   - key: item key, used for highlighting
//   - def: the item definition
//   - prototype: visual prototype reference; empty rejects the selection
//
// Equip failures on either half are reported together and the other half is
// still updated. The highlight moves unless every bound half failed.
func (b *Bridge) OnSelect(cat data.Category, key string, def *data.ItemDef, prototype string) error {
	if prototype == "" {
		b.log.Warn("selection rejected", "category", cat, "key", key, "reason", ErrNoPrototype)
		return fmt.Errorf("select %s/%s: %w", cat, key, ErrNoPrototype)
	}
	if def == nil {
		b.log.Warn("selection rejected", "category", cat, "key", key, "reason", ErrNilItem)
		return fmt.Errorf("select %s/%s: %w", cat, key, ErrNilItem)
	}

	var (
		errs  []error
		bound int
	)
	for _, half := range []struct {
		name string
		eq   Equipper
	}{{"live", b.live}, {"preview", b.preview}} {
		if half.eq == nil {
			continue
		}
		bound++
		if err := half.eq.EquipScene(cat, def, prototype); err != nil {
			b.log.Warn("equip failed", "half", half.name, "category", cat, "key", key, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", half.name, err))
		}
	}

	if bound > 0 && len(errs) == bound {
		return fmt.Errorf("select %s/%s: %w", cat, key, errors.Join(errs...))
	}

	b.highlight(cat, key)
	b.log.Debug("item selected", "category", cat, "key", key, "prototype", prototype)

	if len(errs) > 0 {
		return fmt.Errorf("select %s/%s: %w", cat, key, errors.Join(errs...))
	}
	return nil
}

// highlight clears every other highlighted key of cat, then highlights key.
// Other categories are untouched.
func (b *Bridge) highlight(cat data.Category, key string) {
	prev := b.highlighted[cat]
	for k := range prev {
		if k != key && b.ui != nil {
			b.ui.SetHighlighted(cat, k, false)
		}
	}
	if b.ui != nil {
		b.ui.SetHighlighted(cat, key, true)
	}
	b.highlighted[cat] = map[string]struct{}{key: {}}
}

// Select looks key up in the catalog and selects it.
func (b *Bridge) Select(cat data.Category, key string) error {
	def, err := b.catalog.MustItem(cat, key)
	if err != nil {
		return fmt.Errorf("select %s/%s: %w", cat, key, err)
	}
	return b.OnSelect(cat, key, def, def.Prototype)
}

// EquipDefaults selects the first catalog item of every category, exactly as
// a user selection would.
func (b *Bridge) EquipDefaults() error {
	var errs []error
	for _, cat := range data.Categories {
		items := b.catalog.Items(cat)
		if len(items) == 0 {
			continue
		}
		if err := b.Select(cat, items[0].Key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Highlighted returns the highlighted key of cat.
func (b *Bridge) Highlighted(cat data.Category) (string, bool) {
	for k := range b.highlighted[cat] {
		return k, true
	}
	return "", false
}
