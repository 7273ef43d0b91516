package filter

import (
	"landscape/internal/catalog"
	"landscape/internal/model"
)

// Highlight dims every marker outside a chosen group or category. It never
// affects which competitors are included.
type Highlight struct {
	Super   model.SuperCategoryID
	Leaf    model.CategoryID
	members Set[model.CategoryID]
}

// SuperHighlight highlights every child of a super-category.
func SuperHighlight(t *catalog.Taxonomy, id model.SuperCategoryID) Highlight {
	sc, ok := t.Super(id)
	if !ok {
		return Highlight{}
	}
	h := Highlight{Super: id, members: NewSet[model.CategoryID]()}
	for _, c := range sc.Children {
		h.members.Add(c.ID)
	}
	return h
}

// LeafHighlight highlights a single category.
func LeafHighlight(t *catalog.Taxonomy, id model.CategoryID) Highlight {
	if _, ok := t.Category(id); !ok {
		return Highlight{}
	}
	return Highlight{Leaf: id, members: NewSet(id)}
}

// HighlightFor resolves id as a super-category first, then as a leaf.
func HighlightFor(t *catalog.Taxonomy, id string) Highlight {
	if h := SuperHighlight(t, model.SuperCategoryID(id)); h.Active() {
		return h
	}
	return LeafHighlight(t, model.CategoryID(id))
}

// Active reports whether anything is highlighted.
func (h Highlight) Active() bool {
	return h.members.Len() > 0
}

// Has reports whether cat is in the highlighted set.
func (h Highlight) Has(cat model.CategoryID) bool {
	return h.members.Has(cat)
}

// Dims reports whether a marker of category cat should be drawn dimmed.
func (h Highlight) Dims(cat model.CategoryID) bool {
	return h.Active() && !h.members.Has(cat)
}

// Same reports whether both highlights target the same group or category.
func (h Highlight) Same(o Highlight) bool {
	return h.Super == o.Super && h.Leaf == o.Leaf
}

// ToggleHighlight selects next, or clears the highlight when next is already
// selected.
func ToggleHighlight(current, next Highlight) Highlight {
	if current.Active() && current.Same(next) {
		return Highlight{}
	}
	return next
}
