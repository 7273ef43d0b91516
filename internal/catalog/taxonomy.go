package catalog

import (
	"landscape/internal/model"
)

// Category is a leaf category shown on the map.
type Category struct {
	ID    model.CategoryID
	Label string
	Color string
	Super model.SuperCategoryID
}

// SuperCategory groups leaf categories in the sidebar accordion.
type SuperCategory struct {
	ID       model.SuperCategoryID
	Label    string
	Color    string
	Children []Category
}

const (
	SuperDining    model.SuperCategoryID = "dining"
	SuperNightlife model.SuperCategoryID = "nightlife"
	SuperFitness   model.SuperCategoryID = "fitness"
	SuperWellness  model.SuperCategoryID = "wellness"
	SuperWork      model.SuperCategoryID = "work"
	SuperLodging   model.SuperCategoryID = "lodging"
)

// Taxonomy is the fixed category tree. It is built once and never mutated.
type Taxonomy struct {
	supers     []SuperCategory
	categories map[model.CategoryID]Category
	order      []model.CategoryID
}

// NewTaxonomy indexes a list of super-categories. Children inherit their
// parent's id in Category.Super.
func NewTaxonomy(supers []SuperCategory) *Taxonomy {
	t := &Taxonomy{
		categories: make(map[model.CategoryID]Category),
	}
	for _, sc := range supers {
		children := make([]Category, 0, len(sc.Children))
		for _, c := range sc.Children {
			c.Super = sc.ID
			children = append(children, c)
			t.categories[c.ID] = c
			t.order = append(t.order, c.ID)
		}
		sc.Children = children
		t.supers = append(t.supers, sc)
	}
	return t
}

// Default is the taxonomy of the bundled dataset.
var Default = NewTaxonomy([]SuperCategory{
	{ID: SuperDining, Label: "Dining", Color: "#ef4444", Children: []Category{
		{ID: "dining", Label: "Fine Dining", Color: "#dc2626"},
		{ID: "upscale_casual", Label: "Upscale Casual", Color: "#f97316"},
		{ID: "sushi", Label: "Sushi", Color: "#e11d48"},
		{ID: "casual", Label: "Casual", Color: "#fb923c"},
		{ID: "health_food", Label: "Health Food", Color: "#84cc16"},
		{ID: "brunch", Label: "Brunch", Color: "#f59e0b"},
	}},
	{ID: SuperNightlife, Label: "Nightlife", Color: "#8b5cf6", Children: []Category{
		{ID: "bars", Label: "Bars", Color: "#7c3aed"},
		{ID: "lounges", Label: "Lounges", Color: "#a855f7"},
	}},
	{ID: SuperFitness, Label: "Fitness", Color: "#10b981", Children: []Category{
		{ID: "gyms", Label: "Gyms", Color: "#059669"},
		{ID: "yoga", Label: "Yoga", Color: "#14b8a6"},
	}},
	{ID: SuperWellness, Label: "Wellness", Color: "#ec4899", Children: []Category{
		{ID: "spa", Label: "Spa & Beauty", Color: "#ec4899"},
	}},
	{ID: SuperWork, Label: "Work", Color: "#3b82f6", Children: []Category{
		{ID: "cowork", Label: "Cowork & Cafes", Color: "#3b82f6"},
	}},
	{ID: SuperLodging, Label: "Lodging", Color: "#64748b", Children: []Category{
		{ID: "hotels", Label: "Hotels", Color: "#475569"},
	}},
})

// CuisineTags lists every cuisine tag in display order.
var CuisineTags = []model.CuisineTag{
	"japanese", "italian", "mexican", "seafood", "american",
	"french", "californian", "health", "brunch",
}

// PriceTiers lists the price tiers from cheapest to most expensive.
var PriceTiers = []model.PriceTier{"$", "$$", "$$$", "$$$$"}

// Supers returns the super-categories in display order.
func (t *Taxonomy) Supers() []SuperCategory {
	return t.supers
}

// Category looks up a leaf category.
func (t *Taxonomy) Category(id model.CategoryID) (Category, bool) {
	c, ok := t.categories[id]
	return c, ok
}

// Super looks up a super-category.
func (t *Taxonomy) Super(id model.SuperCategoryID) (SuperCategory, bool) {
	for _, sc := range t.supers {
		if sc.ID == id {
			return sc, true
		}
	}
	return SuperCategory{}, false
}

// SuperOf returns the super-category a leaf belongs to.
func (t *Taxonomy) SuperOf(id model.CategoryID) (model.SuperCategoryID, bool) {
	c, ok := t.categories[id]
	if !ok {
		return "", false
	}
	return c.Super, true
}

// AllCategoryIDs returns every leaf id in display order.
func (t *Taxonomy) AllCategoryIDs() []model.CategoryID {
	out := make([]model.CategoryID, len(t.order))
	copy(out, t.order)
	return out
}

// IsDining reports whether a leaf belongs to the dining family.
func (t *Taxonomy) IsDining(id model.CategoryID) bool {
	sup, ok := t.SuperOf(id)
	return ok && sup == SuperDining
}

// ColorOf returns the display color of a leaf, or grey when unknown.
func (t *Taxonomy) ColorOf(id model.CategoryID) string {
	if c, ok := t.categories[id]; ok {
		return c.Color
	}
	return "#94a3b8"
}

// Path returns "Group › Category" for display.
func (t *Taxonomy) Path(id model.CategoryID) string {
	c, ok := t.categories[id]
	if !ok {
		return string(id)
	}
	sc, _ := t.Super(c.Super)
	return sc.Label + " › " + c.Label
}

// ValidPriceTier reports whether p is one of the known tiers. The empty tier is valid.
func ValidPriceTier(p model.PriceTier) bool {
	if p == "" {
		return true
	}
	for _, tier := range PriceTiers {
		if tier == p {
			return true
		}
	}
	return false
}

// ValidCuisineTag reports whether tag is known. The empty tag is valid.
func ValidCuisineTag(tag model.CuisineTag) bool {
	if tag == "" {
		return true
	}
	for _, c := range CuisineTags {
		if c == tag {
			return true
		}
	}
	return false
}
