package filter

import (
	"testing"

	"landscape/internal/catalog"
)

func TestHighlight(t *testing.T) {
	tax := catalog.Default

	group := SuperHighlight(tax, catalog.SuperNightlife)
	if group.Dims("bars") || group.Dims("lounges") {
		t.Error("nightlife highlight should keep its children bright")
	}
	if !group.Dims("gyms") {
		t.Error("nightlife highlight should dim gyms")
	}

	leaf := LeafHighlight(tax, "bars")
	if leaf.Dims("bars") || !leaf.Dims("lounges") {
		t.Error("leaf highlight should only keep bars bright")
	}

	var none Highlight
	if none.Active() || none.Dims("gyms") {
		t.Error("empty highlight dims nothing")
	}
}

func TestHighlightForPrefersSuper(t *testing.T) {
	h := HighlightFor(catalog.Default, "dining")
	if h.Super != catalog.SuperDining {
		t.Fatalf("HighlightFor(dining) = %+v, want the dining group", h)
	}
	if h.Dims("sushi") {
		t.Error("dining group highlight should include sushi")
	}

	if h := HighlightFor(catalog.Default, "yoga"); h.Leaf != "yoga" {
		t.Errorf("HighlightFor(yoga) = %+v", h)
	}
	if h := HighlightFor(catalog.Default, "bowling"); h.Active() {
		t.Error("unknown id should not highlight")
	}
}

func TestToggleHighlight(t *testing.T) {
	tax := catalog.Default
	bars := LeafHighlight(tax, "bars")

	h := ToggleHighlight(Highlight{}, bars)
	if !h.Same(bars) {
		t.Fatalf("first toggle should select bars")
	}
	h = ToggleHighlight(h, SuperHighlight(tax, catalog.SuperFitness))
	if h.Super != catalog.SuperFitness {
		t.Fatalf("choosing another id should switch to it")
	}
	h = ToggleHighlight(h, SuperHighlight(tax, catalog.SuperFitness))
	if h.Active() {
		t.Error("choosing the same id again should clear")
	}
}
