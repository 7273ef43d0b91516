package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"landscape/internal/catalog"
	"landscape/internal/model"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	if s.Categories.Len() != 0 {
		t.Errorf("default categories = %v, want none", s.Categories.Sorted())
	}
	if diff := cmp.Diff([]float64{0.5, 1, 2, 3}, s.Rings.Sorted()); diff != "" {
		t.Errorf("default rings mismatch (-want +got):\n%s", diff)
	}
	if s.Clip || s.Time.Enabled || s.Sort != SortByDistance {
		t.Errorf("unexpected default flags: %+v", s)
	}
	if s.PriceTiers.Len() != len(catalog.PriceTiers) || s.Cuisines.Len() != len(catalog.CuisineTags) {
		t.Error("default state should allow every price tier and cuisine")
	}
	if got := s.Time.Window().Badge(); got != "Fri, Sun 2pm–6pm" {
		t.Errorf("default time badge = %q", got)
	}
}

func TestToggleSuperCategory(t *testing.T) {
	tax := catalog.Default
	dining, _ := tax.Super(catalog.SuperDining)

	t.Run("all active deactivates all", func(t *testing.T) {
		s := DefaultState()
		s.ToggleSuperCategory(tax, catalog.SuperDining)
		if s.Categories.Len() != len(dining.Children) {
			t.Fatalf("expected all dining children active, got %v", s.Categories.Sorted())
		}
		s.ToggleSuperCategory(tax, catalog.SuperDining)
		if s.Categories.Len() != 0 {
			t.Errorf("expected none active, got %v", s.Categories.Sorted())
		}
	})

	t.Run("partial activates all", func(t *testing.T) {
		s := DefaultState()
		s.ToggleCategory("sushi")
		s.ToggleSuperCategory(tax, catalog.SuperDining)
		for _, c := range dining.Children {
			if !s.Categories.Has(c.ID) {
				t.Errorf("%q should be active", c.ID)
			}
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, start := range []State{DefaultState(), allOn()} {
			s := start.Clone()
			s.ToggleSuperCategory(tax, catalog.SuperFitness)
			s.ToggleSuperCategory(tax, catalog.SuperFitness)
			if !s.Categories.Equal(start.Categories) {
				t.Errorf("round trip changed categories: %v -> %v", start.Categories.Sorted(), s.Categories.Sorted())
			}
		}
	})

	t.Run("other groups untouched", func(t *testing.T) {
		s := DefaultState()
		s.ToggleCategory("bars")
		s.ToggleSuperCategory(tax, catalog.SuperDining)
		s.ToggleSuperCategory(tax, catalog.SuperDining)
		if diff := cmp.Diff([]model.CategoryID{"bars"}, s.Categories.Sorted()); diff != "" {
			t.Errorf("categories mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := DefaultState()
	b := a.Clone()
	b.ToggleCategory("gyms")
	b.ToggleDay(model.Monday)
	b.ToggleRing(2)

	if a.Categories.Has("gyms") || a.Time.Days.Has(model.Monday) || !a.Rings.Has(2) {
		t.Error("mutating a clone changed the original")
	}
	if a.Equal(b) {
		t.Error("Equal() should see the difference")
	}
	if !a.Equal(a.Clone()) {
		t.Error("a state should equal its clone")
	}
}

func TestClearAndSelectAllCuisine(t *testing.T) {
	s := DefaultState()
	s.ClearFilters()
	if s.PriceTiers.Len() != 0 || s.Cuisines.Len() != 0 {
		t.Fatal("ClearFilters should empty tiers and cuisines")
	}
	s.SelectAllCuisine()
	if s.Cuisines.Len() != len(catalog.CuisineTags) {
		t.Errorf("SelectAllCuisine restored %d tags", s.Cuisines.Len())
	}
	if s.PriceTiers.Len() != 0 {
		t.Error("SelectAllCuisine should not touch price tiers")
	}
}

func TestAnyDiningActive(t *testing.T) {
	s := DefaultState()
	if s.AnyDiningActive(catalog.Default) {
		t.Error("no categories active")
	}
	s.ToggleCategory("gyms")
	if s.AnyDiningActive(catalog.Default) {
		t.Error("only gyms active")
	}
	s.ToggleCategory("brunch")
	if !s.AnyDiningActive(catalog.Default) {
		t.Error("brunch is dining")
	}
}

func TestHourSliders(t *testing.T) {
	s := DefaultState()
	s.SetStartHour(20)
	if s.Time.Start != 20 || s.Time.End != 20 {
		t.Errorf("start=%d end=%d after SetStartHour(20)", s.Time.Start, s.Time.End)
	}
	s.SetEndHour(9)
	if s.Time.Start != 9 || s.Time.End != 9 {
		t.Errorf("start=%d end=%d after SetEndHour(9)", s.Time.Start, s.Time.End)
	}
}

func TestSetHoursKeepsLateWindow(t *testing.T) {
	s := DefaultState()
	s.SetHours(23, 1)
	if s.Time.Start != 23 || s.Time.End != 1 {
		t.Errorf("start=%d end=%d after SetHours(23, 1)", s.Time.Start, s.Time.End)
	}
	s.SetHours(-1, 99)
	if s.Time.Start != 0 || s.Time.End != 24 {
		t.Errorf("start=%d end=%d after SetHours(-1, 99)", s.Time.Start, s.Time.End)
	}
}

func TestMaxRingMiles(t *testing.T) {
	s := DefaultState()
	if _, ok := s.MaxRingMiles(); ok {
		t.Error("clip is off by default")
	}
	s.SetClip(true)
	s.ToggleRing(3)
	if got, ok := s.MaxRingMiles(); !ok || got != 2 {
		t.Errorf("MaxRingMiles() = %v, %v; want 2, true", got, ok)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, ok := ParseSortKey("rating"); !ok || k != SortByRating {
		t.Errorf("ParseSortKey(rating) = %v, %v", k, ok)
	}
	if _, ok := ParseSortKey("stars"); ok {
		t.Error("ParseSortKey(stars) should fail")
	}
}
