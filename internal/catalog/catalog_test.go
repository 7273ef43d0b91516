package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"

	"landscape/internal/model"
)

func TestLoadBundledDataset(t *testing.T) {
	list, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(list) == 0 {
		t.Fatal("bundled dataset is empty")
	}
	for i, c := range list {
		if c.Ordinal != i {
			t.Errorf("competitor %q has ordinal %d, want %d", c.Name, c.Ordinal, i)
		}
	}

	onSite := 0
	for _, c := range list {
		if c.OnSite {
			onSite++
		}
	}
	if onSite == 0 {
		t.Error("expected at least one on-site amenity")
	}
}

func TestTaxonomyLookups(t *testing.T) {
	sup, ok := Default.SuperOf("sushi")
	if !ok || sup != SuperDining {
		t.Errorf("SuperOf(sushi) = %q, %v", sup, ok)
	}
	if _, ok := Default.SuperOf("bowling"); ok {
		t.Error("SuperOf(bowling) should not resolve")
	}

	dining, ok := Default.Super(SuperDining)
	if !ok {
		t.Fatal("dining super-category missing")
	}
	var got []model.CategoryID
	for _, c := range dining.Children {
		got = append(got, c.ID)
		if !Default.IsDining(c.ID) {
			t.Errorf("IsDining(%q) = false", c.ID)
		}
	}
	want := []model.CategoryID{"dining", "upscale_casual", "sushi", "casual", "health_food", "brunch"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dining children mismatch (-want +got):\n%s", diff)
	}

	if Default.IsDining("bars") {
		t.Error("bars should not be dining")
	}
	if got := Default.Path("sushi"); got != "Dining › Sushi" {
		t.Errorf("Path(sushi) = %q", got)
	}
	if got := Default.ColorOf("nope"); got != "#94a3b8" {
		t.Errorf("ColorOf(unknown) = %q", got)
	}
}

func TestAllCategoryIDsEveryLeafOnce(t *testing.T) {
	seen := map[model.CategoryID]int{}
	for _, id := range Default.AllCategoryIDs() {
		seen[id]++
	}
	for _, sc := range Default.Supers() {
		for _, c := range sc.Children {
			if seen[c.ID] != 1 {
				t.Errorf("category %q appears %d times", c.ID, seen[c.ID])
			}
			if c.Super != sc.ID {
				t.Errorf("category %q has super %q, want %q", c.ID, c.Super, sc.ID)
			}
		}
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	bad := 7.5
	list := []model.Competitor{
		{Ordinal: 0, Name: "ok", Lat: 33.6, Lng: -117.9, Category: "sushi", CuisineTag: "japanese"},
		{Ordinal: 1, Name: "bad category", Lat: 33.6, Lng: -117.9, Category: "bowling"},
		{Ordinal: 2, Name: "tag on bar", Lat: 33.6, Lng: -117.9, Category: "bars", CuisineTag: "mexican"},
		{Ordinal: 3, Name: "bad rating", Lat: 33.6, Lng: -117.9, Category: "gyms", Rating: &bad, PriceTier: "$$$$$"},
		{Ordinal: 4, Name: "bad day", Lat: 33.6, Lng: -117.9, Category: "spa",
			Hours: model.WeeklyHours{"funday": {"09:00", "17:00"}}},
	}

	err := Validate(Default, list)
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("error type = %T, want *multierror.Error", err)
	}
	if got := len(merr.Errors); got != 5 {
		t.Errorf("got %d errors, want 5:\n%v", got, err)
	}
	if !strings.Contains(err.Error(), "cuisine tag on non-dining") {
		t.Errorf("missing cuisine placement error:\n%v", err)
	}
}

func TestDecodeEncodeKeepsOrder(t *testing.T) {
	in := `[
		{"name": "A", "lat": 33.61, "lng": -117.88, "category": "gyms", "rating": null},
		{"name": "B", "lat": 33.62, "lng": -117.89, "category": "sushi", "cuisineTag": "japanese",
		 "rating": 4.5, "hours": {"mon": ["09:00", "17:00"]}}
	]`
	list, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(list) != 2 || list[1].Ordinal != 1 || list[1].Hours[model.Monday][1] != "17:00" {
		t.Fatalf("unexpected decode result: %+v", list)
	}
	if list[0].Rating != nil || list[0].Hours != nil {
		t.Errorf("absent fields should stay nil: %+v", list[0])
	}

	var buf bytes.Buffer
	if err := Encode(&buf, list); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}
	if diff := cmp.Diff(list, again); diff != "" {
		t.Errorf("re-decoded dataset differs (-want +got):\n%s", diff)
	}
}
