package db

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landscape/internal/model"
)

func fixture() []model.Competitor {
	rating := 4.5
	reviews := 120
	return []model.Competitor{
		{
			Ordinal: 0, Name: "Harborline Sushi", Lat: 33.6158, Lng: -117.8752,
			Category: "sushi", PriceTier: "$$$", CuisineTag: "japanese",
			Rating: &rating, ReviewCount: &reviews,
			Hours: model.WeeklyHours{model.Friday: {"11:30", "21:30"}},
			Note:  "Omakase counter",
		},
		{
			Ordinal: 1, Name: "Pop-up Supper Club", Lat: 33.6232, Lng: -117.8932,
			Category: "dining", OnSite: true,
		},
	}
}

func TestSeedAndList(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "landscape.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	seeded, err := SeedCompetitors(conn, fixture())
	if err != nil || !seeded {
		t.Fatalf("SeedCompetitors() = %v, %v", seeded, err)
	}

	got, err := ListCompetitors(conn)
	if err != nil {
		t.Fatalf("ListCompetitors() error = %v", err)
	}
	if diff := cmp.Diff(fixture(), got); diff != "" {
		t.Errorf("stored dataset mismatch (-want +got):\n%s", diff)
	}

	seeded, err = SeedCompetitors(conn, fixture()[:1])
	if err != nil || seeded {
		t.Errorf("second seed = %v, %v; want no-op", seeded, err)
	}
	if n, _ := CountCompetitors(conn); n != 2 {
		t.Errorf("count after second seed = %d, want 2", n)
	}
}

func TestReplaceCompetitors(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "landscape.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if _, err := SeedCompetitors(conn, fixture()); err != nil {
		t.Fatal(err)
	}

	replacement := []model.Competitor{
		{Ordinal: 0, Name: "Only One", Lat: 33.6, Lng: -117.9, Category: "gyms"},
	}
	if err := ReplaceCompetitors(conn, replacement); err != nil {
		t.Fatalf("ReplaceCompetitors() error = %v", err)
	}

	got, err := ListCompetitors(conn)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(replacement, got); diff != "" {
		t.Errorf("replaced dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceRollsBackOnConstraintFailure(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "landscape.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if _, err := SeedCompetitors(conn, fixture()); err != nil {
		t.Fatal(err)
	}

	bad := []model.Competitor{
		{Ordinal: 0, Name: "ok", Lat: 33.6, Lng: -117.9, Category: "gyms"},
		{Ordinal: 1, Name: "bad tier", Lat: 33.6, Lng: -117.9, Category: "gyms", PriceTier: "$$$$$"},
	}
	if err := ReplaceCompetitors(conn, bad); err == nil {
		t.Fatal("ReplaceCompetitors() should reject an invalid price tier")
	}

	got, err := ListCompetitors(conn)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Harborline Sushi" {
		t.Errorf("original dataset should survive a failed import, got %d rows", len(got))
	}
}
