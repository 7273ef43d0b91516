package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"landscape/internal/catalog"
	"landscape/internal/db"
	"landscape/internal/filter"
	"landscape/internal/hours"
	"landscape/internal/model"
	"landscape/internal/search"
)

func ptr[T any](v T) *T { return &v }

func listFixture() []model.Competitor {
	ref := catalog.Reference.Point
	return []model.Competitor{
		{
			Ordinal: 0, Name: "Near Sushi", Lat: ref.Lat + 0.002, Lng: ref.Lng,
			Category: "sushi", PriceTier: "$$$", CuisineTag: "japanese",
			Rating: ptr(4.1), ReviewCount: ptr(80),
			Hours: model.WeeklyHours{model.Friday: {"11:00", "22:00"}},
		},
		{
			Ordinal: 1, Name: "Far Bar", Lat: ref.Lat + 0.03, Lng: ref.Lng,
			Category: "bars", Rating: ptr(4.8), ReviewCount: ptr(300),
			Hours: model.WeeklyHours{model.Friday: {"20:00", "23:00"}},
		},
		{
			Ordinal: 2, Name: "Mid Gym", Lat: ref.Lat + 0.01, Lng: ref.Lng,
			Category: "gyms",
		},
	}
}

func decodeNames(t *testing.T, data []byte) []string {
	t.Helper()
	var entries []listEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, data)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestListDefaultShowsEverythingByDistance(t *testing.T) {
	engine := filter.NewEngine()
	state, err := listOptions{sort: "distance"}.state(engine.Taxonomy)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeList(&buf, engine, listFixture(), state, true); err != nil {
		t.Fatal(err)
	}
	want := []string{"Near Sushi", "Mid Gym", "Far Bar"}
	if diff := cmp.Diff(want, decodeNames(t, buf.Bytes())); diff != "" {
		t.Errorf("list order mismatch (-want +got):\n%s", diff)
	}
}

func TestListGroupAndRating(t *testing.T) {
	engine := filter.NewEngine()
	opts := listOptions{show: []string{"dining", "bars"}, sort: "rating"}
	state, err := opts.state(engine.Taxonomy)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeList(&buf, engine, listFixture(), state, true); err != nil {
		t.Fatal(err)
	}
	want := []string{"Far Bar", "Near Sushi"}
	if diff := cmp.Diff(want, decodeNames(t, buf.Bytes())); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestListRingClipsAndStatus(t *testing.T) {
	engine := filter.NewEngine()
	opts := listOptions{ring: 1, sort: "distance", days: []string{"fri"}, from: 12, to: 14}
	state, err := opts.state(engine.Taxonomy)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeList(&buf, engine, listFixture(), state, true); err != nil {
		t.Fatal(err)
	}
	var entries []listEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, e := range entries {
		got[e.Name] = e.Status
	}
	want := map[string]string{"Near Sushi": "open", "Mid Gym": "unknown"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestListTableSummary(t *testing.T) {
	engine := filter.NewEngine()
	opts := listOptions{show: []string{"gyms"}, sort: "distance", days: []string{"sun", "fri"}, from: 14, to: 18}
	state, err := opts.state(engine.Taxonomy)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeList(&buf, engine, listFixture(), state, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Mid Gym") || strings.Contains(out, "Far Bar") {
		t.Errorf("table rows wrong:\n%s", out)
	}
	if !strings.Contains(out, "1 of 3 competitors  ·  Fri, Sun 2pm–6pm") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestListOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opts listOptions
	}{
		{"unknown category", listOptions{show: []string{"bowling"}, sort: "distance"}},
		{"unknown tier", listOptions{price: []string{"$$$$$"}, sort: "distance"}},
		{"empty tier", listOptions{price: []string{""}, sort: "distance"}},
		{"unknown cuisine", listOptions{cuisine: []string{"martian"}, sort: "distance"}},
		{"unknown ring", listOptions{ring: 5, sort: "distance"}},
		{"unknown sort", listOptions{sort: "name"}},
		{"unknown day", listOptions{sort: "distance", days: []string{"funday"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.state(catalog.Default); err == nil {
				t.Error("state() error = nil, want error")
			}
		})
	}
}

func TestListLateWindowKeepsFlags(t *testing.T) {
	opts := listOptions{sort: "distance", days: []string{"fri"}, from: 22, to: 3}
	state, err := opts.state(catalog.Default)
	if err != nil {
		t.Fatal(err)
	}
	if state.Time.Start != 22 || state.Time.End != 3 {
		t.Fatalf("window = %d–%d, want 22–3", state.Time.Start, state.Time.End)
	}
	if got := state.Time.Window().Badge(); got != "Fri 10pm–3am" {
		t.Errorf("badge = %q", got)
	}

	ref := catalog.Reference.Point
	bar := model.Competitor{
		Name: "Late Bar", Lat: ref.Lat, Lng: ref.Lng, Category: "bars",
		Hours: model.WeeklyHours{model.Friday: {"18:00", "02:00"}},
	}
	engine := filter.NewEngine()
	if got := engine.StatusOf(bar, state); got != hours.Open {
		t.Errorf("status = %v, want open", got)
	}
}

func TestListHourFlagsClamped(t *testing.T) {
	opts := listOptions{sort: "distance", days: []string{"mon"}, from: -3, to: 30}
	state, err := opts.state(catalog.Default)
	if err != nil {
		t.Fatal(err)
	}
	if state.Time.Start != 0 || state.Time.End != 24 {
		t.Errorf("window = %d–%d, want 0–24", state.Time.Start, state.Time.End)
	}
}

func writeDataset(t *testing.T, list []model.Competitor) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := catalog.Encode(f, list); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportDatasetReplacesStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "landscape.db")
	n, err := importDataset(dbPath, writeDataset(t, listFixture()))
	if err != nil {
		t.Fatalf("importDataset() error = %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d, want 3", n)
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	got, err := db.ListCompetitors(conn)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(listFixture(), got); diff != "" {
		t.Errorf("stored dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestImportDatasetRejectsInvalidFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "landscape.db")
	if _, err := importDataset(dbPath, writeDataset(t, listFixture())); err != nil {
		t.Fatal(err)
	}

	bad := listFixture()
	bad[0].Category = "bowling"
	if _, err := importDataset(dbPath, writeDataset(t, bad)); err == nil {
		t.Fatal("importDataset() error = nil for unknown category")
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if n, _ := db.CountCompetitors(conn); n != 3 {
		t.Errorf("count after rejected import = %d, want 3", n)
	}
}

func TestApplyOnboarding(t *testing.T) {
	cfg := &Config{OverpassEndpoint: search.DefaultOverpassEndpoint}
	applyOnboarding(cfg, OnboardingSettings{Completed: true, OSMEnabled: true, OverpassEndpoint: "http://mirror/api"})
	if !cfg.OverpassEnabled {
		t.Error("OSM not enabled from saved settings")
	}
	if cfg.OverpassEndpoint != "http://mirror/api" {
		t.Errorf("endpoint = %q, want saved mirror", cfg.OverpassEndpoint)
	}

	cfg = &Config{OverpassEndpoint: "http://flag/api"}
	applyOnboarding(cfg, OnboardingSettings{Completed: true, OverpassEndpoint: "http://mirror/api"})
	if cfg.OverpassEndpoint != "http://flag/api" {
		t.Errorf("explicit endpoint overridden: %q", cfg.OverpassEndpoint)
	}
	if cfg.OverpassEnabled {
		t.Error("OSM enabled without opt-in")
	}
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	got, err := loadOnboardingSettings(dir)
	if err != nil || got.Completed {
		t.Fatalf("fresh settings = %+v, %v", got, err)
	}

	want := OnboardingSettings{Completed: true, OSMEnabled: true}
	if err := saveOnboardingSettings(dir, want); err != nil {
		t.Fatal(err)
	}
	got, err = loadOnboardingSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func onboardingKey(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOnboardingDecline(t *testing.T) {
	var m tea.Model = newOnboardingModel(search.DefaultOverpassEndpoint)
	m, cmd := m.Update(onboardingKey("n"))
	if cmd == nil {
		t.Fatal("declining should quit")
	}
	got := m.(onboardingModel)
	if got.settings.OSMEnabled || !got.settings.Completed {
		t.Errorf("settings = %+v", got.settings)
	}
}

func TestOnboardingEnableWithDefaultEndpoint(t *testing.T) {
	var m tea.Model = newOnboardingModel(search.DefaultOverpassEndpoint)
	m, _ = m.Update(onboardingKey("k"))
	m, cmd := m.Update(onboardingKey("enter"))
	if cmd != nil {
		t.Fatal("enabling should move to the endpoint step, not quit")
	}
	if m.(onboardingModel).step != stepEndpoint {
		t.Fatalf("step = %v, want endpoint", m.(onboardingModel).step)
	}

	m, cmd = m.Update(onboardingKey("enter"))
	if cmd == nil {
		t.Fatal("saving should quit")
	}
	got := m.(onboardingModel).settings
	want := OnboardingSettings{Completed: true, OSMEnabled: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestOnboardingCustomEndpoint(t *testing.T) {
	var m tea.Model = newOnboardingModel(search.DefaultOverpassEndpoint)
	m, _ = m.Update(onboardingKey("y"))

	om := m.(onboardingModel)
	om.endpointInput.SetValue("http://mirror/api")
	m, _ = om.Update(onboardingKey("enter"))

	got := m.(onboardingModel).settings
	if got.OverpassEndpoint != "http://mirror/api" || !got.OSMEnabled {
		t.Errorf("settings = %+v", got)
	}
	if !strings.Contains(m.View(), "Onboarding Complete") {
		t.Error("completion card not rendered")
	}
}
