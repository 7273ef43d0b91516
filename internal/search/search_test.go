package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"landscape/internal/model"
	"landscape/internal/spatial"
)

var hyatt = spatial.Point{Lat: 33.6189, Lng: -117.8900}

func TestOverpassQuery(t *testing.T) {
	c := NewOverpassClient("", hyatt, 3, 0)
	q := c.Query()

	if !strings.HasPrefix(q, "[out:json][timeout:15];(") || !strings.HasSuffix(q, ");out body;") {
		t.Errorf("unexpected query framing: %s", q)
	}
	for _, want := range []string{
		"node[leisure=fitness_centre](",
		"node[amenity=cafe](",
		"node[amenity=pub](",
		"node[shop=beauty](",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %s", want)
		}
	}
	if got := strings.Count(q, "node["); got != 8 {
		t.Errorf("query has %d node clauses, want 8", got)
	}
}

func TestFetchPOIs(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("body is not form encoded: %v", err)
		}
		gotQuery = form.Get("data")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"elements": [
			{"type": "node", "id": 1, "lat": 33.61, "lon": -117.88, "tags": {"name": "Iron Temple", "leisure": "fitness_centre"}},
			{"type": "node", "id": 2, "lat": 33.62, "lon": -117.89, "tags": {"amenity": "cafe"}},
			{"type": "node", "id": 3, "tags": {"name": "No Coords", "amenity": "bar"}},
			{"type": "node", "id": 4, "lat": 33.60, "lon": -117.87, "tags": {"name": "The Anchor", "amenity": "pub"}},
			{"type": "node", "id": 5, "lat": 33.60, "lon": -117.87, "tags": {"name": "Hardware", "shop": "hardware"}}
		]}`)
	}))
	defer srv.Close()

	c := NewOverpassClient(srv.URL, hyatt, 3, time.Second)
	pois, err := c.FetchPOIs(context.Background())
	if err != nil {
		t.Fatalf("FetchPOIs() error = %v", err)
	}
	if gotQuery != c.Query() {
		t.Errorf("server saw query %q, want %q", gotQuery, c.Query())
	}

	want := []POI{
		{ID: 1, Name: "Iron Temple", Lat: 33.61, Lng: -117.88, Category: model.CategoryID("gyms")},
		{ID: 4, Name: "The Anchor", Lat: 33.60, Lng: -117.87, Category: model.CategoryID("bars")},
	}
	if diff := cmp.Diff(want, pois); diff != "" {
		t.Errorf("POIs mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPOIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOverpassClient(srv.URL, hyatt, 3, time.Second).FetchPOIs(context.Background())
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("FetchPOIs() error = %v, want status 429", err)
	}
}

func TestEnrichmentLifecycle(t *testing.T) {
	var e Enrichment

	if !e.Begin() {
		t.Fatal("first Begin should start a fetch")
	}
	if e.Begin() {
		t.Error("Begin while loading should be a no-op")
	}

	e.Finish(nil, errors.New("boom"))
	if e.State != EnrichmentFailed || e.Err == nil {
		t.Fatalf("state = %v, err = %v", e.State, e.Err)
	}
	if !e.Begin() {
		t.Fatal("a failed fetch should allow retry")
	}
	if e.Err != nil {
		t.Error("Begin should clear the previous error")
	}

	e.Finish([]POI{{ID: 1, Name: "x"}}, nil)
	if e.State != EnrichmentLoaded || len(e.POIs) != 1 {
		t.Fatalf("state = %v, pois = %v", e.State, e.POIs)
	}
	if e.Begin() {
		t.Error("Begin after success should be a no-op")
	}
	if got := e.Summary(); got != "OSM: 1 places" {
		t.Errorf("Summary() = %q", got)
	}
}
