package search

import "fmt"

// EnrichmentState tracks the optional OpenStreetMap fetch.
type EnrichmentState int

const (
	EnrichmentIdle EnrichmentState = iota
	EnrichmentLoading
	EnrichmentLoaded
	EnrichmentFailed
)

func (s EnrichmentState) String() string {
	switch s {
	case EnrichmentLoading:
		return "loading"
	case EnrichmentLoaded:
		return "loaded"
	case EnrichmentFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Enrichment holds the fetch state and its results. It is owned by the UI
// model and only touched from Update.
type Enrichment struct {
	State EnrichmentState
	POIs  []POI
	Err   error
}

// Begin marks a fetch as started. It returns false, changing nothing, while
// a fetch is in flight or after one has succeeded.
func (e *Enrichment) Begin() bool {
	if e.State == EnrichmentLoading || e.State == EnrichmentLoaded {
		return false
	}
	e.State = EnrichmentLoading
	e.Err = nil
	return true
}

// Finish records the outcome of a fetch.
func (e *Enrichment) Finish(pois []POI, err error) {
	if err != nil {
		e.State = EnrichmentFailed
		e.Err = err
		return
	}
	e.State = EnrichmentLoaded
	e.POIs = pois
	e.Err = nil
}

// Summary is a one-line status for the header.
func (e Enrichment) Summary() string {
	switch e.State {
	case EnrichmentLoading:
		return "OSM: loading…"
	case EnrichmentLoaded:
		return fmt.Sprintf("OSM: %d places", len(e.POIs))
	case EnrichmentFailed:
		return "OSM: failed"
	default:
		return "OSM: off"
	}
}
