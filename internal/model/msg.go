package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when the competitor dataset has been read from the store.
type DatasetLoadedMsg struct {
	Competitors []Competitor
}

// Screen represents different app screens.
type Screen int

const (
	ScreenCompetitors Screen = iota
	ScreenFilters
	ScreenMap
	ScreenLayers
	ScreenLegend
	ScreenOSM
	ScreenDetail
)

// TopLevelScreens are the screens reachable from the tab bar, in tab order.
var TopLevelScreens = []Screen{
	ScreenCompetitors,
	ScreenFilters,
	ScreenMap,
	ScreenLayers,
	ScreenLegend,
	ScreenOSM,
}

func (s Screen) String() string {
	switch s {
	case ScreenCompetitors:
		return "Competitors"
	case ScreenFilters:
		return "Filters"
	case ScreenMap:
		return "Map"
	case ScreenLayers:
		return "Layers"
	case ScreenLegend:
		return "Legend"
	case ScreenOSM:
		return "OSM"
	case ScreenDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
