package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/search"
	"landscape/internal/spatial"
	"landscape/internal/util"
)

// osmLoadedMsg carries the result of an Overpass fetch.
type osmLoadedMsg struct {
	pois []search.POI
	err  error
}

// OSMModel lists places fetched from OpenStreetMap.
type OSMModel struct {
	taxonomy *catalog.Taxonomy
	cursor   int
}

func NewOSMModel(t *catalog.Taxonomy) *OSMModel {
	return &OSMModel{taxonomy: t}
}

func (o *OSMModel) MoveDown(n int) {
	if o.cursor < n-1 {
		o.cursor++
	}
}

func (o *OSMModel) MoveUp() {
	if o.cursor > 0 {
		o.cursor--
	}
}

// View renders the fetch status and the fetched places.
func (o *OSMModel) View(width, height int, e search.Enrichment, enabled bool, spin string) string {
	if !enabled {
		return EmptyStateStyle.Width(width).Height(height).Render(
			"    OpenStreetMap enrichment is disabled.\n    Set overpass_enabled in the config or pass --osm.")
	}

	switch e.State {
	case search.EnrichmentIdle:
		return EmptyStateStyle.Width(width).Height(height).Render("    Press  o  to fetch nearby places from OpenStreetMap.")
	case search.EnrichmentLoading:
		return EmptyStateStyle.Width(width).Height(height).Render("    " + spin + " Fetching places from OpenStreetMap…")
	case search.EnrichmentFailed:
		return lipgloss.JoinVertical(lipgloss.Left,
			ErrorStyle.Render(e.Err.Error()),
			EmptyStateStyle.Render("Press  o  to retry."))
	}

	if len(e.POIs) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("    No places returned.")
	}

	widths := []int{32, 22, 10}
	header := renderTableRow([]string{formatHeaderLabel("name"), formatHeaderLabel("category"), formatHeaderLabel("dist")}, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	o.cursor = min(max(o.cursor, 0), len(e.POIs)-1)
	visibleHeight := max(height-3, 1)
	start := max(0, o.cursor-visibleHeight+1)
	var rows []string
	for i := start; i < len(e.POIs) && i < start+visibleHeight; i++ {
		p := e.POIs[i]
		style := NormalRowStyle
		if i == o.cursor {
			style = SelectedRowStyle
		}
		dist := spatial.DistanceMiles(catalog.Reference.Point, spatial.Point{Lat: p.Lat, Lng: p.Lng})
		rows = append(rows, renderTableRow([]string{
			util.TruncateString(p.Name, widths[0]-2),
			o.taxonomy.Path(p.Category),
			util.FormatDistance(dist),
		}, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d places  ·  row %d/%d", len(e.POIs), o.cursor+1, len(e.POIs)))
	return lipgloss.JoinVertical(lipgloss.Left, header, divider, strings.Join(rows, "\n"), status)
}
