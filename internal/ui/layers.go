package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/filter"
	"landscape/internal/layers"
	"landscape/internal/util"
)

type layerItemKind int

const (
	layerNeighborhood layerItemKind = iota
	layerHeatmap
	layerDemographics
	layerMetric
	layerTract
)

type layerItem struct {
	kind  layerItemKind
	index int
}

// LayersModel holds the overlay toggles: neighborhood outlines, competitor
// density and the census choropleth. These are view settings and are not
// part of undo.
type LayersModel struct {
	neighborhoods filter.Set[string]
	heatmap       bool
	demographics  bool
	metric        int
	highlight     string
	cursor        int
	offset        int
}

// NewLayersModel starts with every overlay off.
func NewLayersModel() *LayersModel {
	return &LayersModel{neighborhoods: filter.NewSet[string]()}
}

func (l *LayersModel) items() []layerItem {
	var items []layerItem
	for i := range layers.Neighborhoods {
		items = append(items, layerItem{kind: layerNeighborhood, index: i})
	}
	items = append(items, layerItem{kind: layerHeatmap}, layerItem{kind: layerDemographics})
	if l.demographics {
		items = append(items, layerItem{kind: layerMetric})
		for i := range layers.Tracts {
			items = append(items, layerItem{kind: layerTract, index: i})
		}
	}
	return items
}

// Metric returns the selected choropleth measure.
func (l *LayersModel) Metric() layers.Metric {
	return layers.Metrics[l.metric]
}

// CycleMetric steps through the measures; delta may be negative.
func (l *LayersModel) CycleMetric(delta int) string {
	n := len(layers.Metrics)
	l.metric = ((l.metric+delta)%n + n) % n
	return "Showing " + l.Metric().Label
}

// Activate toggles the item under the cursor and returns a status line.
func (l *LayersModel) Activate() string {
	items := l.items()
	if len(items) == 0 {
		return ""
	}
	l.cursor = min(max(l.cursor, 0), len(items)-1)
	item := items[l.cursor]
	switch item.kind {
	case layerNeighborhood:
		name := layers.Neighborhoods[item.index].Name
		if l.neighborhoods.Toggle(name) {
			return "Showing " + name
		}
		return "Hid " + name
	case layerHeatmap:
		l.heatmap = !l.heatmap
		return "Competitor density " + onOff(l.heatmap)
	case layerDemographics:
		l.demographics = !l.demographics
		if !l.demographics {
			l.highlight = ""
		}
		return "Census demographics " + onOff(l.demographics)
	case layerMetric:
		return l.CycleMetric(1)
	case layerTract:
		t := layers.Tracts[item.index]
		if l.highlight == t.GeoID {
			l.highlight = ""
			return "Cleared tract highlight"
		}
		l.highlight = t.GeoID
		return "Highlighted " + t.Name
	}
	return ""
}

// Adjust cycles the metric when the cursor is on the metric row.
func (l *LayersModel) Adjust(delta int) string {
	items := l.items()
	if l.cursor < len(items) && items[l.cursor].kind == layerMetric {
		return l.CycleMetric(delta)
	}
	return ""
}

func (l *LayersModel) MoveDown() {
	if l.cursor < len(l.items())-1 {
		l.cursor++
	}
}

func (l *LayersModel) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// Heatmap reports whether competitor density shading is on.
func (l *LayersModel) Heatmap() bool {
	return l.heatmap
}

// ActiveNeighborhoods returns the outlines to draw, in display order.
func (l *LayersModel) ActiveNeighborhoods() []layers.Neighborhood {
	var out []layers.Neighborhood
	for _, n := range layers.Neighborhoods {
		if l.neighborhoods.Has(n.Name) {
			out = append(out, n)
		}
	}
	return out
}

// Choropleth returns the census overlay, or nil when it is off.
func (l *LayersModel) Choropleth() *choropleth {
	if !l.demographics {
		return nil
	}
	key := l.Metric().Key
	return &choropleth{
		metric:    key,
		breaks:    layers.Breaks(layers.Tracts, key),
		highlight: l.highlight,
	}
}

func (l *LayersModel) label(item layerItem) string {
	switch item.kind {
	case layerNeighborhood:
		n := layers.Neighborhoods[item.index]
		c := n.Centroid()
		return fmt.Sprintf("%s %s %s", checkbox(l.neighborhoods.Has(n.Name)), n.Name,
			HelpDescStyle.Render(fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lng)))
	case layerHeatmap:
		return checkbox(l.heatmap) + " Competitor density " + HelpDescStyle.Render("(shown pins)")
	case layerDemographics:
		return checkbox(l.demographics) + " Census demographics"
	case layerMetric:
		return fmt.Sprintf("    Metric  ‹ %s ›", l.Metric().Label)
	case layerTract:
		t := layers.Tracts[item.index]
		key := l.Metric().Key
		value := t.Value(key)
		marker := " "
		if l.highlight == t.GeoID {
			marker = "◆"
		}
		breaks := layers.Breaks(layers.Tracts, key)
		return fmt.Sprintf("    %s %s %-22s %s", marker, swatch(layers.ColorFor(value, breaks)),
			util.TruncateString(t.Name, 22), layers.FormatFull(value, key))
	}
	return ""
}

// View renders the overlay list and, when the census layer is on, its legend.
func (l *LayersModel) View(width, height int) string {
	items := l.items()
	l.cursor = min(max(l.cursor, 0), len(items)-1)

	var lines []string
	lines = append(lines, LabelStyle.Render("Neighborhoods"))
	cursorLine := 0
	for i, item := range items {
		switch item.kind {
		case layerHeatmap:
			lines = append(lines, "", LabelStyle.Render("Density"))
		case layerDemographics:
			lines = append(lines, "", LabelStyle.Render("Demographics"))
		}
		text := l.label(item)
		if i == l.cursor {
			cursorLine = len(lines)
			text = SelectedRowStyle.Render("› ") + text
		} else {
			text = "  " + text
		}
		lines = append(lines, text)
	}

	if l.demographics {
		key := l.Metric().Key
		var legend []string
		for _, row := range layers.LegendRows(layers.Breaks(layers.Tracts, key), key) {
			legend = append(legend, swatch(row.Color)+" "+row.Label)
		}
		lines = append(lines, "", HelpDescStyle.Render(l.Metric().Label), strings.Join(legend, "  "))
	}

	visibleHeight := max(height-1, 1)
	if cursorLine < l.offset {
		l.offset = cursorLine
	}
	if cursorLine >= l.offset+visibleHeight {
		l.offset = cursorLine - visibleHeight + 1
	}
	end := min(l.offset+visibleHeight, len(lines))
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(strings.Join(lines[l.offset:end], "\n"))
}
