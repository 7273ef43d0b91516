package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/filter"
	"landscape/internal/hours"
	"landscape/internal/layers"
	"landscape/internal/model"
	"landscape/internal/spatial"
	"landscape/internal/util"
)

// DetailModel is the popup for a single competitor.
type DetailModel struct {
	taxonomy *catalog.Taxonomy
	entry    filter.Annotated
}

// NewDetailModel creates a detail view for entry.
func NewDetailModel(t *catalog.Taxonomy, entry filter.Annotated) *DetailModel {
	return &DetailModel{taxonomy: t, entry: entry}
}

// View renders the competitor's popup contents. The time window marks which
// rows of the hours table are being evaluated.
func (m *DetailModel) View(width, height int, status hours.Status, window hours.Window) string {
	c := m.entry.Competitor

	shortcuts := HelpDescStyle.Render("h back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	title := LabelStyle.Render(c.Name)
	switch status {
	case hours.Open:
		title += "  " + OpenBadgeStyle.Render(status.Label())
	case hours.Closed:
		title += "  " + ClosedBadgeStyle.Render(status.Label())
	}
	if c.OnSite {
		title += "  " + TimeBadgeStyle.Render("ON SITE")
	}

	subtitle := []string{swatch(m.taxonomy.ColorOf(c.Category)) + " " + m.taxonomy.Path(c.Category)}
	subtitle = append(subtitle, util.FormatDistance(m.entry.DistanceMiles))
	if c.PriceTier != "" {
		subtitle = append(subtitle, string(c.PriceTier))
	}
	if c.CuisineTag != "" {
		subtitle = append(subtitle, string(c.CuisineTag))
	}

	var fields []string
	fields = append(fields, title, HelpDescStyle.Render(strings.Join(subtitle, "  ·  ")))
	if c.Rating != nil {
		fields = append(fields, RatingStyle.Render(util.FormatStars(c.Rating))+" "+util.FormatRating(c.Rating)+" "+HelpDescStyle.Render(util.FormatReviews(c.ReviewCount)))
	}

	sections := []string{strings.Join(fields, "\n")}

	var info []string
	p := spatial.Point{Lat: c.Lat, Lng: c.Lng}
	if name, ok := layers.Locate(p); ok {
		info = append(info, renderField("Neighborhood", name))
	}
	if tract, ok := layers.TractAt(p); ok {
		info = append(info, renderField("Census tract", fmt.Sprintf("%s · median income %s", tract.Name, layers.FormatFull(tract.MedianIncome, layers.MedianIncome))))
	}
	info = append(info, renderField("Coordinates", fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)))
	if c.Website != "" {
		info = append(info, renderField("Website", c.Website))
	}
	if c.GoogleMapsURL != "" {
		info = append(info, renderField("Google Maps", c.GoogleMapsURL))
	}
	sections = append(sections, strings.Join(info, "\n"))

	if c.Note != "" {
		sections = append(sections, NormalRowStyle.Italic(true).Render(c.Note))
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(width-8, 0)))
	sections = append(sections, divider, LabelStyle.Render("Hours:"), m.renderHours(window))

	body := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *DetailModel) renderHours(window hours.Window) string {
	h := m.entry.Competitor.Hours
	if h == nil {
		return HelpDescStyle.Render("Hours not listed")
	}
	dayWidth, hoursWidth := 6, 20
	var rows []string
	for _, d := range model.Weekdays {
		value := "Closed"
		if dh, ok := h[d]; ok {
			value = dh[0] + " – " + dh[1]
		}
		style := NormalRowStyle
		marker := ""
		if window.Enabled && slices.Contains(window.Days, d) {
			style = style.Foreground(ColorViolet)
			marker = "◂"
		}
		rows = append(rows, renderTableRow([]string{d.Label(), value, marker}, []int{dayWidth, hoursWidth, 2}, style))
	}
	return strings.Join(rows, "\n")
}

