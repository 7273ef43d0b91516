package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"landscape/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, k KeyMap, width int) string {
	switch screen {
	case model.ScreenCompetitors:
		return renderCompetitorsHelp(k, width)
	case model.ScreenFilters:
		return renderFiltersHelp(k, width)
	case model.ScreenMap:
		return renderMapHelp(k, width)
	case model.ScreenLayers:
		return renderLayersHelp(k, width)
	case model.ScreenLegend:
		return renderLegendHelp(k, width)
	case model.ScreenOSM:
		return renderOSMHelp(k, width)
	case model.ScreenDetail:
		return renderDetailHelp(k, width)
	default:
		return renderDefaultHelp(k, width)
	}
}

func renderCompetitorsHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		keyHelp(k.Select, "details"),
		bindingHelp(k.NextColumn),
		pairHelp(k.HideColumn, k.ShowColumns, "hide/show col"),
		bindingHelp(k.Sort),
		pairHelp(k.ShowAll, k.HideAll, "show/hide all"),
		bindingHelp(k.TimeFilter),
		pairHelp(k.Undo, k.Redo, "undo/redo"),
		pairHelp(k.PrevTab, k.NextTab, "tabs"),
	}
	return renderHelpLine(keys, width)
}

func renderFiltersHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		keyHelp(k.Select, "toggle"),
		pairHelp(k.Left, k.Right, "collapse/expand · hour -/+"),
		pairHelp(k.ShowAll, k.HideAll, "show/hide all"),
		bindingHelp(k.Clip),
		pairHelp(k.Undo, k.Redo, "undo/redo"),
	}
	return renderHelpLine(keys, width)
}

func renderMapHelp(k KeyMap, width int) string {
	keys := []string{
		bindingHelp(k.Clip),
		bindingHelp(k.TimeFilter),
		bindingHelp(k.FetchOSM),
		pairHelp(k.PrevTab, k.NextTab, "tabs"),
		bindingHelp(k.Quit),
	}
	return renderHelpLine(keys, width)
}

func renderLayersHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		keyHelp(k.Select, "toggle"),
		bindingHelp(k.Metric),
		pairHelp(k.Left, k.Right, "prev/next metric"),
		pairHelp(k.PrevTab, k.NextTab, "tabs"),
	}
	return renderHelpLine(keys, width)
}

func renderLegendHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		bindingHelp(k.Highlight),
		bindingHelp(k.ClearHighlight),
		pairHelp(k.PrevTab, k.NextTab, "tabs"),
	}
	return renderHelpLine(keys, width)
}

func renderOSMHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		keyHelp(k.FetchOSM, "fetch"),
		pairHelp(k.PrevTab, k.NextTab, "tabs"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Left, k.Back, "back"),
		bindingHelp(k.TimeFilter),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(k KeyMap, width int) string {
	keys := []string{
		pairHelp(k.Down, k.Up, "navigate"),
		pairHelp(k.Left, k.Right, "back/select"),
		bindingHelp(k.Quit),
	}
	return renderHelpLine(keys, width)
}

// firstKey is the key shown for b in compact footers.
func firstKey(b key.Binding) string {
	if keys := b.Keys(); len(keys) > 0 {
		return keys[0]
	}
	return b.Help().Key
}

func bindingHelp(b key.Binding) string {
	h := b.Help()
	return helpKey(h.Key, h.Desc)
}

func keyHelp(b key.Binding, desc string) string {
	return helpKey(firstKey(b), desc)
}

func pairHelp(a, b key.Binding, desc string) string {
	return helpKey(firstKey(a)+"/"+firstKey(b), desc)
}

func allKeys(bs ...key.Binding) string {
	var keys []string
	for _, b := range bs {
		keys = append(keys, b.Keys()...)
	}
	return strings.Join(keys, " / ")
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(k KeyMap, width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{allKeys(k.Down), "Move down"},
			{allKeys(k.Up), "Move up"},
			{allKeys(k.PrevTab, k.NextTab), "Previous / next tab"},
			{"1-6", "Jump to tab"},
			{k.Top.Help().Key, "Jump to top"},
			{allKeys(k.Bottom), "Jump to bottom"},
			{allKeys(k.HalfPageDown, k.HalfPageUp), "Half page down / up"},
			{allKeys(k.Back), "Back"},
			{allKeys(k.Quit), "Quit"},
			{allKeys(k.Help), "Toggle help"},
		}),
		titleSection("Filters (any screen)"),
		helpSection([]helpItem{
			{allKeys(k.ShowAll, k.HideAll), "Show all / hide all categories"},
			{allKeys(k.Sort), "Sort by distance or rating"},
			{allKeys(k.Clip), "Clip to the outermost selected ring"},
			{allKeys(k.TimeFilter), "Mark open / closed during the time window"},
			{allKeys(k.Undo, k.Redo), "Undo / redo a filter change"},
		}),
		titleSection("Competitors"),
		helpSection([]helpItem{
			{allKeys(k.Select, k.Right), "Open competitor detail"},
			{allKeys(k.NextColumn, k.PrevColumn), "Cycle active column"},
			{firstKey(k.ColumnJump) + " then 1-8", "Jump to column"},
			{allKeys(k.HideColumn, k.ShowColumns), "Hide active column / show all"},
		}),
		titleSection("Filters panel"),
		helpSection([]helpItem{
			{allKeys(k.Select), "Toggle the item under the cursor"},
			{allKeys(k.Right, k.Left), "Expand / collapse a group, move an hour slider"},
		}),
		titleSection("Layers, legend and OSM"),
		helpSection([]helpItem{
			{allKeys(k.Select), "Toggle overlay"},
			{allKeys(k.Highlight), "Highlight category"},
			{allKeys(k.ClearHighlight), "Clear highlight"},
			{allKeys(k.Metric), "Next census metric"},
			{allKeys(k.FetchOSM), "Fetch places from OpenStreetMap"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(keyHelp(k.Back, "close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
