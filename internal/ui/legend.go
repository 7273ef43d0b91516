package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/filter"
	"landscape/internal/model"
)

type legendEntry struct {
	super model.SuperCategoryID
	leaf  model.CategoryID
}

// LegendModel lists the shown categories grouped by super-category.
// Selecting an entry highlights it on the map and in the list.
type LegendModel struct {
	taxonomy *catalog.Taxonomy
	cursor   int
}

func NewLegendModel(t *catalog.Taxonomy) *LegendModel {
	return &LegendModel{taxonomy: t}
}

// entries lists groups with at least one shown child, followed by those
// children.
func (l *LegendModel) entries(s filter.State) []legendEntry {
	var out []legendEntry
	for _, sc := range l.taxonomy.Supers() {
		var children []legendEntry
		for _, c := range sc.Children {
			if s.Categories.Has(c.ID) {
				children = append(children, legendEntry{leaf: c.ID})
			}
		}
		if len(children) == 0 {
			continue
		}
		out = append(out, legendEntry{super: sc.ID})
		out = append(out, children...)
	}
	return out
}

// Selected returns the highlight target under the cursor.
func (l *LegendModel) Selected(s filter.State) (filter.Highlight, bool) {
	entries := l.entries(s)
	if len(entries) == 0 {
		return filter.Highlight{}, false
	}
	l.cursor = min(max(l.cursor, 0), len(entries)-1)
	e := entries[l.cursor]
	if e.super != "" {
		return filter.SuperHighlight(l.taxonomy, e.super), true
	}
	return filter.LeafHighlight(l.taxonomy, e.leaf), true
}

func (l *LegendModel) MoveDown(s filter.State) {
	if l.cursor < len(l.entries(s))-1 {
		l.cursor++
	}
}

func (l *LegendModel) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// View renders the legend. counts holds the visible competitors per category.
func (l *LegendModel) View(width, height int, s filter.State, h filter.Highlight, counts map[model.CategoryID]int) string {
	entries := l.entries(s)
	if len(entries) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No categories shown.")
	}
	l.cursor = min(max(l.cursor, 0), len(entries)-1)

	var lines []string
	for i, e := range entries {
		var text string
		style := NormalRowStyle
		if e.super != "" {
			sc, _ := l.taxonomy.Super(e.super)
			text = fmt.Sprintf("%s %s", swatch(sc.Color), LabelStyle.Render(sc.Label))
			if h.Super == e.super {
				text += " ◆"
			}
		} else {
			c, _ := l.taxonomy.Category(e.leaf)
			text = fmt.Sprintf("    %s %s (%d)", swatch(c.Color), c.Label, counts[c.ID])
			if h.Leaf == e.leaf {
				text += " ◆"
			}
			if h.Dims(e.leaf) {
				style = DimRowStyle
			}
		}
		if i == l.cursor {
			lines = append(lines, SelectedRowStyle.Render("› ")+style.Render(text))
		} else {
			lines = append(lines, "  "+style.Render(text))
		}
	}

	start := max(0, l.cursor-height+2)
	end := min(len(lines), start+max(height-1, 1))
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(strings.Join(lines[start:end], "\n"))
}
