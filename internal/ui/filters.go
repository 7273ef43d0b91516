package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/filter"
	"landscape/internal/hours"
	"landscape/internal/model"
	"landscape/internal/spatial"
)

type filterItemKind int

const (
	itemShowAll filterItemKind = iota
	itemHideAll
	itemSuper
	itemCategory
	itemPrice
	itemCuisine
	itemClearFilters
	itemSelectAllCuisine
	itemRing
	itemClip
	itemSort
	itemTimeToggle
	itemDay
	itemStartHour
	itemEndHour
)

type filterItem struct {
	kind     filterItemKind
	section  string
	super    model.SuperCategoryID
	category model.CategoryID
	price    model.PriceTier
	cuisine  model.CuisineTag
	ring     float64
	day      model.DayOfWeek
}

// FiltersModel is the sidebar: category accordion, price and cuisine chips,
// rings, sort and the opening-hours window.
type FiltersModel struct {
	taxonomy *catalog.Taxonomy
	expanded map[model.SuperCategoryID]bool
	cursor   int
	offset   int
}

// NewFiltersModel creates the panel with every group collapsed.
func NewFiltersModel(t *catalog.Taxonomy) *FiltersModel {
	return &FiltersModel{
		taxonomy: t,
		expanded: make(map[model.SuperCategoryID]bool),
	}
}

func (f *FiltersModel) items(s filter.State) []filterItem {
	items := []filterItem{
		{kind: itemShowAll, section: "Categories"},
		{kind: itemHideAll, section: "Categories"},
	}
	for _, sc := range f.taxonomy.Supers() {
		items = append(items, filterItem{kind: itemSuper, section: "Categories", super: sc.ID})
		if !f.expanded[sc.ID] {
			continue
		}
		for _, c := range sc.Children {
			items = append(items, filterItem{kind: itemCategory, section: "Categories", super: sc.ID, category: c.ID})
		}
	}

	for _, p := range catalog.PriceTiers {
		items = append(items, filterItem{kind: itemPrice, section: "Price", price: p})
	}
	if s.AnyDiningActive(f.taxonomy) {
		for _, tag := range catalog.CuisineTags {
			items = append(items, filterItem{kind: itemCuisine, section: "Cuisine", cuisine: tag})
		}
		items = append(items,
			filterItem{kind: itemSelectAllCuisine, section: "Cuisine"},
			filterItem{kind: itemClearFilters, section: "Cuisine"},
		)
	} else {
		items = append(items, filterItem{kind: itemClearFilters, section: "Price"})
	}

	for _, r := range spatial.DistanceRings {
		items = append(items, filterItem{kind: itemRing, section: "Distance", ring: r.Miles})
	}
	items = append(items,
		filterItem{kind: itemClip, section: "Distance"},
		filterItem{kind: itemSort, section: "Sort"},
		filterItem{kind: itemTimeToggle, section: "Open hours"},
	)
	if s.Time.Enabled {
		for _, d := range model.Weekdays {
			items = append(items, filterItem{kind: itemDay, section: "Open hours", day: d})
		}
		items = append(items,
			filterItem{kind: itemStartHour, section: "Open hours"},
			filterItem{kind: itemEndHour, section: "Open hours"},
		)
	}
	return items
}

func (f *FiltersModel) current(s filter.State) (filterItem, bool) {
	items := f.items(s)
	if len(items) == 0 {
		return filterItem{}, false
	}
	f.cursor = min(max(f.cursor, 0), len(items)-1)
	return items[f.cursor], true
}

// Activate returns the mutation for the item under the cursor. ok is false
// when the item has no filter effect.
func (f *FiltersModel) Activate(s filter.State) (label string, mutate func(*filter.State), ok bool) {
	item, found := f.current(s)
	if !found {
		return "", nil, false
	}
	t := f.taxonomy
	switch item.kind {
	case itemShowAll:
		return "Showing all categories", func(s *filter.State) { s.ShowAll(t) }, true
	case itemHideAll:
		return "Hid all categories", func(s *filter.State) { s.HideAll() }, true
	case itemSuper:
		sc, _ := t.Super(item.super)
		return "Toggled " + sc.Label, func(s *filter.State) { s.ToggleSuperCategory(t, item.super) }, true
	case itemCategory:
		return "Toggled " + t.Path(item.category), func(s *filter.State) { s.ToggleCategory(item.category) }, true
	case itemPrice:
		return "Toggled price " + string(item.price), func(s *filter.State) { s.TogglePriceTier(item.price) }, true
	case itemCuisine:
		return "Toggled cuisine " + string(item.cuisine), func(s *filter.State) { s.ToggleCuisineTag(item.cuisine) }, true
	case itemClearFilters:
		return "Cleared price and cuisine filters", func(s *filter.State) { s.ClearFilters() }, true
	case itemSelectAllCuisine:
		return "Selected every cuisine", func(s *filter.State) { s.SelectAllCuisine() }, true
	case itemRing:
		ring, _ := spatial.RingByMiles(item.ring)
		return "Toggled " + ring.Label + " ring", func(s *filter.State) { s.ToggleRing(item.ring) }, true
	case itemClip:
		on := !s.Clip
		return fmt.Sprintf("Clip to rings %s", onOff(on)), func(s *filter.State) { s.SetClip(on) }, true
	case itemSort:
		next := nextSort(s.Sort)
		return "Sorted by " + next.String(), func(s *filter.State) { s.SetSort(next) }, true
	case itemTimeToggle:
		return fmt.Sprintf("Time filter %s", onOff(!s.Time.Enabled)), func(s *filter.State) { s.ToggleTimeFilter() }, true
	case itemDay:
		return "Toggled " + item.day.Label(), func(s *filter.State) { s.ToggleDay(item.day) }, true
	}
	return "", nil, false
}

// Adjust handles left/right: it collapses or expands a group, or nudges an
// hour slider by delta.
func (f *FiltersModel) Adjust(delta int, s filter.State) (label string, mutate func(*filter.State), ok bool) {
	item, found := f.current(s)
	if !found {
		return "", nil, false
	}
	switch item.kind {
	case itemSuper:
		f.expanded[item.super] = delta > 0
	case itemCategory:
		if delta < 0 {
			f.expanded[item.super] = false
			f.focusSuper(item.super, s)
		}
	case itemStartHour:
		h := s.Time.Start + delta
		return "Start " + hours.FormatHour(min(max(h, hours.MinHour), hours.MaxHour)), func(s *filter.State) { s.SetStartHour(h) }, true
	case itemEndHour:
		h := s.Time.End + delta
		return "End " + hours.FormatHour(min(max(h, hours.MinHour), hours.MaxHour)), func(s *filter.State) { s.SetEndHour(h) }, true
	}
	return "", nil, false
}

func (f *FiltersModel) focusSuper(id model.SuperCategoryID, s filter.State) {
	for i, item := range f.items(s) {
		if item.kind == itemSuper && item.super == id {
			f.cursor = i
			return
		}
	}
}

func (f *FiltersModel) MoveDown(s filter.State) {
	if f.cursor < len(f.items(s))-1 {
		f.cursor++
	}
}

func (f *FiltersModel) MoveUp() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *FiltersModel) JumpToTop() {
	f.cursor = 0
	f.offset = 0
}

func (f *FiltersModel) JumpToBottom(s filter.State) {
	f.cursor = len(f.items(s)) - 1
}

func (f *FiltersModel) label(item filterItem, s filter.State, counts map[model.CategoryID]int) string {
	t := f.taxonomy
	switch item.kind {
	case itemShowAll:
		return "Show all"
	case itemHideAll:
		return "Hide all"
	case itemSuper:
		sc, _ := t.Super(item.super)
		active, total := 0, 0
		for _, c := range sc.Children {
			if s.Categories.Has(c.ID) {
				active++
			}
			total += counts[c.ID]
		}
		box := "[~]"
		switch active {
		case 0:
			box = checkbox(false)
		case len(sc.Children):
			box = checkbox(true)
		}
		arrow := "▸"
		if f.expanded[sc.ID] {
			arrow = "▾"
		}
		return fmt.Sprintf("%s %s %s %s (%d)", arrow, box, swatch(sc.Color), sc.Label, total)
	case itemCategory:
		c, _ := t.Category(item.category)
		return fmt.Sprintf("    %s %s %s (%d)", checkbox(s.Categories.Has(c.ID)), swatch(c.Color), c.Label, counts[c.ID])
	case itemPrice:
		return fmt.Sprintf("%s %s", checkbox(s.PriceTiers.Has(item.price)), item.price)
	case itemCuisine:
		return fmt.Sprintf("%s %s", checkbox(s.Cuisines.Has(item.cuisine)), item.cuisine)
	case itemClearFilters:
		return "Clear filters"
	case itemSelectAllCuisine:
		return "Select all cuisine"
	case itemRing:
		ring, _ := spatial.RingByMiles(item.ring)
		return fmt.Sprintf("%s %s ring", checkbox(s.Rings.Has(item.ring)), ring.Label)
	case itemClip:
		return checkbox(s.Clip) + " Only show competitors inside the outermost ring"
	case itemSort:
		return "Sort by: " + LabelStyle.Render(s.Sort.String())
	case itemTimeToggle:
		line := checkbox(s.Time.Enabled) + " Mark open / closed during a window"
		if s.Time.Enabled {
			line += "  " + TimeBadgeStyle.Render(s.Time.Window().Badge())
		}
		return line
	case itemDay:
		return fmt.Sprintf("    %s %s", checkbox(s.Time.Days.Has(item.day)), item.day.Label())
	case itemStartHour:
		return fmt.Sprintf("    Start  ‹ %s ›", hours.FormatHour(s.Time.Start))
	case itemEndHour:
		return fmt.Sprintf("    End    ‹ %s ›", hours.FormatHour(s.Time.End))
	}
	return ""
}

// View renders the panel.
func (f *FiltersModel) View(width, height int, s filter.State, counts map[model.CategoryID]int) string {
	items := f.items(s)
	f.cursor = min(max(f.cursor, 0), len(items)-1)

	var lines []string
	cursorLine := 0
	section := ""
	for i, item := range items {
		if item.section != section {
			section = item.section
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, LabelStyle.Render(section))
		}
		text := f.label(item, s, counts)
		if i == f.cursor {
			cursorLine = len(lines)
			text = SelectedRowStyle.Render("› ") + text
		} else {
			text = "  " + text
		}
		lines = append(lines, text)
	}

	visibleHeight := max(height-1, 1)
	if cursorLine < f.offset {
		f.offset = cursorLine
	}
	if cursorLine >= f.offset+visibleHeight {
		f.offset = cursorLine - visibleHeight + 1
	}
	end := min(f.offset+visibleHeight, len(lines))
	body := strings.Join(lines[f.offset:end], "\n")

	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(body)
}

func nextSort(k filter.SortKey) filter.SortKey {
	if k == filter.SortByDistance {
		return filter.SortByRating
	}
	return filter.SortByDistance
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
