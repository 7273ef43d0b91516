package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/filter"
	"landscape/internal/hours"
	"landscape/internal/util"
)

// competitorRow is one visible competitor with everything needed to draw it.
type competitorRow struct {
	filter.Annotated
	status hours.Status
	dimmed bool
}

// CompetitorsModel is the sorted result list.
type CompetitorsModel struct {
	taxonomy *catalog.Taxonomy
	rows     []competitorRow
	total    int
	cursor   int
	offset   int

	viewportHeight int

	columns      []tableColumn
	activeColumn int
}

// NewCompetitorsModel creates an empty list.
func NewCompetitorsModel(t *catalog.Taxonomy) *CompetitorsModel {
	return &CompetitorsModel{
		taxonomy: t,
		columns: []tableColumn{
			{key: "name", label: "name", width: 26},
			{key: "category", label: "category", width: 22},
			{key: "distance", label: "dist", width: 8},
			{key: "rating", label: "rating", width: 8},
			{key: "reviews", label: "reviews", width: 8},
			{key: "price", label: "price", width: 6},
			{key: "cuisine", label: "cuisine", width: 12},
			{key: "status", label: "status", width: 8},
		},
	}
}

// SetRows replaces the list contents. total is the unfiltered dataset size.
func (m *CompetitorsModel) SetRows(rows []competitorRow, total int) {
	var selected string
	if c, ok := m.Selected(); ok {
		selected = c.Competitor.Key()
	}
	m.rows = rows
	m.total = total
	for i, r := range rows {
		if r.Competitor.Key() == selected {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
}

// Selected returns the row under the cursor.
func (m *CompetitorsModel) Selected() (filter.Annotated, bool) {
	if len(m.rows) == 0 {
		return filter.Annotated{}, false
	}
	return m.rows[m.cursor].Annotated, true
}

func (m *CompetitorsModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *CompetitorsModel) cellValue(row competitorRow, key string) string {
	c := row.Competitor
	switch key {
	case "name":
		return c.Name
	case "category":
		return m.taxonomy.Path(c.Category)
	case "distance":
		return util.FormatDistance(row.DistanceMiles)
	case "rating":
		return util.FormatRating(c.Rating)
	case "reviews":
		return util.FormatReviewCount(c.ReviewCount)
	case "price":
		return util.FormatOptional(string(c.PriceTier))
	case "cuisine":
		return util.FormatOptional(string(c.CuisineTag))
	case "status":
		return row.status.Label()
	default:
		return ""
	}
}

func (m *CompetitorsModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *CompetitorsModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *CompetitorsModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *CompetitorsModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *CompetitorsModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *CompetitorsModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *CompetitorsModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *CompetitorsModel) TableMeta() string {
	return "col " + strings.ToUpper(m.columns[m.activeColumn].label)
}

// View renders the list.
func (m *CompetitorsModel) View(width, height int, sortKey filter.SortKey) string {
	if len(m.rows) == 0 {
		emptyMsg := `    No competitors match the current filters.
    Press  a  to show every category, or  2  to open the filters.`
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(emptyMsg)
	}

	visible := m.visibleColumnIndexes()
	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		switch {
		case col.key == "distance" && sortKey == filter.SortByDistance:
			label += " ↑"
		case col.key == "rating" && sortKey == filter.SortByRating:
			label += " ↓"
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if len(widths) > 0 {
		sepTotal := (len(widths) - 1) * tableSeparatorWidth()
		extra := width - totalFixed - sepTotal - 2
		if extra > 0 {
			widths[len(widths)-1] += extra
		}
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := height - 3
	m.viewportHeight = visibleHeight
	var lines []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		row := m.rows[i]
		style := NormalRowStyle
		switch {
		case i == m.cursor:
			style = SelectedRowStyle
		case row.dimmed || row.status == hours.Closed:
			style = DimRowStyle
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			col := m.columns[idx]
			value := m.cellValue(row, col.key)
			switch col.key {
			case "name":
				value = swatch(m.taxonomy.ColorOf(row.Competitor.Category)) + " " + util.TruncateString(value, col.width-2)
			case "category", "cuisine":
				value = util.TruncateString(value, col.width)
			case "rating":
				if row.Competitor.Rating != nil && i != m.cursor && !row.dimmed {
					value = RatingStyle.Render(value + "★")
				}
			}
			cells = append(cells, value)
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}

	rowPos := fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(m.rows))
	meta := "  ·  " + m.TableMeta()
	status := StatusBarStyle.Render(fmt.Sprintf("%d of %d competitors%s  ·  sort %s%s", len(m.rows), m.total, rowPos, sortKey, meta))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(lines, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

func (m *CompetitorsModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}

// MoveDown moves the cursor down.
func (m *CompetitorsModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageHeight() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *CompetitorsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

func (m *CompetitorsModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

func (m *CompetitorsModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		if vh := m.pageHeight(); m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *CompetitorsModel) HalfPageDown(pageSize int) {
	m.cursor = min(m.cursor+pageSize/2, len(m.rows)-1)
	m.clampCursor()
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *CompetitorsModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-pageSize/2, 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
