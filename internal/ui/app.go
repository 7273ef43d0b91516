package ui

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/db"
	"landscape/internal/filter"
	"landscape/internal/model"
	"landscape/internal/search"
	"landscape/internal/spatial"
)

// Model is the root Bubble Tea model.
type Model struct {
	db               *sql.DB
	poiSource        search.POISource
	termCapabilities TerminalCapabilities
	screen           model.Screen
	returnTo         model.Screen
	gState           GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool
	loaded      bool

	engine     filter.Engine
	dataset    []model.Competitor
	counts     map[model.CategoryID]int
	filters    filter.State
	visible    []filter.Annotated
	highlight  filter.Highlight
	enrichment search.Enrichment
	spinner    spinner.Model

	// Screen models
	competitors *CompetitorsModel
	filterPanel *FiltersModel
	detail      *DetailModel
	mapView     *MapModel
	layers      *LayersModel
	legend      *LegendModel
	osm         *OSMModel

	keys      KeyMap
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model. A nil database reads the bundled dataset; a
// nil source disables OpenStreetMap enrichment.
func New(database *sql.DB, source search.POISource, termCaps TerminalCapabilities) Model {
	engine := filter.NewEngine()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)
	return Model{
		db:               database,
		poiSource:        source,
		termCapabilities: termCaps,
		screen:           model.ScreenCompetitors,
		gState:           GStateIdle,
		engine:           engine,
		filters:          filter.DefaultState(),
		spinner:          s,
		competitors:      NewCompetitorsModel(engine.Taxonomy),
		filterPanel:      NewFiltersModel(engine.Taxonomy),
		mapView:          NewMapModel(termCaps),
		layers:           NewLayersModel(),
		legend:           NewLegendModel(engine.Taxonomy),
		osm:              NewOSMModel(engine.Taxonomy),
		keys:             DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.db)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.columnJump {
			if key.Matches(msg, m.keys.Back) {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				if m.competitors.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if key.Matches(msg, m.keys.Back) {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.DatasetLoadedMsg:
		m.dataset = msg.Competitors
		m.counts = filter.CountByCategory(m.dataset)
		m.loaded = true
		m.error = ""
		m.recompute()
		log.Printf("dataset loaded: %d competitors", len(m.dataset))
		return m, nil

	case osmLoadedMsg:
		m.enrichment.Finish(msg.pois, msg.err)
		if msg.err != nil {
			log.Printf("overpass fetch failed: %v", msg.err)
		} else {
			log.Printf("overpass fetch returned %d places", len(msg.pois))
		}
		return m, nil

	case spinner.TickMsg:
		if m.enrichment.State != search.EnrichmentLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// recompute rebuilds the visible list from the dataset and filter state.
func (m *Model) recompute() {
	m.visible = m.engine.VisibleAndSorted(m.dataset, m.filters)
	rows := make([]competitorRow, len(m.visible))
	for i, a := range m.visible {
		rows[i] = competitorRow{
			Annotated: a,
			status:    m.engine.StatusOf(a.Competitor, m.filters),
			dimmed:    m.highlight.Dims(a.Competitor.Category),
		}
	}
	m.competitors.SetRows(rows, len(m.dataset))
}

// visibleCounts counts the visible competitors per category.
func (m *Model) visibleCounts() map[model.CategoryID]int {
	counts := make(map[model.CategoryID]int)
	for _, a := range m.visible {
		counts[a.Competitor.Category]++
	}
	return counts
}

func (m *Model) scene() mapScene {
	s := mapScene{
		center:        m.engine.Reference,
		choropleth:    m.layers.Choropleth(),
		heat:          m.layers.Heatmap(),
		neighborhoods: m.layers.ActiveNeighborhoods(),
		pois:          m.enrichment.POIs,
	}
	for _, miles := range m.filters.Rings.Sorted() {
		if r, ok := spatial.RingByMiles(miles); ok {
			s.rings = append(s.rings, r)
		}
	}
	for _, a := range m.visible {
		c := a.Competitor
		s.markers = append(s.markers, mapMarker{
			point:  spatial.Point{Lat: c.Lat, Lng: c.Lng},
			color:  m.engine.Taxonomy.ColorOf(c.Category),
			status: m.engine.StatusOf(c, m.filters),
			dimmed: m.highlight.Dims(c.Category),
		})
	}
	return s
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.keys, m.width, m.height)
	}

	showTabs := m.screen != model.ScreenDetail

	// header + footer + padding, and two more lines for the tab bar
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	var content string
	breadcrumbParts := []string{m.screen.String()}

	switch {
	case !m.loaded:
		content = EmptyStateStyle.Render("Loading competitors…")
	case m.screen == model.ScreenCompetitors:
		content = m.competitors.View(m.width, contentHeight, m.filters.Sort)
	case m.screen == model.ScreenFilters:
		content = m.filterPanel.View(m.width, contentHeight, m.filters, m.counts)
	case m.screen == model.ScreenMap:
		content = m.mapView.View(m.width, contentHeight, m.scene())
	case m.screen == model.ScreenLayers:
		content = m.layers.View(m.width, contentHeight)
	case m.screen == model.ScreenLegend:
		content = m.legend.View(m.width, contentHeight, m.filters, m.highlight, m.visibleCounts())
	case m.screen == model.ScreenOSM:
		content = m.osm.View(m.width, contentHeight, m.enrichment, m.poiSource != nil, m.spinner.View())
	case m.screen == model.ScreenDetail:
		if m.detail != nil {
			c := m.detail.entry.Competitor
			breadcrumbParts = []string{m.returnTo.String(), c.Name}
			content = m.detail.View(m.width, contentHeight, m.engine.StatusOf(c, m.filters), m.filters.Time.Window())
		}
	}

	header := m.renderHeader(breadcrumbParts)
	footer := RenderHelp(m.screen, m.keys, m.width)

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for i, tab := range model.TopLevelScreens {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == tab {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(fmt.Sprintf("%d %s", i+1, tab)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func (m Model) renderHeader(breadcrumbParts []string) string {
	title := HeaderStyle.Render("landscape")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: time window badge and enrichment state
	var status []string
	if m.filters.Time.Enabled {
		status = append(status, TimeBadgeStyle.Render(m.filters.Time.Window().Badge()))
	}
	if m.highlight.Active() {
		status = append(status, BreadcrumbActiveStyle.Render("◆ "+m.highlightLabel()))
	}
	if m.poiSource != nil {
		status = append(status, BreadcrumbStyle.Render(m.enrichment.Summary()))
	}
	right := strings.Join(status, BreadcrumbStyle.Render("  ·  ")) + "  "

	padding := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) highlightLabel() string {
	t := m.engine.Taxonomy
	if m.highlight.Super != "" {
		sc, _ := t.Super(m.highlight.Super)
		return sc.Label
	}
	return t.Path(m.highlight.Leaf)
}

// handleNavMode handles key input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenCompetitors {
		t := tableController(m.competitors)
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-8 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			return m, nil
		}
	}

	tax := m.engine.Taxonomy
	switch {
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return m, nil
	case key.Matches(msg, m.keys.ShowAll):
		m.applyFilter("Showing all categories", func(s *filter.State) { s.ShowAll(tax) })
		return m, nil
	case key.Matches(msg, m.keys.HideAll):
		m.applyFilter("Hid all categories", func(s *filter.State) { s.HideAll() })
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		next := nextSort(m.filters.Sort)
		m.applyFilter("Sorted by "+next.String(), func(s *filter.State) { s.SetSort(next) })
		return m, nil
	case key.Matches(msg, m.keys.Clip):
		on := !m.filters.Clip
		m.applyFilter("Clip to rings "+onOff(on), func(s *filter.State) { s.SetClip(on) })
		return m, nil
	case key.Matches(msg, m.keys.TimeFilter):
		m.applyFilter("Time filter "+onOff(!m.filters.Time.Enabled), func(s *filter.State) { s.ToggleTimeFilter() })
		return m, nil
	case key.Matches(msg, m.keys.FetchOSM):
		return m, m.startEnrichment()
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
		return m, nil
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(model.TopLevelScreens) {
		m.screen = model.TopLevelScreens[n-1]
		return m, nil
	}

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		return m.handleJumpToTop()
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenCompetitors:
		return m.handleCompetitorsNav(msg)
	case model.ScreenFilters:
		return m.handleFiltersNav(msg)
	case model.ScreenLayers:
		return m.handleLayersNav(msg)
	case model.ScreenLegend:
		return m.handleLegendNav(msg)
	case model.ScreenOSM:
		return m.handleOSMNav(msg)
	case model.ScreenDetail:
		return m.handleDetailNav(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) switchTab(delta int) {
	current := 0
	for i, s := range model.TopLevelScreens {
		if s == m.screen {
			current = i
		}
	}
	n := len(model.TopLevelScreens)
	m.screen = model.TopLevelScreens[((current+delta)%n+n)%n]
}

func (m *Model) startEnrichment() tea.Cmd {
	if m.poiSource == nil {
		m.info = "OpenStreetMap enrichment is disabled"
		return nil
	}
	if !m.enrichment.Begin() {
		return nil
	}
	m.screen = model.ScreenOSM
	return tea.Batch(m.spinner.Tick, fetchPOIsCmd(m.poiSource))
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenCompetitors:
		m.competitors.JumpToTop()
	case model.ScreenFilters:
		m.filterPanel.JumpToTop()
	}
	return m, nil
}

// Navigation handlers for each screen
func (m Model) handleCompetitorsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select, m.keys.Right):
		if entry, ok := m.competitors.Selected(); ok {
			m.detail = NewDetailModel(m.engine.Taxonomy, entry)
			m.returnTo = m.screen
			m.screen = model.ScreenDetail
		}
	case key.Matches(msg, m.keys.Down):
		m.competitors.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.competitors.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.competitors.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.competitors.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.competitors.HalfPageUp(m.height / 2)
	}
	return m, nil
}

func (m Model) handleFiltersNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.filterPanel.MoveDown(m.filters)
	case key.Matches(msg, m.keys.Up):
		m.filterPanel.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.filterPanel.JumpToBottom(m.filters)
	case key.Matches(msg, m.keys.Select):
		if label, mutate, ok := m.filterPanel.Activate(m.filters); ok {
			m.applyFilter(label, mutate)
		}
	case key.Matches(msg, m.keys.Right):
		if label, mutate, ok := m.filterPanel.Adjust(1, m.filters); ok {
			m.applyFilter(label, mutate)
		}
	case key.Matches(msg, m.keys.Left):
		if label, mutate, ok := m.filterPanel.Adjust(-1, m.filters); ok {
			m.applyFilter(label, mutate)
		}
	}
	return m, nil
}

func (m Model) handleLayersNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.layers.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.layers.MoveUp()
	case key.Matches(msg, m.keys.Select):
		m.info = m.layers.Activate()
	case key.Matches(msg, m.keys.Metric):
		m.info = m.layers.CycleMetric(1)
	case key.Matches(msg, m.keys.Right):
		if label := m.layers.Adjust(1); label != "" {
			m.info = label
		}
	case key.Matches(msg, m.keys.Left):
		if label := m.layers.Adjust(-1); label != "" {
			m.info = label
		}
	}
	return m, nil
}

func (m Model) handleLegendNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.legend.MoveDown(m.filters)
	case key.Matches(msg, m.keys.Up):
		m.legend.MoveUp()
	case key.Matches(msg, m.keys.Highlight):
		if next, ok := m.legend.Selected(m.filters); ok {
			m.setHighlight(filter.ToggleHighlight(m.highlight, next))
		}
	case key.Matches(msg, m.keys.ClearHighlight):
		m.setHighlight(filter.Highlight{})
	}
	return m, nil
}

func (m *Model) setHighlight(h filter.Highlight) {
	m.highlight = h
	if h.Active() {
		m.info = "Highlighting " + m.highlightLabel()
	} else {
		m.info = "Highlight cleared"
	}
	m.recompute()
}

func (m Model) handleOSMNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.osm.MoveDown(len(m.enrichment.POIs))
	case key.Matches(msg, m.keys.Up):
		m.osm.MoveUp()
	}
	return m, nil
}

func (m Model) handleDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back, m.keys.Left, m.keys.Quit) {
		m.screen = m.returnTo
		m.detail = nil
	}
	return m, nil
}

func loadDatasetCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		var list []model.Competitor
		var err error
		if database == nil {
			list, err = catalog.Load()
		} else {
			list, err = db.ListCompetitors(database)
		}
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if err := catalog.Validate(catalog.Default, list); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("invalid dataset: %w", err)}
		}
		return model.DatasetLoadedMsg{Competitors: list}
	}
}

func fetchPOIsCmd(source search.POISource) tea.Cmd {
	return func() tea.Msg {
		pois, err := source.FetchPOIs(context.Background())
		return osmLoadedMsg{pois: pois, err: err}
	}
}
