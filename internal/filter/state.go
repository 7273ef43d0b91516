package filter

import (
	"landscape/internal/catalog"
	"landscape/internal/hours"
	"landscape/internal/model"
	"landscape/internal/spatial"
)

// SortKey selects the result ordering.
type SortKey int

const (
	SortByDistance SortKey = iota
	SortByRating
)

func (k SortKey) String() string {
	if k == SortByRating {
		return "rating"
	}
	return "distance"
}

// ParseSortKey accepts "distance" or "rating".
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "distance":
		return SortByDistance, true
	case "rating":
		return SortByRating, true
	}
	return SortByDistance, false
}

// TimeFilter is the day/hour window used to mark competitors open or closed.
type TimeFilter struct {
	Enabled bool
	Days    Set[model.DayOfWeek]
	Start   int
	End     int
}

// Window returns the filter as an hours.Window with days in calendar order.
func (tf TimeFilter) Window() hours.Window {
	w := hours.Window{Enabled: tf.Enabled, Start: tf.Start, End: tf.End}
	for _, d := range model.Weekdays {
		if tf.Days.Has(d) {
			w.Days = append(w.Days, d)
		}
	}
	return w
}

// State is everything the user can change about what is shown.
type State struct {
	Categories Set[model.CategoryID]
	PriceTiers Set[model.PriceTier]
	Cuisines   Set[model.CuisineTag]
	Rings      Set[float64]
	Clip       bool
	Sort       SortKey
	Time       TimeFilter
}

// DefaultState is the state a fresh session starts in: nothing shown, every
// ring drawn without clipping, every tier and cuisine allowed.
func DefaultState() State {
	rings := NewSet[float64]()
	for _, r := range spatial.DistanceRings {
		rings.Add(r.Miles)
	}
	return State{
		Categories: NewSet[model.CategoryID](),
		PriceTiers: NewSet(catalog.PriceTiers...),
		Cuisines:   NewSet(catalog.CuisineTags...),
		Rings:      rings,
		Sort:       SortByDistance,
		Time: TimeFilter{
			Days:  NewSet(model.Friday, model.Sunday),
			Start: 14,
			End:   18,
		},
	}
}

// Clone returns a deep copy so snapshots are never aliased.
func (s State) Clone() State {
	out := s
	out.Categories = s.Categories.Clone()
	out.PriceTiers = s.PriceTiers.Clone()
	out.Cuisines = s.Cuisines.Clone()
	out.Rings = s.Rings.Clone()
	out.Time.Days = s.Time.Days.Clone()
	return out
}

// Equal compares two states member by member.
func (s State) Equal(o State) bool {
	return s.Categories.Equal(o.Categories) &&
		s.PriceTiers.Equal(o.PriceTiers) &&
		s.Cuisines.Equal(o.Cuisines) &&
		s.Rings.Equal(o.Rings) &&
		s.Clip == o.Clip &&
		s.Sort == o.Sort &&
		s.Time.Enabled == o.Time.Enabled &&
		s.Time.Days.Equal(o.Time.Days) &&
		s.Time.Start == o.Time.Start &&
		s.Time.End == o.Time.End
}

func (s *State) ToggleCategory(id model.CategoryID) {
	s.Categories.Toggle(id)
}

// ToggleSuperCategory deactivates every child when all are active and
// activates every child otherwise.
func (s *State) ToggleSuperCategory(t *catalog.Taxonomy, id model.SuperCategoryID) {
	sc, ok := t.Super(id)
	if !ok {
		return
	}
	allActive := true
	for _, c := range sc.Children {
		if !s.Categories.Has(c.ID) {
			allActive = false
			break
		}
	}
	for _, c := range sc.Children {
		if allActive {
			s.Categories.Remove(c.ID)
		} else {
			s.Categories.Add(c.ID)
		}
	}
}

func (s *State) ShowAll(t *catalog.Taxonomy) {
	s.Categories = NewSet(t.AllCategoryIDs()...)
}

func (s *State) HideAll() {
	s.Categories = NewSet[model.CategoryID]()
}

func (s *State) ToggleRing(miles float64) {
	s.Rings.Toggle(miles)
}

func (s *State) SetClip(on bool) {
	s.Clip = on
}

func (s *State) TogglePriceTier(p model.PriceTier) {
	s.PriceTiers.Toggle(p)
}

func (s *State) ToggleCuisineTag(tag model.CuisineTag) {
	s.Cuisines.Toggle(tag)
}

// ClearFilters empties the price and cuisine selections.
func (s *State) ClearFilters() {
	s.PriceTiers = NewSet[model.PriceTier]()
	s.Cuisines = NewSet[model.CuisineTag]()
}

func (s *State) SelectAllCuisine() {
	s.Cuisines = NewSet(catalog.CuisineTags...)
}

func (s *State) ToggleDay(d model.DayOfWeek) {
	s.Time.Days.Toggle(d)
}

// SetStartHour moves the start hour, dragging the end hour along when needed.
func (s *State) SetStartHour(h int) {
	w := s.Time.Window()
	w.SetStart(h)
	s.Time.Start, s.Time.End = w.Start, w.End
}

// SetEndHour moves the end hour, dragging the start hour along when needed.
func (s *State) SetEndHour(h int) {
	w := s.Time.Window()
	w.SetEnd(h)
	s.Time.Start, s.Time.End = w.Start, w.End
}

// SetHours sets both ends of the window at once. Unlike the sliders it does
// not couple them, so start may be after end for a window past midnight.
func (s *State) SetHours(start, end int) {
	s.Time.Start = hours.ClampHour(start)
	s.Time.End = hours.ClampHour(end)
}

func (s *State) ToggleTimeFilter() {
	s.Time.Enabled = !s.Time.Enabled
}

func (s *State) SetSort(k SortKey) {
	s.Sort = k
}

// AnyDiningActive reports whether any dining-family category is shown. The
// cuisine filter only applies while this holds.
func (s State) AnyDiningActive(t *catalog.Taxonomy) bool {
	for id := range s.Categories {
		if t.IsDining(id) {
			return true
		}
	}
	return false
}

// MaxRingMiles returns the distance clip limit. ok is false when clipping is
// off or no ring is selected.
func (s State) MaxRingMiles() (float64, bool) {
	if !s.Clip || s.Rings.Len() == 0 {
		return 0, false
	}
	limit := 0.0
	for m := range s.Rings {
		if m > limit {
			limit = m
		}
	}
	return limit, true
}
