package filter

import (
	"cmp"
	"slices"

	"landscape/internal/catalog"
	"landscape/internal/hours"
	"landscape/internal/model"
	"landscape/internal/spatial"
)

// Annotated pairs a competitor with its distance from the reference point.
// It is built fresh on every recompute.
type Annotated struct {
	Competitor    model.Competitor
	DistanceMiles float64
}

// Engine applies a filter State to a dataset.
type Engine struct {
	Reference spatial.Point
	Taxonomy  *catalog.Taxonomy
}

// NewEngine returns an engine anchored at the bundled reference property.
func NewEngine() Engine {
	return Engine{
		Reference: catalog.Reference.Point,
		Taxonomy:  catalog.Default,
	}
}

// Distance returns the great-circle distance of c from the reference point.
func (e Engine) Distance(c model.Competitor) float64 {
	return spatial.DistanceMiles(e.Reference, spatial.Point{Lat: c.Lat, Lng: c.Lng})
}

// Include reports whether c passes every filter clause. Opening hours never
// exclude.
func (e Engine) Include(c model.Competitor, s State) bool {
	return e.include(c, e.Distance(c), s)
}

func (e Engine) include(c model.Competitor, dist float64, s State) bool {
	if !s.Categories.Has(c.Category) {
		return false
	}
	if c.PriceTier != "" && !s.PriceTiers.Has(c.PriceTier) {
		return false
	}
	if c.CuisineTag != "" && e.Taxonomy.IsDining(c.Category) && !s.Cuisines.Has(c.CuisineTag) {
		return false
	}
	if limit, ok := s.MaxRingMiles(); ok && dist > limit {
		return false
	}
	return true
}

// VisibleAndSorted filters the dataset and orders what remains. Ties keep
// dataset order.
func (e Engine) VisibleAndSorted(dataset []model.Competitor, s State) []Annotated {
	out := make([]Annotated, 0, len(dataset))
	for _, c := range dataset {
		dist := e.Distance(c)
		if e.include(c, dist, s) {
			out = append(out, Annotated{Competitor: c, DistanceMiles: dist})
		}
	}

	switch s.Sort {
	case SortByRating:
		slices.SortStableFunc(out, func(a, b Annotated) int {
			if c := cmp.Compare(ratingOf(b.Competitor), ratingOf(a.Competitor)); c != 0 {
				return c
			}
			return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
		})
	default:
		slices.SortStableFunc(out, func(a, b Annotated) int {
			return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
		})
	}
	return out
}

// StatusOf evaluates c's hours against the time filter. It is Unknown while
// the time filter is off.
func (e Engine) StatusOf(c model.Competitor, s State) hours.Status {
	return s.Time.Window().Status(c.Hours)
}

func ratingOf(c model.Competitor) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

// CountByCategory counts competitors per leaf category, ignoring filters.
func CountByCategory(dataset []model.Competitor) map[model.CategoryID]int {
	counts := make(map[model.CategoryID]int)
	for _, c := range dataset {
		counts[c.Category]++
	}
	return counts
}
