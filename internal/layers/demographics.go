package layers

import (
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"

	"landscape/internal/spatial"
)

// MetricKey names a census measure.
type MetricKey string

const (
	Population   MetricKey = "population"
	MedianIncome MetricKey = "medianIncome"
	PctBachelors MetricKey = "pctBachelors"
)

// Metric describes one selectable choropleth measure.
type Metric struct {
	Key   MetricKey
	Label string
}

// Metrics lists the choropleth measures in cycling order.
var Metrics = []Metric{
	{Key: MedianIncome, Label: "Median Household Income"},
	{Key: Population, Label: "Population"},
	{Key: PctBachelors, Label: "Bachelor's Degree or Higher"},
}

// Palette holds the five choropleth colors, lightest first.
var Palette = []string{"#ede9fe", "#c4b5fd", "#8b5cf6", "#6d28d9", "#4c1d95"}

// Tract is one census tract with its headline figures.
type Tract struct {
	GeoID        string
	Name         string
	Population   float64
	MedianIncome float64
	PctBachelors float64
	*spatial.Region
}

// Value returns the tract's figure for metric.
func (t Tract) Value(metric MetricKey) float64 {
	switch metric {
	case Population:
		return t.Population
	case MedianIncome:
		return t.MedianIncome
	default:
		return t.PctBachelors
	}
}

const (
	tractHalfLat = 0.0110
	tractHalfLng = 0.0130
)

func tract(geoid, name string, lat, lng, pop, income, pctBach float64) Tract {
	return Tract{
		GeoID:        geoid,
		Name:         name,
		Population:   pop,
		MedianIncome: income,
		PctBachelors: pctBach,
		Region: spatial.NewRegion(name, []spatial.Point{
			pt(lat-tractHalfLat, lng-tractHalfLng),
			pt(lat-tractHalfLat, lng+tractHalfLng),
			pt(lat+tractHalfLat, lng+tractHalfLng),
			pt(lat+tractHalfLat, lng-tractHalfLng),
		}),
	}
}

// Tracts is a simplified grid of the census tracts around the reference property.
var Tracts = []Tract{
	tract("06059063004", "Newport Center", 33.6160, -117.8760, 4512, 142000, 71),
	tract("06059063010", "Back Bay", 33.6240, -117.8920, 3870, 128500, 66),
	tract("06059063007", "Eastbluff", 33.6420, -117.8660, 5230, 118200, 63),
	tract("06059062701", "Corona del Mar", 33.5980, -117.8700, 4105, 156300, 74),
	tract("06059062800", "Balboa Island", 33.6080, -117.8900, 2950, 137800, 69),
	tract("06059063500", "Balboa Peninsula", 33.6000, -117.9120, 6120, 94200, 52),
	tract("06059063400", "Lido Isle", 33.6130, -117.9300, 2310, 171400, 77),
	tract("06059063603", "Newport Heights", 33.6260, -117.9160, 4870, 121900, 61),
	tract("06059063601", "Westcliff", 33.6380, -117.8960, 5460, 109700, 58),
	tract("06059062614", "UC Irvine", 33.6450, -117.8420, 7980, 41200, 48),
	tract("06059063605", "Eastside Costa Mesa", 33.6500, -117.9140, 6670, 86400, 44),
	tract("06059062622", "Newport Coast", 33.6020, -117.8380, 3340, 224600, 79),
}

// Breaks returns six break values: the minimum, the values at the 20/40/60/80%
// index positions of the sorted figures, and the maximum.
func Breaks(tracts []Tract, metric MetricKey) []float64 {
	if len(tracts) == 0 {
		return nil
	}
	vals := make([]float64, 0, len(tracts))
	for _, t := range tracts {
		vals = append(vals, t.Value(metric))
	}
	slices.Sort(vals)

	n := len(vals)
	at := func(frac float64) float64 {
		return vals[int(math.Floor(float64(n)*frac))]
	}
	return []float64{vals[0], at(0.2), at(0.4), at(0.6), at(0.8), vals[n-1]}
}

// Bucket returns the palette index for value given Breaks output.
func Bucket(value float64, breaks []float64) int {
	for i := 1; i <= 4 && i < len(breaks); i++ {
		if value <= breaks[i] {
			return i - 1
		}
	}
	return len(Palette) - 1
}

// ColorFor returns the palette color for value.
func ColorFor(value float64, breaks []float64) string {
	return Palette[Bucket(value, breaks)]
}

// FormatCompact renders a figure for legends and labels: "$112K", "4.2K", "38%".
func FormatCompact(value float64, metric MetricKey) string {
	switch metric {
	case MedianIncome:
		if value >= 1000 {
			return fmt.Sprintf("$%dK", int(math.Round(value/1000)))
		}
		return "$" + humanize.Ftoa(value)
	case Population:
		if value >= 1000 {
			return fmt.Sprintf("%.1fK", value/1000)
		}
		return humanize.Ftoa(value)
	default:
		return fmt.Sprintf("%d%%", int(math.Round(value)))
	}
}

// FormatFull renders a figure with thousands separators for the detail line.
func FormatFull(value float64, metric MetricKey) string {
	switch metric {
	case MedianIncome:
		return "$" + humanize.Comma(int64(math.Round(value)))
	case Population:
		return humanize.Comma(int64(math.Round(value)))
	default:
		return fmt.Sprintf("%.0f%%", value)
	}
}

// LegendRow is one swatch of the choropleth legend.
type LegendRow struct {
	Color string
	Label string
}

// LegendRows pairs each palette color with its value range.
func LegendRows(breaks []float64, metric MetricKey) []LegendRow {
	if len(breaks) < len(Palette)+1 {
		return nil
	}
	rows := make([]LegendRow, 0, len(Palette))
	for i, color := range Palette {
		label := FormatCompact(breaks[i], metric) + "+"
		if i < len(Palette)-1 {
			label = FormatCompact(breaks[i], metric) + " – " + FormatCompact(breaks[i+1], metric)
		}
		rows = append(rows, LegendRow{Color: color, Label: label})
	}
	return rows
}

// TractAt returns the tract whose boundary contains p.
func TractAt(p spatial.Point) (Tract, bool) {
	for _, t := range Tracts {
		if t.Contains(p) {
			return t, true
		}
	}
	return Tract{}, false
}

// MetricByKey looks up a metric's display info.
func MetricByKey(key MetricKey) (Metric, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
