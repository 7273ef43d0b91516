package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"landscape/internal/catalog"
	"landscape/internal/hours"
	"landscape/internal/layers"
	"landscape/internal/search"
	"landscape/internal/spatial"
)

var (
	mapBackground = hexColor("#1D221E")
	mapRing       = hexColor("#7E8C80")
	mapOutline    = hexColor("#D6E0D3")
	mapReference  = hexColor("#f38ba8")
	mapPOI        = hexColor("#4A544C")
)

// mapMarker is one competitor pin.
type mapMarker struct {
	point  spatial.Point
	color  string
	status hours.Status
	dimmed bool
}

// choropleth colors census tracts by a metric.
type choropleth struct {
	metric    layers.MetricKey
	breaks    []float64
	highlight string
}

// mapScene is everything drawn on the map, in back-to-front order.
type mapScene struct {
	center        spatial.Point
	rings         []spatial.Ring
	choropleth    *choropleth
	heat          bool
	neighborhoods []layers.Neighborhood
	pois          []search.POI
	markers       []mapMarker
}

// projection maps geographic points onto the image using the bearing and
// distance from the center.
type projection struct {
	center         spatial.Point
	cx, cy         float64
	pixelsPerMeter float64
}

func newProjection(center spatial.Point, extentMeters float64, width, height int) projection {
	return projection{
		center:         center,
		cx:             float64(width) / 2,
		cy:             float64(height) / 2,
		pixelsPerMeter: float64(min(width, height)) / 2 / extentMeters,
	}
}

func (p projection) toPixel(pt spatial.Point) (int, int) {
	d := spatial.DistanceMeters(p.center, pt) * p.pixelsPerMeter
	b := spatial.Bearing(p.center, pt) * math.Pi / 180
	return int(math.Round(p.cx + math.Sin(b)*d)), int(math.Round(p.cy - math.Cos(b)*d))
}

func (p projection) toPoint(x, y int) spatial.Point {
	dx := float64(x) - p.cx
	dy := p.cy - float64(y)
	meters := math.Hypot(dx, dy) / p.pixelsPerMeter
	bearing := math.Atan2(dx, dy) * 180 / math.Pi
	return spatial.DestinationPoint(p.center, meters, bearing)
}

// extentMeters is the half-width of the visible area: the outermost ring
// drawn, with a margin.
func (s mapScene) extentMeters() float64 {
	extent := spatial.DistanceRings[len(spatial.DistanceRings)-1].Meters
	if len(s.rings) > 0 {
		extent = 0
		for _, r := range s.rings {
			extent = max(extent, r.Meters)
		}
	}
	return extent * 1.15
}

// rasterize draws the scene into a width x height image.
func (s mapScene) rasterize(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	proj := newProjection(s.center, s.extentMeters(), width, height)

	bg := rgba(mapBackground)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	if s.choropleth != nil {
		s.drawChoropleth(img, proj)
	}

	if s.heat {
		s.drawHeat(img, proj)
	}

	outline := rgba(mapOutline.BlendRgb(mapBackground, 0.5))
	for _, n := range s.neighborhoods {
		drawPolygon(img, proj, n.Vertices, outline)
	}

	ring := rgba(mapRing)
	for _, r := range s.rings {
		for deg := 0.0; deg < 360; deg += 0.5 {
			x, y := proj.toPixel(spatial.DestinationPoint(s.center, r.Meters, deg))
			plot(img, x, y, ring)
		}
	}

	poi := rgba(mapPOI)
	for _, p := range s.pois {
		x, y := proj.toPixel(spatial.Point{Lat: p.Lat, Lng: p.Lng})
		plot(img, x, y, poi)
	}

	for _, m := range s.markers {
		c := hexColor(m.color)
		if m.dimmed || m.status == hours.Closed {
			c = c.BlendRgb(mapBackground, 0.7)
		}
		x, y := proj.toPixel(m.point)
		fillSquare(img, x, y, 1, rgba(c))
	}

	x, y := proj.toPixel(s.center)
	fillSquare(img, x, y, 2, rgba(mapReference))
	return img
}

func (s mapScene) drawChoropleth(img *image.RGBA, proj projection) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t, ok := layers.TractAt(proj.toPoint(x, y))
			if !ok {
				continue
			}
			opacity := 0.55
			if s.choropleth.highlight != "" && s.choropleth.highlight != t.GeoID {
				opacity = 0.2
			}
			fill := hexColor(layers.ColorFor(t.Value(s.choropleth.metric), s.choropleth.breaks))
			img.SetRGBA(x, y, rgba(mapBackground.BlendRgb(fill, opacity)))
		}
	}
}

func drawPolygon(img *image.RGBA, proj projection, vertices []spatial.Point, c color.RGBA) {
	for i := range vertices {
		x0, y0 := proj.toPixel(vertices[i])
		x1, y1 := proj.toPixel(vertices[(i+1)%len(vertices)])
		drawLine(img, x0, y0, x1, y1, c)
	}
}

// MapModel renders the scene as terminal art.
type MapModel struct {
	caps TerminalCapabilities
}

// NewMapModel creates a map view.
func NewMapModel(caps TerminalCapabilities) *MapModel {
	return &MapModel{caps: caps}
}

// View renders the map with a one-line legend underneath.
func (m *MapModel) View(width, height int, scene mapScene) string {
	mapHeight := max(height-2, 4)
	img := scene.rasterize(width*2, mapHeight*4)
	art := RenderMapImage(img, m.caps, width, mapHeight)

	var legend []string
	legend = append(legend, lipgloss.NewStyle().Foreground(ColorRed).Render("■")+" "+catalog.Reference.Name)
	for _, r := range scene.rings {
		at := r.LabelPosition(scene.center)
		legend = append(legend, fmt.Sprintf("%s @ %.4f,%.4f", r.Label, at.Lat, at.Lng))
	}
	legend = append(legend, fmt.Sprintf("%d pins", len(scene.markers)))
	if scene.heat {
		legend = append(legend, "density")
	}
	if len(scene.pois) > 0 {
		legend = append(legend, fmt.Sprintf("%d OSM", len(scene.pois)))
	}
	footer := StatusBarStyle.Render(strings.Join(legend, "  ·  "))

	return lipgloss.JoinVertical(lipgloss.Left, strings.TrimRight(art, "\n"), footer)
}
