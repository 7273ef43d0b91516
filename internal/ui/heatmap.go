package ui

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type heatStop struct {
	at    float64
	color colorful.Color
}

// heatGradient runs cold to hot; values below the first stop use its color.
var heatGradient = []heatStop{
	{0.2, hexColor("#3b82f6")},
	{0.4, hexColor("#06b6d4")},
	{0.6, hexColor("#22c55e")},
	{0.8, hexColor("#f59e0b")},
	{1.0, hexColor("#ef4444")},
}

const (
	heatMinOpacity = 0.3
	heatMaxOpacity = 0.8
	heatCutoff     = 0.05
)

// heatColor maps a normalized density to the gradient.
func heatColor(t float64) colorful.Color {
	if t <= heatGradient[0].at {
		return heatGradient[0].color
	}
	for i := 1; i < len(heatGradient); i++ {
		lo, hi := heatGradient[i-1], heatGradient[i]
		if t <= hi.at {
			return lo.color.BlendLab(hi.color, (t-lo.at)/(hi.at-lo.at)).Clamped()
		}
	}
	return heatGradient[len(heatGradient)-1].color
}

// heatRadius scales the kernel with the image so the shading looks the same
// at any terminal size.
func heatRadius(width, height int) int {
	return max(min(width, height)/12, 4)
}

// density sums a quartic kernel around each pin and normalizes the result to
// 0..1. It returns nil when there is nothing to draw.
func density(pins []image.Point, width, height, radius int) []float64 {
	if len(pins) == 0 {
		return nil
	}
	grid := make([]float64, width*height)
	r2 := float64(radius * radius)
	peak := 0.0
	for _, p := range pins {
		for y := max(p.Y-radius, 0); y <= min(p.Y+radius, height-1); y++ {
			for x := max(p.X-radius, 0); x <= min(p.X+radius, width-1); x++ {
				dx, dy := float64(x-p.X), float64(y-p.Y)
				d2 := dx*dx + dy*dy
				if d2 >= r2 {
					continue
				}
				k := 1 - d2/r2
				i := y*width + x
				grid[i] += k * k
				peak = math.Max(peak, grid[i])
			}
		}
	}
	if peak == 0 {
		return nil
	}
	for i := range grid {
		grid[i] /= peak
	}
	return grid
}

func (s mapScene) drawHeat(img *image.RGBA, proj projection) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	pins := make([]image.Point, 0, len(s.markers))
	for _, m := range s.markers {
		x, y := proj.toPixel(m.point)
		pins = append(pins, image.Pt(x, y))
	}
	grid := density(pins, width, height, heatRadius(width, height))
	if grid == nil {
		return
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := grid[y*width+x]
			if t < heatCutoff {
				continue
			}
			under, _ := colorful.MakeColor(img.RGBAAt(x, y))
			opacity := heatMinOpacity + (heatMaxOpacity-heatMinOpacity)*t
			img.SetRGBA(x, y, rgba(under.BlendRgb(heatColor(t), opacity)))
		}
	}
}
