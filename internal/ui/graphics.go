package ui

import (
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/qeesung/image2ascii/convert"
)

// TerminalCapabilities describes how the map can be drawn.
type TerminalCapabilities struct {
	Colored bool
}

// DetectTerminalCapabilities inspects the environment for color support.
func DetectTerminalCapabilities() TerminalCapabilities {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return TerminalCapabilities{}
	}
	term := os.Getenv("TERM")
	return TerminalCapabilities{
		Colored: term != "dumb" && !strings.HasPrefix(term, "vt"),
	}
}

// RenderMapImage converts a rasterized map into terminal text.
func RenderMapImage(img image.Image, caps TerminalCapabilities, targetWidth, targetHeight int) string {
	return convertToASCII(img, caps.Colored, targetWidth, targetHeight)
}

func convertToASCII(img image.Image, colored bool, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = colored
	opts.Ratio = 0.5 // terminal cells are about twice as tall as wide

	return converter.Image2ASCIIString(img, &opts)
}

// hexColor parses "#rrggbb", falling back to grey.
func hexColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.58, G: 0.64, B: 0.72}
	}
	return c
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func plot(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func fillSquare(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			plot(img, x, y, c)
		}
	}
}

// drawLine uses Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
