package spatial

import (
	"github.com/golang/geo/s2"
)

// Region is a named closed boundary on the sphere.
type Region struct {
	Name     string
	Vertices []Point
	loop     *s2.Loop
}

// NewRegion builds a region from its boundary vertices. Vertex order does not
// matter; the loop is normalized to enclose the smaller area.
func NewRegion(name string, vertices []Point) *Region {
	pts := make([]s2.Point, 0, len(vertices))
	for _, v := range vertices {
		pts = append(pts, s2.PointFromLatLng(v.latLng()))
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()

	return &Region{
		Name:     name,
		Vertices: vertices,
		loop:     loop,
	}
}

// Contains reports whether p lies inside the region.
func (r *Region) Contains(p Point) bool {
	return r.loop.ContainsPoint(s2.PointFromLatLng(p.latLng()))
}

// Centroid returns the vertex average, which is where the region's label is drawn.
func (r *Region) Centroid() Point {
	return Centroid(r.Vertices)
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}
