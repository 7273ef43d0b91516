package layers

import (
	"landscape/internal/spatial"
)

// Neighborhood is a named area drawn as a dashed outline with a centroid label.
type Neighborhood struct {
	*spatial.Region
}

func neighborhood(name string, vertices ...spatial.Point) Neighborhood {
	return Neighborhood{Region: spatial.NewRegion(name, vertices)}
}

func pt(lat, lng float64) spatial.Point {
	return spatial.Point{Lat: lat, Lng: lng}
}

// Neighborhoods are approximate boundaries around the reference property.
var Neighborhoods = []Neighborhood{
	neighborhood("Back Bay",
		pt(33.6135, -117.8975), pt(33.6135, -117.8835), pt(33.6290, -117.8835),
		pt(33.6330, -117.8920), pt(33.6290, -117.8975)),
	neighborhood("Newport Center",
		pt(33.6050, -117.8835), pt(33.6050, -117.8680), pt(33.6225, -117.8680),
		pt(33.6225, -117.8835)),
	neighborhood("Eastbluff",
		pt(33.6290, -117.8835), pt(33.6225, -117.8680), pt(33.6420, -117.8600),
		pt(33.6450, -117.8780)),
	neighborhood("Corona del Mar",
		pt(33.5900, -117.8835), pt(33.5900, -117.8580), pt(33.6050, -117.8580),
		pt(33.6050, -117.8835)),
	neighborhood("Balboa Island",
		pt(33.6030, -117.8940), pt(33.6030, -117.8835), pt(33.6135, -117.8835),
		pt(33.6135, -117.8940)),
	neighborhood("Balboa Peninsula",
		pt(33.5930, -117.9200), pt(33.5900, -117.8900), pt(33.6030, -117.8900),
		pt(33.6070, -117.9200)),
	neighborhood("Lido Isle",
		pt(33.6070, -117.9350), pt(33.6070, -117.9200), pt(33.6160, -117.9200),
		pt(33.6160, -117.9350)),
	neighborhood("Newport Heights",
		pt(33.6160, -117.9250), pt(33.6160, -117.9050), pt(33.6300, -117.9050),
		pt(33.6300, -117.9250)),
	neighborhood("Westcliff",
		pt(33.6160, -117.9050), pt(33.6135, -117.8975), pt(33.6290, -117.8975),
		pt(33.6300, -117.9050)),
}

// NeighborhoodNames lists the neighborhood names in display order.
func NeighborhoodNames() []string {
	out := make([]string, 0, len(Neighborhoods))
	for _, n := range Neighborhoods {
		out = append(out, n.Name)
	}
	return out
}

// Locate returns the neighborhood containing p.
func Locate(p spatial.Point) (string, bool) {
	for _, n := range Neighborhoods {
		if n.Contains(p) {
			return n.Name, true
		}
	}
	return "", false
}
