package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMiles  = 3959.0    // used for filtering and sorting
	EarthRadiusMeters = 6371000.0 // used for ring placement
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

func (p Point) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lng)
}

// DistanceMiles calculates the great-circle distance between two points in miles
// using the Haversine formula
func DistanceMiles(a, b Point) float64 {
	return a.latLng().Distance(b.latLng()).Radians() * EarthRadiusMiles
}

// DistanceMeters calculates the great-circle distance between two points in meters
func DistanceMeters(a, b Point) float64 {
	return a.latLng().Distance(b.latLng()).Radians() * EarthRadiusMeters
}

// Bearing calculates the initial bearing (forward azimuth) from one point to another.
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(from, to Point) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	lngDiff := (to.Lng - from.Lng) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lngDiff)

	bearingDeg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// DestinationPoint calculates the point reached by travelling radiusMeters from origin
// along the given bearing (degrees from north)
func DestinationPoint(origin Point, radiusMeters, bearingDeg float64) Point {
	ll := origin.latLng()
	bearing := bearingDeg * math.Pi / 180
	angularDistance := radiusMeters / EarthRadiusMeters

	lat1 := ll.Lat.Radians()
	lng1 := ll.Lng.Radians()

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angularDistance) +
		math.Cos(lat1)*math.Sin(angularDistance)*math.Cos(bearing))

	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angularDistance)*math.Cos(lat1),
		math.Cos(angularDistance)-math.Sin(lat1)*math.Sin(lat2))

	return Point{Lat: lat2 * 180 / math.Pi, Lng: lng2 * 180 / math.Pi}
}

// BoundingBox returns the (south, west, north, east) box that encloses a circle of
// the given radius in miles around center
func BoundingBox(center Point, miles float64) (float64, float64, float64, float64) {
	meters := miles * EarthRadiusMeters / EarthRadiusMiles
	north := DestinationPoint(center, meters, 0)
	east := DestinationPoint(center, meters, 90)
	south := DestinationPoint(center, meters, 180)
	west := DestinationPoint(center, meters, 270)
	return south.Lat, west.Lng, north.Lat, east.Lng
}
