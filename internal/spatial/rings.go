package spatial

// Ring is one distance tier drawn around the reference point. Miles drives
// filtering and sorting; Meters is the rounded radius used when drawing.
type Ring struct {
	Miles      float64
	Meters     float64
	Label      string
	LabelAngle float64 // bearing of the label from the center, degrees
}

// DistanceRings are the available ring tiers, smallest first.
var DistanceRings = []Ring{
	{Miles: 0.5, Meters: 805, Label: "0.5 mi", LabelAngle: 90},
	{Miles: 1, Meters: 1609, Label: "1 mi", LabelAngle: 45},
	{Miles: 2, Meters: 3219, Label: "2 mi", LabelAngle: 45},
	{Miles: 3, Meters: 4828, Label: "3 mi", LabelAngle: 45},
}

// LabelPosition returns where the ring's label sits on its circumference.
func (r Ring) LabelPosition(center Point) Point {
	return DestinationPoint(center, r.Meters, r.LabelAngle)
}

// RingByMiles looks up a ring tier by its mile value.
func RingByMiles(miles float64) (Ring, bool) {
	for _, r := range DistanceRings {
		if r.Miles == miles {
			return r, true
		}
	}
	return Ring{}, false
}
