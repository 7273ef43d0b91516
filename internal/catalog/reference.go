package catalog

import "landscape/internal/spatial"

// ReferenceProperty is the anchor all distances are measured from.
type ReferenceProperty struct {
	Name    string
	Address string
	Point   spatial.Point
}

// Reference is the Hyatt Regency Newport Beach.
var Reference = ReferenceProperty{
	Name:    "Hyatt Regency Newport Beach",
	Address: "1107 Jamboree Rd, Newport Beach, CA 92660",
	Point:   spatial.Point{Lat: 33.6189, Lng: -117.8900},
}
