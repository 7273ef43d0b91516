package model

import (
	"strconv"
	"strings"
)

// CategoryID identifies a leaf category (e.g. "sushi", "gyms").
type CategoryID string

// SuperCategoryID identifies a group of leaf categories.
type SuperCategoryID string

// PriceTier is one of $, $$, $$$, $$$$. The empty tier means not price-rated.
type PriceTier string

// CuisineTag describes the cuisine of a dining-family competitor.
type CuisineTag string

// DayOfWeek is a lowercase three-letter weekday ("mon" .. "sun").
type DayOfWeek string

const (
	Monday    DayOfWeek = "mon"
	Tuesday   DayOfWeek = "tue"
	Wednesday DayOfWeek = "wed"
	Thursday  DayOfWeek = "thu"
	Friday    DayOfWeek = "fri"
	Saturday  DayOfWeek = "sat"
	Sunday    DayOfWeek = "sun"
)

// Weekdays lists the days of the week in calendar order.
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Label returns the capitalized short name ("Mon").
func (d DayOfWeek) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// DayHours is an open/close pair of "HH:MM" strings.
type DayHours [2]string

// WeeklyHours maps a weekday to its hours. A missing day means closed that day;
// a nil map means the hours are unknown.
type WeeklyHours map[DayOfWeek]DayHours

// Competitor represents a point of interest around the reference property.
type Competitor struct {
	Ordinal       int
	Name          string
	Lat           float64
	Lng           float64
	Category      CategoryID
	PriceTier     PriceTier
	CuisineTag    CuisineTag
	Rating        *float64
	ReviewCount   *int
	OnSite        bool
	Hours         WeeklyHours
	Note          string
	GoogleMapsURL string
	Website       string
}

// Key returns a display key that stays unique when names repeat.
func (c Competitor) Key() string {
	return string(c.Category) + "-" + strconv.Itoa(c.Ordinal)
}
