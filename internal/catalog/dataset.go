package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/hashicorp/go-multierror"

	"landscape/internal/model"
)

//go:embed competitors.json
var bundled []byte

// Record is the on-disk shape of one competitor.
type Record struct {
	Name          string            `json:"name"`
	Lat           float64           `json:"lat"`
	Lng           float64           `json:"lng"`
	Category      model.CategoryID  `json:"category"`
	PriceTier     model.PriceTier   `json:"priceTier,omitempty"`
	CuisineTag    model.CuisineTag  `json:"cuisineTag,omitempty"`
	Rating        *float64          `json:"rating"`
	ReviewCount   *int              `json:"reviewCount,omitempty"`
	OnSite        bool              `json:"onSite,omitempty"`
	Hours         model.WeeklyHours `json:"hours,omitempty"`
	Note          string            `json:"note,omitempty"`
	GoogleMapsURL string            `json:"googleMapsUrl,omitempty"`
	Website       string            `json:"website,omitempty"`
}

// Competitor converts the record, stamping it with its dataset position.
func (r Record) Competitor(ordinal int) model.Competitor {
	return model.Competitor{
		Ordinal:       ordinal,
		Name:          r.Name,
		Lat:           r.Lat,
		Lng:           r.Lng,
		Category:      r.Category,
		PriceTier:     r.PriceTier,
		CuisineTag:    r.CuisineTag,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		OnSite:        r.OnSite,
		Hours:         r.Hours,
		Note:          r.Note,
		GoogleMapsURL: r.GoogleMapsURL,
		Website:       r.Website,
	}
}

// RecordOf is the inverse of Record.Competitor.
func RecordOf(c model.Competitor) Record {
	return Record{
		Name:          c.Name,
		Lat:           c.Lat,
		Lng:           c.Lng,
		Category:      c.Category,
		PriceTier:     c.PriceTier,
		CuisineTag:    c.CuisineTag,
		Rating:        c.Rating,
		ReviewCount:   c.ReviewCount,
		OnSite:        c.OnSite,
		Hours:         c.Hours,
		Note:          c.Note,
		GoogleMapsURL: c.GoogleMapsURL,
		Website:       c.Website,
	}
}

// Load decodes and validates the bundled dataset.
func Load() ([]model.Competitor, error) {
	list, err := Decode(bytes.NewReader(bundled))
	if err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	if err := Validate(Default, list); err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	return list, nil
}

// Decode reads a JSON array of records. Ordinals follow array order.
func Decode(r io.Reader) ([]model.Competitor, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode competitors: %w", err)
	}

	list := make([]model.Competitor, 0, len(records))
	for i, rec := range records {
		list = append(list, rec.Competitor(i))
	}
	return list, nil
}

// Encode writes the dataset in the same shape Decode reads.
func Encode(w io.Writer, list []model.Competitor) error {
	records := make([]Record, 0, len(list))
	for _, c := range list {
		records = append(records, RecordOf(c))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Validate checks every record against the taxonomy and returns all
// problems at once.
func Validate(t *Taxonomy, list []model.Competitor) error {
	var result *multierror.Error

	for _, c := range list {
		where := fmt.Sprintf("competitor %d (%q)", c.Ordinal, c.Name)

		if c.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: name is required", where))
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			result = multierror.Append(result, fmt.Errorf("%s: coordinates %v,%v out of range", where, c.Lat, c.Lng))
		}
		if _, ok := t.Category(c.Category); !ok {
			result = multierror.Append(result, fmt.Errorf("%s: unknown category %q", where, c.Category))
		}
		if !ValidPriceTier(c.PriceTier) {
			result = multierror.Append(result, fmt.Errorf("%s: invalid price tier %q", where, c.PriceTier))
		}
		if c.CuisineTag != "" {
			if !ValidCuisineTag(c.CuisineTag) {
				result = multierror.Append(result, fmt.Errorf("%s: unknown cuisine tag %q", where, c.CuisineTag))
			}
			if !t.IsDining(c.Category) {
				result = multierror.Append(result, fmt.Errorf("%s: cuisine tag on non-dining category %q", where, c.Category))
			}
		}
		if c.Rating != nil && (math.IsNaN(*c.Rating) || *c.Rating < 0 || *c.Rating > 5) {
			result = multierror.Append(result, fmt.Errorf("%s: rating %v outside [0,5]", where, *c.Rating))
		}
		if c.ReviewCount != nil && *c.ReviewCount < 0 {
			result = multierror.Append(result, fmt.Errorf("%s: negative review count", where))
		}
		for day := range c.Hours {
			if !validDay(day) {
				result = multierror.Append(result, fmt.Errorf("%s: unknown weekday %q in hours", where, day))
			}
		}
	}

	return result.ErrorOrNil()
}

func validDay(d model.DayOfWeek) bool {
	for _, w := range model.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
