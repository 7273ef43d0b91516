package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"landscape/internal/model"
	"landscape/internal/spatial"
)

// DefaultOverpassEndpoint is the public Overpass API interpreter.
const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// POI is a supplementary point of interest from OpenStreetMap.
type POI struct {
	ID       int64
	Name     string
	Lat      float64
	Lng      float64
	Category model.CategoryID
}

// POISource fetches supplementary points of interest.
type POISource interface {
	FetchPOIs(ctx context.Context) ([]POI, error)
}

// osmSelector maps one of our categories to the OSM tag filters that find it.
type osmSelector struct {
	Category model.CategoryID
	Tags     []osmTag
}

type osmTag struct {
	Key   string
	Value string
}

func (t osmTag) filter() string {
	return fmt.Sprintf("[%s=%s]", t.Key, t.Value)
}

// osmSelectors is checked in order when classifying a returned node.
var osmSelectors = []osmSelector{
	{Category: "gyms", Tags: []osmTag{{"leisure", "fitness_centre"}, {"leisure", "sports_centre"}}},
	{Category: "cowork", Tags: []osmTag{{"amenity", "cafe"}}},
	{Category: "bars", Tags: []osmTag{{"amenity", "bar"}, {"amenity", "pub"}}},
	{Category: "dining", Tags: []osmTag{{"amenity", "restaurant"}}},
	{Category: "spa", Tags: []osmTag{{"leisure", "spa"}, {"shop", "beauty"}}},
}

// OverpassClient queries the Overpass API for nodes near a center point.
type OverpassClient struct {
	endpoint   string
	center     spatial.Point
	radiusMi   float64
	httpClient *http.Client
}

// NewOverpassClient creates a client that searches radiusMi around center.
func NewOverpassClient(endpoint string, center spatial.Point, radiusMi float64, timeout time.Duration) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &OverpassClient{
		endpoint:   endpoint,
		center:     center,
		radiusMi:   radiusMi,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query builds the Overpass QL request body.
func (c *OverpassClient) Query() string {
	south, west, north, east := spatial.BoundingBox(c.center, c.radiusMi)
	bbox := fmt.Sprintf("%.2f,%.2f,%.2f,%.2f", south, west, north, east)

	var b strings.Builder
	b.WriteString("[out:json][timeout:15];(")
	for _, sel := range osmSelectors {
		for _, tag := range sel.Tags {
			fmt.Fprintf(&b, "node%s(%s);", tag.filter(), bbox)
		}
	}
	b.WriteString(");out body;")
	return b.String()
}

// FetchPOIs runs the query and converts named nodes to POIs.
func (c *OverpassClient) FetchPOIs(ctx context.Context) ([]POI, error) {
	form := url.Values{}
	form.Set("data", c.Query())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass API error: status %d", resp.StatusCode)
	}

	var result overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}

	pois := make([]POI, 0, len(result.Elements))
	for _, el := range result.Elements {
		name := el.Tags["name"]
		if name == "" || el.Lat == nil || el.Lon == nil {
			continue
		}
		cat, ok := classify(el.Tags)
		if !ok {
			continue
		}
		pois = append(pois, POI{
			ID:       el.ID,
			Name:     name,
			Lat:      *el.Lat,
			Lng:      *el.Lon,
			Category: cat,
		})
	}
	return pois, nil
}

func classify(tags map[string]string) (model.CategoryID, bool) {
	for _, sel := range osmSelectors {
		for _, tag := range sel.Tags {
			if tags[tag.Key] == tag.Value {
				return sel.Category, true
			}
		}
	}
	return "", false
}

// API response types

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  *float64          `json:"lat"`
	Lon  *float64          `json:"lon"`
	Tags map[string]string `json:"tags"`
}
