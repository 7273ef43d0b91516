package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"landscape/internal/model"
)

// CountCompetitors returns the number of stored competitors.
func CountCompetitors(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM competitors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count competitors: %w", err)
	}
	return n, nil
}

// SeedCompetitors stores list when the table is empty. It reports whether
// anything was written.
func SeedCompetitors(db *sql.DB, list []model.Competitor) (bool, error) {
	n, err := CountCompetitors(db)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertCompetitors(tx, list); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

// ReplaceCompetitors swaps the whole dataset in one transaction.
func ReplaceCompetitors(db *sql.DB, list []model.Competitor) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM competitors`); err != nil {
		return fmt.Errorf("failed to clear competitors: %w", err)
	}
	if err := insertCompetitors(tx, list); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func insertCompetitors(tx *sql.Tx, list []model.Competitor) error {
	stmt, err := tx.Prepare(`
		INSERT INTO competitors (ordinal, name, latitude, longitude, category, price_tier, cuisine_tag,
			rating, review_count, on_site, hours, note, google_maps_url, website)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range list {
		var priceTier, cuisineTag, rating, reviewCount, hoursJSON interface{}
		if c.PriceTier != "" {
			priceTier = string(c.PriceTier)
		}
		if c.CuisineTag != "" {
			cuisineTag = string(c.CuisineTag)
		}
		if c.Rating != nil {
			rating = *c.Rating
		}
		if c.ReviewCount != nil {
			reviewCount = *c.ReviewCount
		}
		if c.Hours != nil {
			b, err := json.Marshal(c.Hours)
			if err != nil {
				return fmt.Errorf("failed to encode hours for %q: %w", c.Name, err)
			}
			hoursJSON = string(b)
		}
		onSite := 0
		if c.OnSite {
			onSite = 1
		}

		if _, err := stmt.Exec(c.Ordinal, c.Name, c.Lat, c.Lng, string(c.Category), priceTier, cuisineTag,
			rating, reviewCount, onSite, hoursJSON, c.Note, c.GoogleMapsURL, c.Website); err != nil {
			return fmt.Errorf("failed to insert competitor %q: %w", c.Name, err)
		}
	}
	return nil
}

// ListCompetitors returns every competitor in dataset order.
func ListCompetitors(db *sql.DB) ([]model.Competitor, error) {
	query := `
		SELECT
			ordinal,
			name,
			latitude,
			longitude,
			category,
			COALESCE(price_tier, ''),
			COALESCE(cuisine_tag, ''),
			rating,
			review_count,
			on_site,
			hours,
			COALESCE(note, ''),
			COALESCE(google_maps_url, ''),
			COALESCE(website, '')
		FROM competitors
		ORDER BY ordinal
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	defer rows.Close()

	var results []model.Competitor
	for rows.Next() {
		var c model.Competitor
		var category, priceTier, cuisineTag string
		var rating sql.NullFloat64
		var reviewCount sql.NullInt64
		var onSite int
		var hoursJSON sql.NullString
		if err := rows.Scan(&c.Ordinal, &c.Name, &c.Lat, &c.Lng, &category, &priceTier, &cuisineTag,
			&rating, &reviewCount, &onSite, &hoursJSON, &c.Note, &c.GoogleMapsURL, &c.Website); err != nil {
			return nil, fmt.Errorf("failed to scan competitor row: %w", err)
		}
		c.Category = model.CategoryID(category)
		c.PriceTier = model.PriceTier(priceTier)
		c.CuisineTag = model.CuisineTag(cuisineTag)
		c.OnSite = onSite == 1
		if rating.Valid {
			c.Rating = &rating.Float64
		}
		if reviewCount.Valid {
			n := int(reviewCount.Int64)
			c.ReviewCount = &n
		}
		if hoursJSON.Valid {
			if err := json.Unmarshal([]byte(hoursJSON.String), &c.Hours); err != nil {
				return nil, fmt.Errorf("failed to decode hours for %q: %w", c.Name, err)
			}
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitor rows: %w", err)
	}

	return results, nil
}
