package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatStars renders a 0-5 rating as "★★★★½ 4.5", or "No rating" when nil.
func FormatStars(rating *float64) string {
	if rating == nil {
		return "No rating"
	}
	r := *rating
	full := int(math.Floor(r))
	if full < 0 {
		full = 0
	}
	s := strings.Repeat("★", full)
	if math.Mod(r, 1) >= 0.5 {
		s += "½"
	}
	return s + " " + formatRatingNumber(r)
}

// FormatRating formats a rating as "4.5" or "—" if nil.
func FormatRating(rating *float64) string {
	if rating == nil {
		return "—"
	}
	return formatRatingNumber(*rating)
}

// FormatReviews formats a review count as "(1,874 reviews)".
func FormatReviews(count *int) string {
	if count == nil {
		return ""
	}
	if *count == 1 {
		return "(1 review)"
	}
	return fmt.Sprintf("(%s reviews)", humanize.Comma(int64(*count)))
}

// FormatReviewCount formats a bare review count for table cells.
func FormatReviewCount(count *int) string {
	if count == nil {
		return "—"
	}
	return humanize.Comma(int64(*count))
}

// FormatDistance formats a distance in miles, e.g. "0.8 mi".
func FormatDistance(miles float64) string {
	if miles < 0.1 {
		return "on site"
	}
	return strconv.FormatFloat(miles, 'f', 1, 64) + " mi"
}

// FormatPrice returns the tier or "—" when unrated.
func FormatPrice(tier string) string {
	if tier == "" {
		return "—"
	}
	return tier
}

// FormatOptional returns s or "—" when empty.
func FormatOptional(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func formatRatingNumber(v float64) string {
	// Keep one decimal at most, but avoid trailing .0 for whole values.
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
