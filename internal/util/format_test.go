package util

import "testing"

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func TestFormatStars(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "No rating"},
		{f(4.5), "★★★★½ 4.5"},
		{f(4.2), "★★★★ 4.2"},
		{f(5), "★★★★★ 5"},
		{f(0), " 0"},
	}
	for _, tt := range tests {
		if got := FormatStars(tt.in); got != tt.want {
			t.Errorf("FormatStars(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatReviews(t *testing.T) {
	if got := FormatReviews(nil); got != "" {
		t.Errorf("FormatReviews(nil) = %q", got)
	}
	if got := FormatReviews(n(1874)); got != "(1,874 reviews)" {
		t.Errorf("FormatReviews(1874) = %q", got)
	}
	if got := FormatReviews(n(1)); got != "(1 review)" {
		t.Errorf("FormatReviews(1) = %q", got)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.02); got != "on site" {
		t.Errorf("FormatDistance(0.02) = %q", got)
	}
	if got := FormatDistance(1.26); got != "1.3 mi" {
		t.Errorf("FormatDistance(1.26) = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("Harborline Sushi", 10); got != "Harborl..." {
		t.Errorf("TruncateString() = %q", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString() = %q", got)
	}
}
