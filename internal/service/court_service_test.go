package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name          string
		courtName     string
		disambiguator string
		expected      string
	}{
		{"simple name", "High Court of Karnataka", "KAHC", "high-court-of-karnataka-kahc"},
		{"punctuation collapses", "City Civil & Sessions Court", "BCCC", "city-civil-sessions-court-bccc"},
		{"no disambiguator", "District Court", "", "district-court"},
		{"digits kept", "Court No. 4", "C4", "court-no-4-c4"},
		{"empty name falls back to code", "!!!", "XY", "xy"},
		{"leading and trailing separators trimmed", "  The Court  ", "tc", "the-court-tc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriveSlug(tt.courtName, tt.disambiguator))
		})
	}
}
