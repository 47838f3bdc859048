package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"A seafood restaurant in Dubai", "a-seafood-restaurant-in"},
		{"Portfolio site!", "portfolio-site"},
		{"  Coffee & Cake  ", "coffee-cake"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, slugify(tt.prompt))
	}
}

func TestSlugifyArabicFallsBackToTimestamp(t *testing.T) {
	slug := slugify("مطعم مأكولات بحرية")
	require.True(t, strings.HasPrefix(slug, "site-"), "got %q", slug)
}
