package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRatings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ratings []int
		want    RatingSummary
	}{
		{"empty", nil, RatingSummary{}},
		{"single", []int{5}, RatingSummary{AverageRating: 5, TotalRatings: 1}},
		{"rounds down", []int{5, 4, 4}, RatingSummary{AverageRating: 4.3, TotalRatings: 3}},
		{"rounds up", []int{5, 5, 4}, RatingSummary{AverageRating: 4.7, TotalRatings: 3}},
		{"half", []int{4, 5}, RatingSummary{AverageRating: 4.5, TotalRatings: 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AggregateRatings(tt.ratings))
		})
	}
}

func TestValidateRating(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.ErrorIs(t, ValidateRating(0), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(6), ErrInvalidRating)
}
