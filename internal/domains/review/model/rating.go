package model

import (
	"github.com/shopspring/decimal"
)

// RatingSummary is the derived aggregate over the full review set of a
// book: never persisted, never cached, computed fresh per query.
type RatingSummary struct {
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// Summarize computes the aggregate from a set of ratings. The mean is
// rounded to one decimal, half away from zero; an empty set yields
// exactly zero. Insertion order is irrelevant.
func Summarize(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(ratings)))).
		Round(1)

	return RatingSummary{
		ReviewCount:   len(ratings),
		AverageRating: avg.InexactFloat64(),
	}
}
