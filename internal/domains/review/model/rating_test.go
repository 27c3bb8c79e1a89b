package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("empty set yields zero", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.ReviewCount)
		assert.Equal(t, 0.0, s.AverageRating)
	})

	t.Run("single rating", func(t *testing.T) {
		s := Summarize([]int{5})
		assert.Equal(t, 1, s.ReviewCount)
		assert.Equal(t, 5.0, s.AverageRating)
	})

	t.Run("mean rounded to one decimal", func(t *testing.T) {
		// 4+4+5 = 13/3 = 4.333... -> 4.3
		s := Summarize([]int{4, 4, 5})
		assert.Equal(t, 3, s.ReviewCount)
		assert.Equal(t, 4.3, s.AverageRating)
	})

	t.Run("half rounds away from zero", func(t *testing.T) {
		// 1+2 = 3/2 = 1.5 -> 1.5 exactly representable; use thirds:
		// 2+3+3+3+4+4 = 19/6 = 3.1666... -> 3.2
		s := Summarize([]int{2, 3, 3, 3, 4, 4})
		assert.Equal(t, 3.2, s.AverageRating)
	})

	t.Run("order invariant", func(t *testing.T) {
		a := Summarize([]int{5, 3, 1, 4})
		b := Summarize([]int{4, 1, 3, 5})
		assert.Equal(t, a, b)
	})

	t.Run("five then three averages to four", func(t *testing.T) {
		s := Summarize([]int{5, 3})
		assert.Equal(t, 2, s.ReviewCount)
		assert.Equal(t, 4.0, s.AverageRating)
	})
}
