package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gatsby", "gatsby"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"%_%", `\%\_\%`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in))
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%great%", ContainsPattern("great"))
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% off"))
}
