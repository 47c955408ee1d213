package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromSlug(t *testing.T) {
	cases := map[string]string{
		"chicken-momo":    "Chicken Momo",
		"pizza":           "Pizza",
		"veg-thukpa-soup": "Veg Thukpa Soup",
		"already-Upper":   "Already Upper",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NameFromSlug(in), in)
	}
}
