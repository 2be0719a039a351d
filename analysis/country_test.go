package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryFromTLD(t *testing.T) {
	cases := map[string]string{
		"https://shop.example.co.uk":  "United Kingdom",
		"https://portal.example.in":   "India",
		"https://example.de/impress":  "Germany",
		"https://site.fr":             "France",
		"https://www.example.com":     "Unknown",
		"https://weird.example.xyz":   "Unknown",
		"localhost":                   "Unknown",
	}
	for in, want := range cases {
		assert.Equal(t, want, CountryFromTLD(in), "input %q", in)
	}
}
