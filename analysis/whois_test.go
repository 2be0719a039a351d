package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWhoisDate(t *testing.T) {
	cases := map[string]time.Time{
		"2019-03-15T10:30:00Z":  time.Date(2019, 3, 15, 10, 30, 0, 0, time.UTC),
		"2019-03-15 10:30:00":   time.Date(2019, 3, 15, 10, 30, 0, 0, time.UTC),
		"2019-03-15":            time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
		"15-Mar-2019":           time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
		"2019.03.15":            time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
		"  2019-03-15  ":        time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC),
		"not a date":            {},
		"":                      {},
	}
	for in, want := range cases {
		assert.Equal(t, want, parseWhoisDate(in), "input %q", in)
	}
}
