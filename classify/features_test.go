package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeaturesPlainURL(t *testing.T) {
	f := ExtractFeatures("https://www.example.com/account?id=42")

	assert.Equal(t, 37, f.URLLength)
	assert.Equal(t, 2, f.NumDots)
	assert.Equal(t, 0, f.NumHyphens)
	assert.Equal(t, 1, f.NumQuestion)
	assert.Equal(t, 1, f.NumEqual)
	assert.Equal(t, 3, f.NumSlash)
	assert.Equal(t, 2, f.NumDigits)
	assert.True(t, f.HasHTTPS)
	assert.False(t, f.HasIP)
	assert.False(t, f.UsesShortener)
	assert.False(t, f.SuspiciousTLD)
	assert.Equal(t, len("/account"), f.PathLength)
	assert.Equal(t, len("id=42"), f.QueryLength)
}

func TestExtractFeaturesSchemelessInput(t *testing.T) {
	f := ExtractFeatures("example.com/login")

	// A bare host still parses; no https, path preserved.
	assert.False(t, f.HasHTTPS)
	assert.Equal(t, len("/login"), f.PathLength)
}

func TestExtractFeaturesIPHost(t *testing.T) {
	assert.True(t, ExtractFeatures("http://192.168.1.10/admin").HasIP)
	assert.False(t, ExtractFeatures("http://example.com/192.168.1.10").HasIP)
}

func TestExtractFeaturesShortener(t *testing.T) {
	assert.True(t, ExtractFeatures("https://bit.ly/3xYzAbC").UsesShortener)
	assert.True(t, ExtractFeatures("https://TinyURL.com/abc").UsesShortener)
	assert.False(t, ExtractFeatures("https://example.com/bitly").UsesShortener)
}

func TestExtractFeaturesSuspiciousTLD(t *testing.T) {
	assert.True(t, ExtractFeatures("http://cheap-deals.xyz").SuspiciousTLD)
	assert.True(t, ExtractFeatures("http://promo.tk:8080/x").SuspiciousTLD)
	assert.False(t, ExtractFeatures("http://example.com").SuspiciousTLD)
	assert.False(t, ExtractFeatures("localhost").SuspiciousTLD)
}

func TestVectorLayout(t *testing.T) {
	f := ExtractFeatures("https://a-b.example.xyz/p?q=1%20x")
	v := f.Vector()

	require.Len(t, v, FeatureCount)
	assert.Equal(t, float32(f.URLLength), v[0])
	assert.Equal(t, float32(f.NumHyphens), v[2])
	assert.Equal(t, float32(1), v[9], "https flag")
	assert.Equal(t, float32(1), v[12], "suspicious tld flag")
}
