package classify

import (
	"net/url"
	"regexp"
	"strings"
)

var suspiciousTLDs = map[string]bool{
	"xyz": true, "top": true, "work": true, "click": true, "link": true,
	"gq": true, "cf": true, "tk": true, "ml": true,
}

var urlShorteners = []string{
	"bit.ly", "goo.gl", "t.co", "tinyurl.com", "ow.ly",
	"is.gd", "buff.ly", "adf.ly",
}

var ipv4HostPattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

// Features are the lexical attributes extracted from a raw URL string. Field
// order matches the model's input vector.
type Features struct {
	URLLength     int
	NumDots       int
	NumHyphens    int
	NumAt         int
	NumQuestion   int
	NumPercent    int
	NumEqual      int
	NumSlash      int
	NumDigits     int
	HasHTTPS      bool
	HasIP         bool
	UsesShortener bool
	SuspiciousTLD bool
	PathLength    int
	QueryLength   int
	SpecialChars  int
}

// ExtractFeatures computes the lexical feature set for a URL. Parse failures
// fall back to treating the whole string as the host part.
func ExtractFeatures(rawURL string) Features {
	rawURL = strings.TrimSpace(rawURL)
	withScheme := rawURL
	if !strings.Contains(withScheme, "://") {
		withScheme = "http://" + withScheme
	}

	var scheme, host, path, query string
	if u, err := url.Parse(withScheme); err == nil {
		scheme = u.Scheme
		host = u.Host
		path = u.Path
		query = u.RawQuery
	} else {
		host = rawURL
	}

	return Features{
		URLLength:     len(rawURL),
		NumDots:       strings.Count(rawURL, "."),
		NumHyphens:    strings.Count(rawURL, "-"),
		NumAt:         strings.Count(rawURL, "@"),
		NumQuestion:   strings.Count(rawURL, "?"),
		NumPercent:    strings.Count(rawURL, "%"),
		NumEqual:      strings.Count(rawURL, "="),
		NumSlash:      strings.Count(rawURL, "/"),
		NumDigits:     countDigits(rawURL),
		HasHTTPS:      strings.EqualFold(scheme, "https"),
		HasIP:         ipv4HostPattern.MatchString(host),
		UsesShortener: usesShortener(host),
		SuspiciousTLD: suspiciousTLDs[lastLabel(host)],
		PathLength:    len(path),
		QueryLength:   len(query),
		SpecialChars:  countAny(rawURL, "~!#*;,$"),
	}
}

// Vector flattens the features into the model's float32 input layout.
func (f Features) Vector() []float32 {
	b := func(v bool) float32 {
		if v {
			return 1
		}
		return 0
	}
	return []float32{
		float32(f.URLLength),
		float32(f.NumDots),
		float32(f.NumHyphens),
		float32(f.NumAt),
		float32(f.NumQuestion),
		float32(f.NumPercent),
		float32(f.NumEqual),
		float32(f.NumSlash),
		float32(f.NumDigits),
		b(f.HasHTTPS),
		b(f.HasIP),
		b(f.UsesShortener),
		b(f.SuspiciousTLD),
		float32(f.PathLength),
		float32(f.QueryLength),
		float32(f.SpecialChars),
	}
}

// FeatureCount is the model input width.
const FeatureCount = 16

func countDigits(s string) int {
	n := 0
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			n++
		}
	}
	return n
}

func countAny(s, chars string) int {
	n := 0
	for _, c := range chars {
		n += strings.Count(s, string(c))
	}
	return n
}

func usesShortener(host string) bool {
	host = strings.ToLower(host)
	for _, short := range urlShorteners {
		if strings.Contains(host, short) {
			return true
		}
	}
	return false
}

func lastLabel(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}
