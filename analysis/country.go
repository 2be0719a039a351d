package analysis

import "strings"

// Country guesses by ccTLD, used when geolocation is unavailable.
var tldCountries = map[string]string{
	"in": "India", "gov.in": "India", "co.in": "India",
	"uk": "United Kingdom", "co.uk": "United Kingdom",
	"us": "United States", "au": "Australia", "ca": "Canada",
	"de": "Germany", "fr": "France", "jp": "Japan",
	"cn": "China", "br": "Brazil",
}

// CountryFromTLD maps the URL's public suffix to a country name, trying the
// full suffix first and then its last label. Returns "Unknown" when the
// suffix carries no country signal.
func CountryFromTLD(rawURL string) string {
	host := HostFromURL(rawURL)
	domain := RegistrableDomain(host)

	idx := strings.Index(domain, ".")
	if idx < 0 {
		return "Unknown"
	}
	suffix := strings.ToLower(domain[idx+1:])

	if c, ok := tldCountries[suffix]; ok {
		return c
	}
	parts := strings.Split(suffix, ".")
	if c, ok := tldCountries[parts[len(parts)-1]]; ok {
		return c
	}
	return "Unknown"
}
