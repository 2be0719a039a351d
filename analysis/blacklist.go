package analysis

import "strings"

// Known-malicious indicator tokens. A hit on any of these is treated as a
// confirmed-bad URL and saturates the risk score on its own.
var blacklistPatterns = []string{
	"testsafebrowsing.appspot.com", // Google's malware test host
	"malware",
	"exploit",
	"phishing",
	"scam",
	"virus",
	"trojan",
}

// IsBlacklisted reports whether the URL contains any known malicious pattern.
// Case-insensitive substring match, no I/O.
func IsBlacklisted(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range blacklistPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
