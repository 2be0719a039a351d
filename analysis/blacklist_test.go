package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlacklisted(t *testing.T) {
	listed := []string{
		"https://testsafebrowsing.appspot.com/s/malware.html",
		"http://free-MALWARE-download.example.com",
		"https://example.com/phishing/login",
		"http://big-SCAM.biz",
		"https://trojan-dropper.net",
	}
	for _, url := range listed {
		assert.True(t, IsBlacklisted(url), "%s should be blacklisted", url)
	}

	clean := []string{
		"https://www.google.com",
		"https://github.com/owner/repo",
		"",
		"https://example.co.uk/shop?item=3",
	}
	for _, url := range clean {
		assert.False(t, IsBlacklisted(url), "%s should not be blacklisted", url)
	}
}
