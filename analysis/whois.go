package analysis

import (
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
)

type WhoisInfo struct {
	Registrar string `json:"registrar,omitempty"`
	AgeDays   int    `json:"age_days,omitempty"`
	CreatedOn string `json:"created_on,omitempty"`
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// LookupWhois returns registrar and domain-age enrichment for a domain.
// Purely informational; a zero WhoisInfo is returned on any failure.
func LookupWhois(domain string) WhoisInfo {
	raw, err := whois.Whois(domain)
	if err != nil {
		return WhoisInfo{}
	}

	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		// Subdomains often have no registry record of their own; retry the
		// parent (e.g. scanner.example.co.uk -> example.co.uk).
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return LookupWhois(strings.Join(parts[1:], "."))
		}
		return WhoisInfo{}
	}

	info := WhoisInfo{}
	if p.Registrar != nil {
		info.Registrar = p.Registrar.Name
	}

	created := parseWhoisDate(p.Domain.CreatedDate)
	if !created.IsZero() {
		info.AgeDays = int(time.Since(created).Hours() / 24)
		info.CreatedOn = created.Format("02/01/2006")
	}

	return info
}

func parseWhoisDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
