package analysis

import (
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/publicsuffix"
)

type DomainInfo struct {
	Domain string `json:"domain,omitempty"`
	IP     string `json:"ip,omitempty"`
}

// Resolver extracts the registrable domain from a URL and resolves it to an
// IP address. Resolution failures are tolerated: the returned DomainInfo
// carries an empty IP, never an error.
type Resolver struct {
	// DNSServer is the resolver to query, host:port. Defaults to Google DNS.
	DNSServer string

	client *dns.Client
}

func NewResolver(server string) *Resolver {
	if server == "" {
		server = "8.8.8.8:53"
	}
	return &Resolver{
		DNSServer: server,
		client:    &dns.Client{Timeout: 3 * time.Second},
	}
}

func (r *Resolver) Resolve(rawURL string) DomainInfo {
	host := HostFromURL(rawURL)
	if host == "" {
		return DomainInfo{}
	}

	// Raw-IP hosts skip both suffix extraction and DNS.
	if net.ParseIP(host) != nil {
		return DomainInfo{Domain: host, IP: host}
	}

	domain := RegistrableDomain(host)
	return DomainInfo{Domain: domain, IP: r.lookupIP(domain)}
}

// HostFromURL pulls the bare hostname out of a URL, tolerating missing
// schemes, ports and paths.
func HostFromURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// RegistrableDomain returns the eTLD+1 for the host, falling back to the bare
// host when no registrable suffix is found (e.g. "localhost").
func RegistrableDomain(host string) string {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	return domain
}

// lookupIP resolves the domain to a single address, preferring IPv4. Queries
// the configured DNS server directly and falls back to the system resolver.
func (r *Resolver) lookupIP(domain string) string {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(domain), qtype)

		resp, _, err := r.client.Exchange(m, r.DNSServer)
		if err != nil || resp == nil {
			continue
		}
		for _, rr := range resp.Answer {
			switch a := rr.(type) {
			case *dns.A:
				return a.A.String()
			case *dns.AAAA:
				return a.AAAA.String()
			}
		}
	}

	// Direct query failed; the system resolver may still know the answer.
	ips, err := net.LookupIP(domain)
	if err != nil || len(ips) == 0 {
		return ""
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	return ips[0].String()
}
