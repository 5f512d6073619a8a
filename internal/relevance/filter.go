// Package relevance classifies image search candidates before download.
package relevance

import (
	"net/url"
	"strings"

	"go-image-cache/internal/cache"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

// DefaultDeniedHosts are stock image marketplaces and the CDNs that serve
// their previews. Previews are watermarked and licensed, so they are rejected
// before anything else.
var DefaultDeniedHosts = []string{
	"shutterstock.com",
	"gettyimages.com",
	"istockphoto.com",
	"alamy.com",
	"dreamstime.com",
	"123rf.com",
	"depositphotos.com",
	"adobestock.com",
	"stock.adobe.com",
	"pond5.com",
	"vecteezy.com",
	"freepik.com",
	"pixta.jp",
	"pixtastock.com",
	"ftcdn.net",
	"bigstockphoto.com",
	"canstockphoto.com",
	"agefotostock.com",
	"stocksy.com",
}

// DefaultTrustedHosts are heritage, museum and encyclopedia domains
var DefaultTrustedHosts = []string{
	"heritage.go.kr",
	"khs.go.kr",
	"cha.go.kr",
	"museum.go.kr",
	"gogung.go.kr",
	"nfm.go.kr",
	"history.go.kr",
	"emuseum.go.kr",
	"encykorea.aks.ac.kr",
	"aks.ac.kr",
	"koreanhistory.or.kr",
	"wikipedia.org",
	"wikimedia.org",
	"britannica.com",
	"metmuseum.org",
	"britishmuseum.org",
}

// DefaultSignalTerms suggest that a page is about Korean history
var DefaultSignalTerms = []string{
	"korea",
	"korean",
	"hanguk",
	"joseon",
	"goryeo",
	"silla",
	"baekje",
	"goguryeo",
	"gojoseon",
	"balhae",
	"heritage",
	"museum",
	"artifact",
	"history",
	"historical",
	"한국",
	"역사",
	"유물",
	"유적",
	"문화재",
	"국가유산",
	"박물관",
}

var _ interfaces.RelevanceFilter = (*Filter)(nil)

// Filter is a pure, total relevance classifier
type Filter struct {
	denied      []string
	deniedTerms []string
	trusted []string
	signals []string
}

// NewFilter builds a filter from the default host and term lists
func NewFilter() *Filter {
	return NewFilterWithLists(DefaultDeniedHosts, DefaultTrustedHosts, DefaultSignalTerms)
}

// NewFilterWithLists builds a filter with custom lists. Entries are lowercased.
func NewFilterWithLists(denied, trusted, signals []string) *Filter {
	denied = lowerAll(denied)
	return &Filter{
		denied:      denied,
		deniedTerms: linkTerms(denied),
		trusted:     lowerAll(trusted),
		signals:     lowerAll(signals),
	}
}

// IsRelevant reports whether candidate should be downloaded. A link that
// matches a denied host anywhere (host, or a re-hosted file such as
// shutterstock_123.jpg) loses even when the text looks relevant; trusted hosts
// win even when it does not.
func (f *Filter) IsRelevant(candidate models.Candidate, keywords []string) bool {
	u, err := url.Parse(strings.TrimSpace(candidate.Link))
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return false
	}

	if matchesHost(host, f.denied) {
		return false
	}
	link := strings.ToLower(candidate.Link)
	for _, term := range f.deniedTerms {
		if strings.Contains(link, term) {
			return false
		}
	}
	if matchesHost(host, f.trusted) {
		return true
	}

	text := cache.Normalize(candidate.Link + " " + candidate.Title + " " + candidate.Snippet)
	for _, term := range f.signals {
		if strings.Contains(text, term) {
			return true
		}
	}
	for _, kw := range keywords {
		if n := cache.Normalize(kw); n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// matchesHost reports whether host equals an entry or is a subdomain of one
func matchesHost(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// linkTerms strips the top-level label from each domain: "shutterstock.com"
// becomes "shutterstock", "stock.adobe.com" becomes "stock.adobe"
func linkTerms(domains []string) []string {
	terms := make([]string, 0, len(domains))
	for _, d := range domains {
		if i := strings.LastIndex(d, "."); i > 0 {
			d = d[:i]
		}
		terms = append(terms, d)
	}
	return terms
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
