package service

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/octobees/lead-discovery/internal/entity"
)

var idnaProfile = idna.Lookup

// socialDomains are platforms whose profile pages do not count as a professional website.
var socialDomains = []string{
	"facebook.com",
	"fb.com",
	"fb.me",
	"instagram.com",
	"tiktok.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"youtube.com",
	"youtu.be",
	"pinterest.com",
	"wa.me",
	"whatsapp.com",
	"linktr.ee",
	"linkin.bio",
	"business.site",
	"tripadvisor.com",
	"tripadvisor.pt",
	"thefork.com",
	"thefork.pt",
	"ubereats.com",
	"glovoapp.com",
	"google.com",
	"goo.gl",
}

// IsSocialWebsite reports whether raw points at a social network, link-in-bio
// or listing page rather than a site the business owns.
func IsSocialWebsite(raw string) bool {
	host := websiteHost(raw)
	if host == "" {
		return false
	}
	for _, domain := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ClearSocialWebsites returns a copy of leads where social-media websites are
// replaced by nil. Order and all other fields are preserved.
func ClearSocialWebsites(leads []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, len(leads))
	for i, lead := range leads {
		if lead.Website != nil && IsSocialWebsite(*lead.Website) {
			lead.Website = nil
		}
		out[i] = lead
	}
	return out
}

func websiteHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.Trim(strings.TrimSpace(u.Hostname()), "."))
	if host == "" {
		return ""
	}
	if ascii, err := idnaProfile.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}
	return strings.TrimPrefix(host, "www.")
}
