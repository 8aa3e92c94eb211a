package config

import (
	"errors"
	"fmt"
	"strings"
)

// Page slugs of the fixed site sections.
const (
	HomeSlug          = "main"
	NewsSlug          = "news"
	CoursesSlug       = "courses"
	RegulationsSlug   = "regulamin"
	ContactSlug       = "contact"
	PrivacyPolicySlug = "privacy_policy"
)

// SitePage describes one of the fixed site sections.
type SitePage struct {
	Slug  string
	Title string
	URL   string
}

// EditURL is where superusers manage the articles of the page.
func (p SitePage) EditURL() string {
	return "/add_article/" + p.Slug + "/"
}

// Site is the fixed set of pages served by the application, in navigation order.
type Site struct {
	Name  string
	Pages []SitePage
}

// DefaultSite returns the Cool School page table.
func DefaultSite() Site {
	return Site{
		Name: "Cool School",
		Pages: []SitePage{
			{Slug: HomeSlug, Title: "Główna", URL: "/"},
			{Slug: NewsSlug, Title: "Aktualności", URL: "/news/"},
			{Slug: CoursesSlug, Title: "Kursy", URL: "/courses/"},
			{Slug: RegulationsSlug, Title: "Regulamin", URL: "/regulamin/"},
			{Slug: ContactSlug, Title: "Kontakt", URL: "/contact/"},
			{Slug: PrivacyPolicySlug, Title: "Polityka Prywatności", URL: "/privacy_policy/"},
		},
	}
}

// Page looks up a site page by slug.
func (s Site) Page(slug string) (SitePage, bool) {
	for _, p := range s.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return SitePage{}, false
}

// Validate checks that slugs and URLs are unique and that the pages the
// home whiteboard depends on exist.
func (s Site) Validate() error {
	if len(s.Pages) == 0 {
		return errors.New("site has no pages")
	}
	slugs := make(map[string]bool, len(s.Pages))
	urls := make(map[string]bool, len(s.Pages))
	for _, p := range s.Pages {
		if p.Slug == "" || p.Title == "" {
			return fmt.Errorf("site page %+v needs a slug and a title", p)
		}
		if !strings.HasPrefix(p.URL, "/") || !strings.HasSuffix(p.URL, "/") {
			return fmt.Errorf("site page %q: url %q must start and end with /", p.Slug, p.URL)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("duplicate site page slug %q", p.Slug)
		}
		if urls[p.URL] {
			return fmt.Errorf("duplicate site page url %q", p.URL)
		}
		slugs[p.Slug] = true
		urls[p.URL] = true
	}
	if !slugs[HomeSlug] || !slugs[NewsSlug] {
		return fmt.Errorf("site must define the %q and %q pages", HomeSlug, NewsSlug)
	}
	return nil
}
