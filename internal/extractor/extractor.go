package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitegrade/sitegrade/internal/core"
)

// Findings is everything the extractor pulls out of one page.
type Findings struct {
	Platform string
	SEO      core.SeoFindings
	Trust    core.TrustFindings
	UX       core.UxFindings
	Signals  core.PageSignals
}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract scans the markup for all analysis dimensions. It never fails:
// malformed or empty markup yields absent/false findings, and the
// markup is parsed into a tag tree exactly once.
func (e *Extractor) Extract(markup string) *Findings {
	lower := strings.ToLower(markup)

	findings := &Findings{
		Platform: detectPlatform(lower),
	}
	findings.Signals.Trackers = detectTrackers(lower)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// The tolerant parser only fails on reader errors, which a
		// string reader never produces. Text-level findings still hold.
		findings.Trust = matchTrustInText(lower)
		return findings
	}

	pageText := strings.ToLower(doc.Text())

	findings.SEO = extractSEO(doc)
	findings.Trust = detectTrust(doc, pageText)
	findings.UX = detectCTA(doc)
	findings.Signals.StructuredData = extractStructuredData(doc)
	findings.Signals.PWAReady = detectPWA(doc, lower)

	return findings
}

func detectPlatform(lower string) string {
	for _, p := range platformMarkers {
		if strings.Contains(lower, p.Marker) {
			return p.Name
		}
	}
	return PlatformUnknown
}

func extractSEO(doc *goquery.Document) core.SeoFindings {
	seo := core.SeoFindings{}

	seo.Title = normalizeSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(attr(s, "name")))
		property := strings.ToLower(strings.TrimSpace(attr(s, "property")))
		content := normalizeSpace(attr(s, "content"))

		switch {
		case name == "description" && seo.MetaDesc == "":
			seo.MetaDesc = content
		case name == "robots" && seo.Robots == "":
			seo.Robots = content
		case property == "og:title" && seo.OpenGraph.OgTitle == "":
			seo.OpenGraph.OgTitle = content
		case property == "og:description" && seo.OpenGraph.OgDesc == "":
			seo.OpenGraph.OgDesc = content
		case property == "og:image" && seo.OpenGraph.OgImage == "":
			seo.OpenGraph.OgImage = content
		}
	})

	h1s := doc.Find("h1")
	seo.H1Count = h1s.Length()
	if seo.H1Count > 0 {
		seo.H1 = normalizeSpace(h1s.First().Text())
	}

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		if seo.Canonical != "" {
			return
		}
		if strings.EqualFold(strings.TrimSpace(attr(s, "rel")), "canonical") {
			seo.Canonical = strings.TrimSpace(attr(s, "href"))
		}
	})

	return seo
}

// detectTrust tests each category against every anchor's href and label,
// then falls back to the whole-page text for the lenient match.
func detectTrust(doc *goquery.Document, pageText string) core.TrustFindings {
	var anchors []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href := strings.ToLower(attr(s, "href"))
		label := strings.ToLower(normalizeSpace(s.Text()))
		if href != "" {
			anchors = append(anchors, href)
		}
		if label != "" {
			anchors = append(anchors, label)
		}
	})

	hit := func(category TrustCategory) bool {
		for _, kw := range trustKeywords[category] {
			for _, a := range anchors {
				if strings.Contains(a, kw) {
					return true
				}
			}
			if strings.Contains(pageText, kw) {
				return true
			}
		}
		return false
	}

	return core.TrustFindings{
		Contact:  hit(TrustContact),
		Shipping: hit(TrustShipping),
		Returns:  hit(TrustReturns),
		Privacy:  hit(TrustPrivacy),
		Terms:    hit(TrustTerms),
		FAQ:      hit(TrustFAQ),
	}
}

// matchTrustInText is the text-only path used when no tag tree exists.
func matchTrustInText(lower string) core.TrustFindings {
	hit := func(category TrustCategory) bool {
		for _, kw := range trustKeywords[category] {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
	return core.TrustFindings{
		Contact:  hit(TrustContact),
		Shipping: hit(TrustShipping),
		Returns:  hit(TrustReturns),
		Privacy:  hit(TrustPrivacy),
		Terms:    hit(TrustTerms),
		FAQ:      hit(TrustFAQ),
	}
}

func detectCTA(doc *goquery.Document) core.UxFindings {
	found := false
	doc.Find("a, button, input[type='submit']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(normalizeSpace(s.Text()))
		if text == "" {
			text = strings.ToLower(normalizeSpace(attr(s, "value")))
		}
		for _, phrase := range ctaPhrases {
			if strings.Contains(text, phrase) {
				found = true
				return false
			}
		}
		return true
	})
	return core.UxFindings{HasPrimaryCTA: found}
}

// extractStructuredData collects declared @type values from JSON-LD
// blocks. Malformed JSON is skipped per block, never surfaced.
func extractStructuredData(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var types []string

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if len(types) >= maxStructuredDataTypes {
			return
		}
		if !strings.EqualFold(strings.TrimSpace(attr(s, "type")), "application/ld+json") {
			return
		}
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		collectTypes(payload, seen, &types)
	})

	return types
}

func collectTypes(node interface{}, seen map[string]bool, types *[]string) {
	if len(*types) >= maxStructuredDataTypes {
		return
	}
	switch v := node.(type) {
	case map[string]interface{}:
		if t, ok := v["@type"]; ok {
			switch tv := t.(type) {
			case string:
				appendType(tv, seen, types)
			case []interface{}:
				for _, item := range tv {
					if s, ok := item.(string); ok {
						appendType(s, seen, types)
					}
				}
			}
		}
		for _, child := range v {
			collectTypes(child, seen, types)
		}
	case []interface{}:
		for _, child := range v {
			collectTypes(child, seen, types)
		}
	}
}

func appendType(t string, seen map[string]bool, types *[]string) {
	t = strings.TrimSpace(t)
	if t == "" || seen[t] || len(*types) >= maxStructuredDataTypes {
		return
	}
	seen[t] = true
	*types = append(*types, t)
}

func detectTrackers(lower string) []string {
	seen := make(map[string]bool)
	var vendors []string
	for _, t := range trackerMarkers {
		if seen[t.Vendor] {
			continue
		}
		if strings.Contains(lower, t.Marker) {
			seen[t.Vendor] = true
			vendors = append(vendors, t.Vendor)
		}
	}
	return vendors
}

// detectPWA requires both an app manifest (or touch icon) and a
// service-worker registration marker.
func detectPWA(doc *goquery.Document, lower string) bool {
	hasManifest := false
	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(attr(s, "rel"))
		if strings.Contains(rel, "manifest") || strings.Contains(rel, "apple-touch-icon") {
			hasManifest = true
			return false
		}
		return true
	})
	if !hasManifest {
		return false
	}

	for _, marker := range serviceWorkerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
