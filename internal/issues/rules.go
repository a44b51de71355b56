package issues

import (
	"strings"
	"unicode/utf8"

	"github.com/sitegrade/sitegrade/internal/core"
)

const (
	titleMinLen = 25
	titleMaxLen = 65
	descMinLen  = 70
	descMaxLen  = 170
)

// Stable issue keys. The trust FAQ key is advisory: the aggregator
// reports it but never charges it against the trust score.
const (
	KeyTitleMissing        = "seo.title.missing"
	KeyTitleLength         = "seo.title.length"
	KeyMetaDescMissing     = "seo.metadesc.missing"
	KeyMetaDescLength      = "seo.metadesc.length"
	KeyH1Missing           = "seo.h1.missing"
	KeyH1Multiple          = "seo.h1.multiple"
	KeyCanonicalMissing    = "seo.canonical.missing"
	KeyNoindex             = "seo.noindex"
	KeyOpenGraphIncomplete = "seo.opengraph.incomplete"
	KeyCTAUnclear          = "ux.cta.unclear"

	KeyTrustContactMissing  = "trust.contact.missing"
	KeyTrustShippingMissing = "trust.shipping.missing"
	KeyTrustReturnsMissing  = "trust.returns.missing"
	KeyTrustPrivacyMissing  = "trust.privacy.missing"
	KeyTrustTermsMissing    = "trust.terms.missing"
	KeyTrustFAQMissing      = "trust.faq.missing"
)

// Synthesize applies the fixed rule table against the findings. Rules
// are independent and evaluated unconditionally; each produces at most
// one issue. The result is sorted by severity rank, stable, so ties
// keep discovery order: SEO, then trust, then UX.
func Synthesize(seo core.SeoFindings, trust core.TrustFindings, ux core.UxFindings) []core.Issue {
	var out []core.Issue

	add := func(cond bool, key string, severity core.Severity, fix string) {
		if cond {
			out = append(out, core.Issue{Key: key, Severity: severity, Fix: fix})
		}
	}

	titleLen := utf8.RuneCountInString(seo.Title)
	descLen := utf8.RuneCountInString(seo.MetaDesc)

	add(seo.Title == "", KeyTitleMissing, core.SeverityHigh,
		"Add a descriptive <title> tag of 25-65 characters including your main keyword.")
	add(seo.Title != "" && (titleLen < titleMinLen || titleLen > titleMaxLen), KeyTitleLength, core.SeverityMedium,
		"Rewrite the <title> to 25-65 characters so search results show it in full.")
	add(seo.MetaDesc == "", KeyMetaDescMissing, core.SeverityHigh,
		"Add a meta description of 70-170 characters summarizing the page.")
	add(seo.MetaDesc != "" && (descLen < descMinLen || descLen > descMaxLen), KeyMetaDescLength, core.SeverityMedium,
		"Adjust the meta description to 70-170 characters.")
	add(seo.H1Count == 0, KeyH1Missing, core.SeverityHigh,
		"Add exactly one <h1> heading describing the page's main topic.")
	add(seo.H1Count > 1, KeyH1Multiple, core.SeverityLow,
		"Keep a single <h1> per page; demote the extra ones to <h2>.")
	add(seo.Canonical == "", KeyCanonicalMissing, core.SeverityLow,
		"Add a <link rel=\"canonical\"> to prevent duplicate-content dilution.")
	add(containsNoindex(seo.Robots), KeyNoindex, core.SeverityCritical,
		"Remove the noindex robots directive; the page is invisible to search engines.")
	add(!seo.OpenGraph.Complete(), KeyOpenGraphIncomplete, core.SeverityLow,
		"Complete the og:title, og:description and og:image tags for link previews.")

	add(!trust.Contact, KeyTrustContactMissing, core.SeverityHigh,
		"Add a visible contact page or link; buyers abandon stores they cannot reach.")
	add(!trust.Shipping, KeyTrustShippingMissing, core.SeverityHigh,
		"Publish a shipping/delivery information page and link it from the footer.")
	add(!trust.Returns, KeyTrustReturnsMissing, core.SeverityHigh,
		"Publish a returns and refunds policy; it directly affects purchase confidence.")
	add(!trust.Privacy, KeyTrustPrivacyMissing, core.SeverityMedium,
		"Add a privacy policy page covering how customer data is handled.")
	add(!trust.Terms, KeyTrustTermsMissing, core.SeverityLow,
		"Add a terms and conditions page.")
	add(!trust.FAQ, KeyTrustFAQMissing, core.SeverityLow,
		"Consider adding an FAQ or help page to cut pre-sale support load.")

	add(!ux.HasPrimaryCTA, KeyCTAUnclear, core.SeverityMedium,
		"Add a clear primary call to action (e.g. \"Buy now\", \"Comprar\") above the fold.")

	core.SortIssues(out)
	return out
}

func containsNoindex(robots string) bool {
	return strings.Contains(strings.ToLower(robots), "noindex")
}
