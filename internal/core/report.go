package core

// SeoFindings holds the on-page SEO metadata extracted from the markup.
// Values are whitespace-normalized; a missing tag yields an empty string.
type SeoFindings struct {
	Title     string    `json:"title"`
	MetaDesc  string    `json:"metaDesc"`
	H1        string    `json:"h1"`
	H1Count   int       `json:"h1Count"`
	Canonical string    `json:"canonical"`
	Robots    string    `json:"robots"`
	OpenGraph OpenGraph `json:"openGraph"`
}

type OpenGraph struct {
	OgTitle string `json:"ogTitle"`
	OgDesc  string `json:"ogDesc"`
	OgImage string `json:"ogImage"`
}

func (og OpenGraph) Complete() bool {
	return og.OgTitle != "" && og.OgDesc != "" && og.OgImage != ""
}

// TrustFindings flags the presence of the six policy/support page
// categories a buyer looks for before purchasing.
type TrustFindings struct {
	Contact  bool `json:"contact"`
	Shipping bool `json:"shipping"`
	Returns  bool `json:"returns"`
	Privacy  bool `json:"privacy"`
	Terms    bool `json:"terms"`
	FAQ      bool `json:"faq"`
}

type UxFindings struct {
	HasPrimaryCTA bool `json:"hasPrimaryCta"`
}

// PageSignals are secondary, non-scored signals surfaced in the report.
type PageSignals struct {
	StructuredData []string `json:"structuredData"`
	Trackers       []string `json:"trackers"`
	PWAReady       bool     `json:"pwaReady"`
}

type PageSpeedScores struct {
	Performance   *int `json:"performance,omitempty"`
	SEO           *int `json:"seo,omitempty"`
	BestPractices *int `json:"bestPractices,omitempty"`
	Accessibility *int `json:"accessibility,omitempty"`
}

type WebVitals struct {
	LCPMs *float64 `json:"lcpMs,omitempty"`
	CLS   *float64 `json:"cls,omitempty"`
	INPMs *float64 `json:"inpMs,omitempty"`
}

type PageStats struct {
	TotalBytes *int64 `json:"totalBytes,omitempty"`
	Requests   *int   `json:"requests,omitempty"`
}

// PageSpeedResult is the normalized outcome of the external audit. A
// non-empty Error marks a degraded result: scores and metrics are absent
// and the analysis proceeds without performance data.
type PageSpeedResult struct {
	Scores  PageSpeedScores `json:"scores"`
	Metrics WebVitals       `json:"metrics"`
	Stats   *PageStats      `json:"pageStats,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (r *PageSpeedResult) Degraded() bool {
	return r == nil || r.Error != ""
}

type Scores struct {
	Total       *int `json:"total,omitempty"`
	Performance *int `json:"performance,omitempty"`
	SEO         int  `json:"seo"`
	UX          int  `json:"ux"`
	Trust       int  `json:"trust"`
}

// AnalysisReport is the final aggregate returned to the caller. It is
// assembled once by the score aggregator and never mutated afterwards.
type AnalysisReport struct {
	Input      string           `json:"input"`
	FinalURL   string           `json:"finalUrl"`
	HTTPStatus int              `json:"httpStatus,omitempty"`
	Platform   string           `json:"platform"`
	Scores     Scores           `json:"scores"`
	PageSpeed  *PageSpeedResult `json:"pagespeed"`
	SEO        SeoFindings      `json:"seo"`
	Trust      TrustFindings    `json:"trust"`
	UX         UxFindings       `json:"ux"`
	Signals    PageSignals      `json:"signals"`
	Issues     []Issue          `json:"issues"`
	QuickWins  []string         `json:"quickWins"`
}
