package scoring

import (
	"fmt"
	"testing"

	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/sitegrade/sitegrade/internal/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// barePageIssues mirrors what the synthesizer produces for a page with
// no metadata, no trust pages and no clear call to action.
func barePageIssues() []core.Issue {
	list := []core.Issue{
		{Key: issues.KeyTitleMissing, Severity: core.SeverityHigh, Fix: "add a title"},
		{Key: issues.KeyMetaDescMissing, Severity: core.SeverityHigh, Fix: "add a meta description"},
		{Key: issues.KeyTrustContactMissing, Severity: core.SeverityHigh, Fix: "add a contact page"},
		{Key: issues.KeyTrustShippingMissing, Severity: core.SeverityHigh, Fix: "publish shipping terms"},
		{Key: issues.KeyTrustReturnsMissing, Severity: core.SeverityHigh, Fix: "publish a returns policy"},
		{Key: issues.KeyTrustPrivacyMissing, Severity: core.SeverityMedium, Fix: "publish a privacy policy"},
		{Key: issues.KeyCTAUnclear, Severity: core.SeverityMedium, Fix: "add a visible call to action"},
		{Key: issues.KeyCanonicalMissing, Severity: core.SeverityLow, Fix: "add a canonical link"},
		{Key: issues.KeyOpenGraphIncomplete, Severity: core.SeverityLow, Fix: "complete the og tags"},
		{Key: issues.KeyTrustTermsMissing, Severity: core.SeverityLow, Fix: "publish terms of service"},
		{Key: issues.KeyTrustFAQMissing, Severity: core.SeverityLow, Fix: "add an FAQ"},
	}
	core.SortIssues(list)
	return list
}

func TestComputeFallbackWeights(t *testing.T) {
	degraded := &core.PageSpeedResult{Error: "pagespeed API returned HTTP 500"}

	scores := Compute(barePageIssues(), degraded)

	assert.Equal(t, 44, scores.Trust)
	assert.Equal(t, 92, scores.UX)
	assert.Equal(t, 64, scores.SEO)
	assert.Nil(t, scores.Performance)
	require.NotNil(t, scores.Total)
	assert.Equal(t, 69, *scores.Total)
}

func TestComputeNilResultUsesFallback(t *testing.T) {
	scores := Compute(nil, nil)

	assert.Equal(t, 100, scores.Trust)
	assert.Equal(t, 100, scores.UX)
	assert.Equal(t, 100, scores.SEO)
	assert.Nil(t, scores.Performance)
	require.NotNil(t, scores.Total)
	assert.Equal(t, 100, *scores.Total)
}

func TestComputeWithPerformance(t *testing.T) {
	ps := &core.PageSpeedResult{}
	ps.Scores.Performance = intPtr(80)
	ps.Scores.SEO = intPtr(90)

	scores := Compute(nil, ps)

	require.NotNil(t, scores.Performance)
	assert.Equal(t, 80, *scores.Performance)
	assert.Equal(t, 90, scores.SEO)
	assert.Equal(t, 100, scores.UX)
	assert.Equal(t, 100, scores.Trust)
	require.NotNil(t, scores.Total)
	assert.Equal(t, 91, *scores.Total)
}

func TestComputePrefersExternalSEOScore(t *testing.T) {
	issueList := []core.Issue{
		{Key: issues.KeyTitleMissing, Severity: core.SeverityHigh},
	}
	ps := &core.PageSpeedResult{}
	ps.Scores.SEO = intPtr(73)

	scores := Compute(issueList, ps)
	assert.Equal(t, 73, scores.SEO)
}

func TestComputeClampsToZero(t *testing.T) {
	var issueList []core.Issue
	for i := 0; i < 6; i++ {
		issueList = append(issueList, core.Issue{
			Key:      fmt.Sprintf("trust.synthetic%d.missing", i),
			Severity: core.SeverityCritical,
		})
	}

	scores := Compute(issueList, nil)
	assert.Equal(t, 0, scores.Trust)
}

func TestAdvisoryIssueNotCharged(t *testing.T) {
	issueList := []core.Issue{
		{Key: issues.KeyTrustFAQMissing, Severity: core.SeverityLow, Fix: "add an FAQ"},
	}

	scores := Compute(issueList, nil)
	assert.Equal(t, 100, scores.Trust)
}

func TestQuickWinsSkipsLowSeverity(t *testing.T) {
	wins := QuickWins(barePageIssues())

	require.Len(t, wins, 7)
	assert.NotContains(t, wins, "add a canonical link")
	assert.NotContains(t, wins, "add an FAQ")
	assert.Equal(t, "add a title", wins[0])
}

func TestQuickWinsCap(t *testing.T) {
	var issueList []core.Issue
	for i := 0; i < 12; i++ {
		issueList = append(issueList, core.Issue{
			Key:      fmt.Sprintf("seo.synthetic%d", i),
			Severity: core.SeverityHigh,
			Fix:      fmt.Sprintf("fix number %d", i),
		})
	}

	wins := QuickWins(issueList)
	require.Len(t, wins, quickWinLimit)

	// Order must follow the issue list.
	for i, win := range wins {
		assert.Equal(t, fmt.Sprintf("fix number %d", i), win)
	}
}

func TestQuickWinsEmptyNotNil(t *testing.T) {
	wins := QuickWins(nil)
	assert.NotNil(t, wins)
	assert.Empty(t, wins)
}
