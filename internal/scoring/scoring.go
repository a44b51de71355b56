package scoring

import (
	"math"
	"strings"

	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/sitegrade/sitegrade/internal/issues"
)

const quickWinLimit = 7

// Dimension weights when the external performance score is available.
const (
	weightPerformance = 0.35
	weightUX          = 0.30
	weightSEO         = 0.20
	weightTrust       = 0.15
)

// Fallback weights redistribute performance's share instead of
// penalizing the total for a third-party outage.
const (
	fallbackWeightSEO   = 0.40
	fallbackWeightUX    = 0.35
	fallbackWeightTrust = 0.25
)

// Advisory issues are reported but never charged against a score.
var advisoryKeys = map[string]bool{
	issues.KeyTrustFAQMissing: true,
}

// Compute derives the per-dimension scores and the weighted total.
// Trust and UX subtract a fixed penalty per severity from 100; SEO
// prefers the external audit's SEO category when available.
func Compute(issueList []core.Issue, ps *core.PageSpeedResult) core.Scores {
	scores := core.Scores{
		Trust: penaltyScore(issueList, "trust."),
		UX:    penaltyScore(issueList, "ux."),
	}

	if !ps.Degraded() && ps.Scores.SEO != nil {
		scores.SEO = clamp(*ps.Scores.SEO)
	} else {
		scores.SEO = penaltyScore(issueList, "seo.")
	}

	if !ps.Degraded() && ps.Scores.Performance != nil {
		perf := clamp(*ps.Scores.Performance)
		scores.Performance = &perf
		total := round(weightPerformance*float64(perf) +
			weightUX*float64(scores.UX) +
			weightSEO*float64(scores.SEO) +
			weightTrust*float64(scores.Trust))
		scores.Total = &total
	} else {
		total := round(fallbackWeightSEO*float64(scores.SEO) +
			fallbackWeightUX*float64(scores.UX) +
			fallbackWeightTrust*float64(scores.Trust))
		scores.Total = &total
	}

	return scores
}

// QuickWins projects the remediation text of up to 7 issues with
// severity critical, high or medium, in severity order. It is always a
// subsequence of the issue list, never computed independently.
func QuickWins(issueList []core.Issue) []string {
	wins := []string{}
	for _, issue := range issueList {
		if issue.Severity == core.SeverityLow {
			continue
		}
		wins = append(wins, issue.Fix)
		if len(wins) == quickWinLimit {
			break
		}
	}
	return wins
}

func penaltyScore(issueList []core.Issue, prefix string) int {
	score := 100
	for _, issue := range issueList {
		if !strings.HasPrefix(issue.Key, prefix) || advisoryKeys[issue.Key] {
			continue
		}
		score -= issue.Severity.Penalty()
	}
	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func round(v float64) int {
	return clamp(int(math.Round(v)))
}
