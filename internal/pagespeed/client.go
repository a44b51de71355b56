package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sitegrade/sitegrade/internal/core"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

var categories = []string{"performance", "seo", "best-practices", "accessibility"}

// Client calls the PageSpeed Insights API. When a configured key is
// rejected it retries exactly once on the public, rate-limited path.
type Client struct {
	// BaseURL is overridable in tests.
	BaseURL string

	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Audit runs the mobile-strategy audit for the four categories. Failure
// is always soft: the returned result carries an error string and the
// analysis proceeds without speed data.
func (c *Client) Audit(ctx context.Context, target string) *core.PageSpeedResult {
	result, err := c.run(ctx, target, c.apiKey)
	if err != nil && c.apiKey != "" && isAuthFailure(err) {
		c.logger.Warn("pagespeed key rejected, retrying without key",
			zap.String("url", target),
			zap.Error(err),
		)
		result, err = c.run(ctx, target, "")
	}
	if err != nil {
		c.logger.Warn("pagespeed audit unavailable",
			zap.String("url", target),
			zap.Error(err),
		)
		return &core.PageSpeedResult{Error: err.Error()}
	}
	return result
}

func (c *Client) run(ctx context.Context, target, key string) (*core.PageSpeedResult, error) {
	q := url.Values{}
	q.Set("url", target)
	q.Set("strategy", "mobile")
	for _, cat := range categories {
		q.Add("category", cat)
	}
	if key != "" {
		q.Set("key", key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed pagespeed response: %w", err)
	}

	if payload.Error != nil {
		return nil, fmt.Errorf("pagespeed API error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pagespeed API returned HTTP %d", resp.StatusCode)
	}

	return normalize(&payload), nil
}

func normalize(payload *apiResponse) *core.PageSpeedResult {
	result := &core.PageSpeedResult{}
	lh := payload.LighthouseResult

	result.Scores.Performance = categoryScore(lh.Categories, "performance")
	result.Scores.SEO = categoryScore(lh.Categories, "seo")
	result.Scores.BestPractices = categoryScore(lh.Categories, "best-practices")
	result.Scores.Accessibility = categoryScore(lh.Categories, "accessibility")

	result.Metrics.LCPMs = auditValue(lh.Audits, "largest-contentful-paint")
	result.Metrics.CLS = auditValue(lh.Audits, "cumulative-layout-shift")
	result.Metrics.INPMs = auditValue(lh.Audits, "interaction-to-next-paint")
	if result.Metrics.INPMs == nil {
		result.Metrics.INPMs = auditValue(lh.Audits, "experimental-interaction-to-next-paint")
	}

	if stats := pageStats(lh.Audits); stats != nil {
		result.Stats = stats
	}

	return result
}

func categoryScore(cats map[string]category, id string) *int {
	cat, ok := cats[id]
	if !ok || cat.Score == nil {
		return nil
	}
	score := int(math.Round(*cat.Score * 100))
	return &score
}

func auditValue(audits map[string]audit, id string) *float64 {
	a, ok := audits[id]
	if !ok || a.NumericValue == nil {
		return nil
	}
	v := *a.NumericValue
	return &v
}

func pageStats(audits map[string]audit) *core.PageStats {
	stats := &core.PageStats{}
	found := false

	if weight := auditValue(audits, "total-byte-weight"); weight != nil {
		total := int64(*weight)
		stats.TotalBytes = &total
		found = true
	}

	if diag, ok := audits["diagnostics"]; ok && diag.Details != nil && len(diag.Details.Items) > 0 {
		if raw, ok := diag.Details.Items[0]["numRequests"]; ok {
			if n, ok := raw.(float64); ok {
				requests := int(n)
				stats.Requests = &requests
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return stats
}

// isAuthFailure matches invalid/forbidden/unauthorized key errors. Only
// these trigger the keyless fallback; anything else is final.
func isAuthFailure(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"api key", "invalid key", "unauthorized", "forbidden", "permission"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

type apiResponse struct {
	LighthouseResult lighthouseResult `json:"lighthouseResult"`
	Error            *apiError        `json:"error"`
}

type lighthouseResult struct {
	Categories map[string]category `json:"categories"`
	Audits     map[string]audit    `json:"audits"`
}

type category struct {
	Score *float64 `json:"score"`
}

type audit struct {
	NumericValue *float64      `json:"numericValue"`
	Details      *auditDetails `json:"details"`
}

type auditDetails struct {
	Items []map[string]interface{} `json:"items"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
