package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitegrade/sitegrade/internal/core"
	"golang.org/x/net/html/charset"
)

const (
	// Body ceiling. Pages larger than this are truncated before
	// extraction.
	maxBodyBytes = 2 << 20

	maxRedirects = 10

	defaultUserAgent = "SiteGrade/1.0 (+https://github.com/sitegrade/sitegrade)"
)

// Result is the outcome of retrieving the page. FinalURL is the URL
// after redirects and is what downstream components use.
type Result struct {
	HTML       string
	FinalURL   string
	StatusCode int
}

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch performs the single outbound GET for the analysis. Only
// text/html responses are accepted.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &core.FetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, &core.UnsupportedContentError{ContentType: contentType}
	}

	// Decode legacy encodings (ISO-8859-1 storefronts are still common)
	// to UTF-8 before extraction.
	limited := io.LimitReader(resp.Body, maxBodyBytes)
	reader, err := charset.NewReader(limited, contentType)
	if err != nil {
		reader = limited
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &core.FetchError{URL: target, Err: err}
	}

	return &Result{
		HTML:       string(body),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}, nil
}
