package analyzer

import (
	"context"
	"errors"

	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/sitegrade/sitegrade/internal/extractor"
	"github.com/sitegrade/sitegrade/internal/fetcher"
	"github.com/sitegrade/sitegrade/internal/issues"
	"github.com/sitegrade/sitegrade/internal/scoring"
	"go.uber.org/zap"
)

// PageFetcher retrieves the raw markup for a resolved URL.
type PageFetcher interface {
	Fetch(ctx context.Context, target string) (*fetcher.Result, error)
}

// PageSpeedAuditor runs the external performance audit. Implementations
// must fail soft: the result carries an error instead of returning one.
type PageSpeedAuditor interface {
	Audit(ctx context.Context, target string) *core.PageSpeedResult
}

// Service runs the whole analysis pipeline for one URL. Each call is an
// independent, stateless unit of work.
type Service struct {
	fetcher   PageFetcher
	pagespeed PageSpeedAuditor
	extractor *extractor.Extractor
	logger    *zap.Logger
}

func NewService(f PageFetcher, ps PageSpeedAuditor, logger *zap.Logger) *Service {
	return &Service{
		fetcher:   f,
		pagespeed: ps,
		extractor: extractor.New(),
		logger:    logger,
	}
}

// Analyze validates the input, fetches the page, and runs extraction
// and the PageSpeed audit concurrently. The PageSpeed call starts only
// after the fetch resolved the final URL, since that is the URL the
// external audit must measure.
//
// Validation and non-HTML responses are fatal. A transport failure
// degrades: the report is still produced with absent findings and the
// platform reported as unknown.
func (s *Service) Analyze(ctx context.Context, rawInput string) (*core.AnalysisReport, error) {
	normalized, err := NormalizeURL(rawInput)
	if err != nil {
		return nil, err
	}

	report := &core.AnalysisReport{
		Input:    rawInput,
		FinalURL: normalized,
		Platform: extractor.PlatformUnknown,
	}

	var markup string
	fetched, err := s.fetcher.Fetch(ctx, normalized)
	switch {
	case err == nil:
		markup = fetched.HTML
		report.FinalURL = fetched.FinalURL
		report.HTTPStatus = fetched.StatusCode
	default:
		var unsupported *core.UnsupportedContentError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("page fetch failed, producing degraded report",
			zap.String("url", normalized),
			zap.Error(err),
		)
	}

	pagespeedCh := make(chan *core.PageSpeedResult, 1)
	go func() {
		pagespeedCh <- s.pagespeed.Audit(ctx, report.FinalURL)
	}()

	findings := s.extractor.Extract(markup)
	report.Platform = findings.Platform
	report.SEO = findings.SEO
	report.Trust = findings.Trust
	report.UX = findings.UX
	report.Signals = findings.Signals
	report.Issues = issues.Synthesize(findings.SEO, findings.Trust, findings.UX)

	pagespeedResult := <-pagespeedCh
	report.PageSpeed = pagespeedResult
	report.Scores = scoring.Compute(report.Issues, pagespeedResult)
	report.QuickWins = scoring.QuickWins(report.Issues)

	return report, nil
}
