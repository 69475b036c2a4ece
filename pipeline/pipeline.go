// Package pipeline wires the audit stages together: gather, extract, assess,
// score, format. Stages run strictly in that order and the first failure
// aborts the run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/yangnim21029/pagelens/assess"
	"github.com/yangnim21029/pagelens/extractor"
	"github.com/yangnim21029/pagelens/gatherer"
	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/report"
	"github.com/yangnim21029/pagelens/scorer"
)

// Result bundles the successful audit output.
type Result struct {
	Report            *models.ScoredReport
	PageUnderstanding *models.PageUnderstanding
	ElapsedMs         int64
}

// Pipeline runs audits. It is stateless per request and safe for concurrent
// use.
type Pipeline struct {
	engine *assess.Engine
	logger *slog.Logger
	now    func() time.Time
}

// New builds a pipeline around the given rule standards.
func New(cfg assess.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		engine: assess.New(cfg),
		logger: logger,
		now:    time.Now,
	}
}

// Run executes one audit. The context is checked between stages so a
// cancelled request stops before the next stage starts.
func (p *Pipeline) Run(ctx context.Context, req *models.AuditRequest) (*Result, error) {
	start := p.now()

	ci, err := gatherer.Gather(gatherer.Input{
		HTML:            req.HTML,
		PageDetails:     req.PageDetails,
		FocusKeyword:    req.FocusKeyword,
		RelatedKeywords: req.RelatedKeywords,
	})
	if err != nil {
		return nil, p.fail(start, "gather", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, p.fail(start, "gather", ctxError(err))
	}

	baseURL := req.Options.BaseURL
	if baseURL == "" {
		baseURL = ci.PageDetails.URL
	}
	snap, err := extractor.Extract(ci.HTMLContent, extractor.Options{
		ContentSelectors: req.Options.ContentSelectors,
		ExcludeSelectors: req.Options.ExcludeSelectors,
		BaseURL:          baseURL,
	})
	if err != nil {
		return nil, p.fail(start, "extract", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, p.fail(start, "extract", ctxError(err))
	}

	evals, err := p.engine.Run(snap, ci, req.Options.Assessments)
	if err != nil {
		return nil, p.fail(start, "assess", err)
	}

	scores := scorer.Score(evals)
	rep, err := report.Format(ci.PageDetails.URL, evals, scores, p.now())
	if err != nil {
		return nil, p.fail(start, "format", err)
	}

	elapsed := p.now().Sub(start).Milliseconds()
	p.logger.Info("audit completed",
		"url", ci.PageDetails.URL,
		"overall_score", scores.OverallScore,
		"evaluations", len(evals),
		"elapsed_ms", elapsed,
	)

	return &Result{
		Report:            rep,
		PageUnderstanding: pageUnderstanding(snap),
		ElapsedMs:         elapsed,
	}, nil
}

// fail logs the failed stage and returns the error with the stage name
// prefixed to its message, keeping the original code and cause. Codes alone
// do not locate the stage: invalid selectors surface as VALIDATION_ERROR
// from extract, not gather.
func (p *Pipeline) fail(start time.Time, stage string, err error) error {
	p.logger.Warn("audit failed",
		"stage", stage,
		"error", err,
		"elapsed_ms", p.now().Sub(start).Milliseconds(),
	)
	if ae, ok := err.(*models.AuditError); ok {
		return models.NewAuditError(ae.Code, stage+": "+ae.Message, ae)
	}
	return models.NewAuditError(models.ErrCodeInternal, stage+": "+err.Error(), err)
}

func ctxError(err error) error {
	return models.NewAuditError(models.ErrCodeInternal, "audit cancelled", err)
}

// pageUnderstanding projects the snapshot into the display summary.
func pageUnderstanding(s *models.StructuralSnapshot) *models.PageUnderstanding {
	internal, external := 0, 0
	for _, l := range s.Links {
		if l.IsExternal {
			external++
		} else {
			internal++
		}
	}

	avgWords := 0.0
	if s.TextStats.SentenceCount > 0 {
		avgWords = float64(s.WordCount) / float64(s.TextStats.SentenceCount)
	}

	return &models.PageUnderstanding{
		H1Count:             s.CountHeadingsOfLevel(1),
		H2Count:             s.CountHeadingsOfLevel(2),
		H3Count:             s.CountHeadingsOfLevel(3),
		ImageCount:          len(s.Images),
		VideoCount:          len(s.Videos),
		InternalLinkCount:   internal,
		ExternalLinkCount:   external,
		ParagraphCount:      s.TextStats.ParagraphCount,
		WordCount:           s.WordCount,
		AvgWordsPerSentence: avgWords,
		ReadingTimeMinutes:  s.TextStats.ReadingTimeMinutes,
	}
}
