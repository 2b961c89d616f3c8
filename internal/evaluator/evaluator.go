package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bottomline-assist/talent-matcher/internal/logger"
	"github.com/bottomline-assist/talent-matcher/internal/models"
	"github.com/bottomline-assist/talent-matcher/internal/prompt"
)

const (
	reportDateLayout = "02 January 2006"

	assessmentMethod = "This report provides an AI-assisted evaluation of candidates against the role requirements. It summarizes estimated role fit, highlights strengths and potential risks, and presents a structured match score to support HR and hiring manager decisions."
)

type textExtractor interface {
	Extract(path string) (string, error)
}

type completer interface {
	Evaluate(ctx context.Context, prompt string) (*models.Evaluation, error)
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Orchestrator runs the evaluation pipeline end to end: extract CV text,
// score each candidate, rank them and assemble the report document.
type Orchestrator struct {
	extractor textExtractor
	client    completer
	logger    *zap.Logger
}

func New(extractor textExtractor, client completer, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		client:    client,
		logger:    log,
	}
}

// Run evaluates the given CV sources against the job. Candidates whose
// extraction or evaluation fails are skipped with a warning; the remaining
// ones are ranked by match score in descending order. Candidates with equal
// scores keep their input order.
func (o *Orchestrator) Run(ctx context.Context, job models.JobSpec, sources []models.Source) (*models.Document, error) {
	log := logger.WithFields(o.logger, logger.StringFields(
		logger.StringField{Key: logger.FieldRunID, Value: uuid.NewString()},
	)...)

	log.Info("starting candidate evaluation",
		zap.String("role", job.Title),
		zap.String("company", job.Company),
		zap.Int("candidates", len(sources)),
	)

	evaluations := make(models.Evaluations, 0, len(sources))

	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidateLog := log.With(
			zap.Int("candidate", i+1),
			zap.Int("total", len(sources)),
			zap.String("file", source.Path),
		)

		candidateLog.Info("processing CV")

		text, err := o.extractor.Extract(source.Path)
		if err != nil {
			candidateLog.Warn("skipping candidate, text extraction failed", zap.Error(err))
			continue
		}

		candidateLog.Debug("extracted CV text", zap.Int("characters", len(text)))

		evaluation, err := o.client.Evaluate(ctx, prompt.Evaluation(text, source.Name, job))
		if err != nil {
			candidateLog.Warn("skipping candidate, evaluation failed", zap.Error(err))
			continue
		}

		candidateLog.Info("evaluation complete", zap.Int("match_score", evaluation.MatchScore))

		evaluations = append(evaluations, evaluation)
	}

	evaluations.SortByScore()

	return &models.Document{
		Header: models.Header{
			Role:             job.Title,
			Department:       job.Department,
			Company:          job.Company,
			Location:         job.Location,
			WorkMode:         job.WorkMode,
			ReportDate:       time.Now().Format(reportDateLayout),
			AssessmentMethod: assessmentMethod,
		},
		Candidates:      evaluations,
		OverallSummary:  o.summarize(ctx, log, evaluations, job.Title),
		TotalCandidates: evaluations.Len(),
	}, nil
}

// summarize produces the overall comparative summary. Zero and single
// candidate reports are answered locally without a model call. When the
// model call fails the summary falls back to a fixed sentence about the
// top-ranked candidate.
func (o *Orchestrator) summarize(ctx context.Context, log *zap.Logger, evaluations models.Evaluations, jobTitle string) string {
	switch evaluations.Len() {
	case 0:
		return "No candidates were evaluated."
	case 1:
		only := evaluations.Top()
		return fmt.Sprintf("%s is the only candidate evaluated with a match score of %d/100.", only.CandidateName, only.MatchScore)
	}

	log.Info("generating overall summary", zap.Int("candidates", evaluations.Len()))

	summary, err := o.client.Summarize(ctx, prompt.Summary(evaluations, jobTitle))
	if err != nil {
		log.Warn("summary generation failed, falling back", zap.Error(err))

		top := evaluations.Top()
		return fmt.Sprintf("%s ranks highest with a score of %d/100, demonstrating the strongest alignment with role requirements across all evaluation criteria.", top.CandidateName, top.MatchScore)
	}

	return summary
}
