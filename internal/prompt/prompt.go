package prompt

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/bottomline-assist/talent-matcher/internal/models"
)

//go:embed evaluation.md
var evaluationTemplate string

//go:embed summary.md
var summaryTemplate string

// ratingPreviewRunes bounds the rating-summary excerpt quoted per candidate in
// the comparison prompt.
const ratingPreviewRunes = 100

// Evaluation renders the per-candidate scoring prompt. The output carries the
// weighted scoring categories, the leniency bands, and the exact JSON shape
// the model must respond with. Deterministic for the same inputs.
func Evaluation(cvText, candidateName string, job models.JobSpec) string {
	descriptionLine := ""
	if strings.TrimSpace(job.Description) != "" {
		descriptionLine = "- Job Description: " + job.Description
	}

	return strings.NewReplacer(
		"{{JOB_TITLE}}", job.Title,
		"{{COMPANY}}", job.Company,
		"{{DEPARTMENT}}", job.Department,
		"{{JOB_DESCRIPTION_LINE}}", descriptionLine,
		"{{CV_TEXT}}", cvText,
		"{{CANDIDATE_NAME}}", candidateName,
	).Replace(evaluationTemplate)
}

// Summary renders the cross-candidate comparison prompt. Each candidate is
// listed with the score and a bounded excerpt of the rating summary. The
// caller decides whether a completion call is warranted at all; this function
// only builds text.
func Summary(evals models.Evaluations, jobTitle string) string {
	lines := make([]string, 0, evals.Len())
	for _, eval := range evals {
		lines = append(lines, fmt.Sprintf("- %s: %d/100 - %s",
			eval.CandidateName, eval.MatchScore, preview(eval.RatingSummary)))
	}

	return strings.NewReplacer(
		"{{JOB_TITLE}}", jobTitle,
		"{{CANDIDATES}}", strings.Join(lines, "\n"),
	).Replace(summaryTemplate)
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= ratingPreviewRunes {
		return s
	}
	return string(runes[:ratingPreviewRunes])
}
