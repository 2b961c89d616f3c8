package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bottomline-assist/talent-matcher/internal/models"
)

func TestEvaluationCarriesScoringSystem(t *testing.T) {
	job := models.JobSpec{
		Title:      "Backend Engineer",
		Company:    "Acme",
		Department: "Platform",
	}

	got := Evaluation("worked on Go services", "Ada Lovelace", job)

	for _, category := range []string{
		"- Core Skills Match: 35 points",
		"- Experience Relevance: 25 points",
		"- Experience Level: 15 points",
		"- Education and Certifications: 5 points",
		"- Soft Skills and Competencies: 10 points",
		"- Bonus Fit Indicators: 10 points",
	} {
		assert.Contains(t, got, category)
	}

	// Leniency bands.
	assert.Contains(t, got, "score 65-85")
	assert.Contains(t, got, "score 90+")
	assert.Contains(t, got, "score below 50")

	// Exact output keys requested from the model.
	for _, key := range []string{
		`"candidate_name"`,
		`"match_score"`,
		`"rating_summary"`,
		`"strengths"`,
		`"potential_gaps"`,
	} {
		assert.Contains(t, got, key)
	}

	assert.Contains(t, got, "- Role: Backend Engineer")
	assert.Contains(t, got, "- Company: Acme")
	assert.Contains(t, got, "- Department: Platform")
	assert.Contains(t, got, "worked on Go services")
	assert.Contains(t, got, `"candidate_name": "Ada Lovelace"`)
}

func TestEvaluationJobDescriptionLine(t *testing.T) {
	job := models.JobSpec{Title: "Backend Engineer", Company: "Acme", Department: "Platform"}

	without := Evaluation("cv", "Ada", job)
	require.NotContains(t, without, "- Job Description:")

	job.Description = "We need someone who ships."
	with := Evaluation("cv", "Ada", job)
	require.Contains(t, with, "- Job Description: We need someone who ships.")
}

func TestEvaluationIsDeterministic(t *testing.T) {
	job := models.JobSpec{Title: "SRE", Company: "Acme", Department: "Infra"}

	first := Evaluation("cv text", "Grace", job)
	second := Evaluation("cv text", "Grace", job)
	require.Equal(t, first, second)
}

func TestSummaryListsCandidates(t *testing.T) {
	evals := models.Evaluations{
		{CandidateName: "Ada", MatchScore: 88, RatingSummary: "Strong systems background."},
		{CandidateName: "Grace", MatchScore: 83, RatingSummary: strings.Repeat("x", 150)},
	}

	got := Summary(evals, "Backend Engineer")

	assert.Contains(t, got, "for the Backend Engineer role")
	assert.Contains(t, got, "- Ada: 88/100 - Strong systems background.")

	// Long rating summaries are excerpted to 100 runes.
	assert.Contains(t, got, "- Grace: 83/100 - "+strings.Repeat("x", 100))
	assert.NotContains(t, got, strings.Repeat("x", 101))

	assert.Contains(t, got, "Respond with ONLY the 80-word summary text, no JSON, no formatting.")
}
