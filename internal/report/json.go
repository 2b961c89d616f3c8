package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bottomline-assist/talent-matcher/internal/models"
)

// JSONFileName is the fixed name of the JSON report artifact.
const JSONFileName = "evaluation_report.json"

// numberedEvaluation decorates an evaluation with its display rank. Numbering
// exists only in the artifacts; the evaluation itself stays unnumbered.
type numberedEvaluation struct {
	*models.Evaluation
	CandidateNumber int `json:"candidate_number"`
}

type jsonDocument struct {
	Header          models.Header        `json:"report_header"`
	Candidates      []numberedEvaluation `json:"candidates"`
	OverallSummary  string               `json:"overall_summary"`
	TotalCandidates int                  `json:"total_candidates"`
}

// WriteJSON writes the report document to path as indented JSON. Candidates
// are numbered 1..n in ranked order. Non-ASCII text is written as-is.
func WriteJSON(doc *models.Document, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json report: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(jsonDocument{
		Header:          doc.Header,
		Candidates:      numberCandidates(doc.Candidates),
		OverallSummary:  doc.OverallSummary,
		TotalCandidates: doc.TotalCandidates,
	}); err != nil {
		file.Close()
		return fmt.Errorf("encode json report: %w", err)
	}

	return file.Close()
}

func numberCandidates(evaluations models.Evaluations) []numberedEvaluation {
	numbered := make([]numberedEvaluation, 0, evaluations.Len())
	for i, evaluation := range evaluations {
		numbered = append(numbered, numberedEvaluation{
			Evaluation:      evaluation,
			CandidateNumber: i + 1,
		})
	}

	return numbered
}
