package models

import (
	"path/filepath"
	"sort"
	"strings"
)

// JobSpec describes the role candidates are evaluated against. It is
// immutable once an evaluation run starts.
type JobSpec struct {
	Title       string
	Company     string
	Department  string
	Location    string
	WorkMode    string
	Description string
}

// Source is a single candidate résumé file together with the display name
// derived from it.
type Source struct {
	Path string
	Name string
}

var nameSeparators = strings.NewReplacer("_", " ", "-", " ")

// NewSource builds a candidate source from a résumé path. The display name is
// the filename stem with underscores and dashes replaced by spaces; nothing is
// parsed out of the document itself.
func NewSource(path string) Source {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return Source{
		Path: path,
		Name: nameSeparators.Replace(stem),
	}
}

// Evaluation is the structured scoring result for one candidate. It is
// produced atomically from a single completion call and never mutated
// afterwards; the report wire format adds a display-only candidate number at
// render time.
type Evaluation struct {
	CandidateName string   `json:"candidate_name"`
	MatchScore    int      `json:"match_score"`
	RatingSummary string   `json:"rating_summary"`
	Strengths     []string `json:"strengths"`
	PotentialGaps []string `json:"potential_gaps"`
}

// Evaluations is the ordered collection of successful candidate evaluations.
type Evaluations []*Evaluation

func (e Evaluations) Len() int {
	return len(e)
}

// SortByScore orders evaluations by match score descending. The sort is
// stable, so candidates with equal scores keep their processing order.
func (e Evaluations) SortByScore() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].MatchScore > e[j].MatchScore
	})
}

// Top returns the highest ranked evaluation, or nil for an empty collection.
// Callers are expected to sort first.
func (e Evaluations) Top() *Evaluation {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// Header carries the job metadata block of the final report.
type Header struct {
	Role             string `json:"role"`
	Department       string `json:"department"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	WorkMode         string `json:"work_mode"`
	ReportDate       string `json:"report_date"`
	AssessmentMethod string `json:"assessment_method"`
}

// Document is the final aggregate handed to rendering: header, candidates
// sorted by score, the overall summary, and the count of successfully
// evaluated candidates (never the raw input count).
type Document struct {
	Header          Header      `json:"report_header"`
	Candidates      Evaluations `json:"candidates"`
	OverallSummary  string      `json:"overall_summary"`
	TotalCandidates int         `json:"total_candidates"`
}
