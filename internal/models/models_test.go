package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSourceDerivesDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "underscores become spaces",
			path: "/tmp/cvs/Ada_Lovelace.pdf",
			want: "Ada Lovelace",
		},
		{
			name: "dashes become spaces",
			path: "grace-hopper.pdf",
			want: "grace hopper",
		},
		{
			name: "mixed separators",
			path: "./in/Alan_Turing-CV.pdf",
			want: "Alan Turing CV",
		},
		{
			name: "no extension",
			path: "resume",
			want: "resume",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := NewSource(tt.path)
			require.Equal(t, tt.want, src.Name)
			require.Equal(t, tt.path, src.Path)
		})
	}
}

func TestSortByScoreIsStable(t *testing.T) {
	evals := Evaluations{
		{CandidateName: "first", MatchScore: 70},
		{CandidateName: "second", MatchScore: 85},
		{CandidateName: "third", MatchScore: 70},
		{CandidateName: "fourth", MatchScore: 91},
	}

	evals.SortByScore()

	got := make([]string, 0, evals.Len())
	for _, e := range evals {
		got = append(got, e.CandidateName)
	}

	// Equal scores keep the original processing order.
	require.Equal(t, []string{"fourth", "second", "first", "third"}, got)
}

func TestTop(t *testing.T) {
	require.Nil(t, Evaluations{}.Top())

	evals := Evaluations{
		{CandidateName: "low", MatchScore: 40},
		{CandidateName: "high", MatchScore: 90},
	}
	evals.SortByScore()

	require.Equal(t, "high", evals.Top().CandidateName)
}
