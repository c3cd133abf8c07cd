package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWindowExactShortCircuit(t *testing.T) {
	pools := []fieldPool{
		{field: "name", candidates: []Candidate{
			{ID: 1, Normalized: "acme123", Raw: "ACME-123"},
			{ID: 2, Normalized: "acmeinc", Raw: "ACME Inc"},
		}},
	}

	observed := 0
	matched, window := matchWindow("acme123", pools, func(string, string, int, int, []Candidate) {
		observed++
	})

	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, "acme123", window)
	assert.Zero(t, observed, "exact matches must skip the window scan entirely")
}

func TestMatchWindowExactDeduplicatesAcrossPools(t *testing.T) {
	pools := []fieldPool{
		{field: "default_code", candidates: []Candidate{{ID: 7, Normalized: "a36", Raw: "A36"}}},
		{field: "name", candidates: []Candidate{{ID: 7, Normalized: "a36", Raw: "A36"}, {ID: 8, Normalized: "a36", Raw: "A-36"}}},
	}

	matched, _ := matchWindow("a36", pools, nil)
	assert.Len(t, matched, 2)
}

func TestMatchWindowLongestFirst(t *testing.T) {
	// Input with noise glued onto both ends: the full 8-character window
	// "a3677304" must win before any shorter window is ever evaluated.
	pools := []fieldPool{
		{field: "default_code", candidates: []Candidate{
			{ID: 10, Normalized: "a3677304", Raw: "A3677304"},
		}},
	}

	var evaluated []int
	matched, window := matchWindow("xa3677304y", pools, func(_, _ string, _, length int, _ []Candidate) {
		evaluated = append(evaluated, length)
	})

	require.Len(t, matched, 1)
	assert.Equal(t, int64(10), matched[0].ID)
	assert.Equal(t, "a3677304", window)
	for _, l := range evaluated {
		assert.GreaterOrEqual(t, l, 8, "no window shorter than the winner may be evaluated")
	}
}

func TestMatchWindowPrefixPreferred(t *testing.T) {
	// Both candidates contain "a36"; only one starts with it. Prefix
	// agreement is stronger evidence and must shed the other candidate.
	pools := []fieldPool{
		{field: "name", candidates: []Candidate{
			{ID: 1, Normalized: "a3677304", Raw: "A3677304"},
			{ID: 2, Normalized: "xxa3677304", Raw: "XX A3677304"},
		}},
	}

	matched, window := matchWindow("a36", pools, nil)
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, "a36", window)
}

func TestMatchWindowFallsBackToContains(t *testing.T) {
	pools := []fieldPool{
		{field: "name", candidates: []Candidate{
			{ID: 2, Normalized: "xxa3677304", Raw: "XX A3677304"},
		}},
	}

	matched, _ := matchWindow("a36", pools, nil)
	require.Len(t, matched, 1, "contains-only agreement still matches when no prefix subset exists")
	assert.Equal(t, int64(2), matched[0].ID)
}

func TestMatchWindowMergesFieldsInPriorityOrder(t *testing.T) {
	pools := []fieldPool{
		{field: "default_code", candidates: []Candidate{{ID: 1, Normalized: "k9abcx", Raw: "K9-ABC X"}}},
		{field: "name", candidates: []Candidate{{ID: 2, Normalized: "k9abcdef", Raw: "K9 ABCDEF"}}},
	}

	matched, window := matchWindow("k9abc", pools, nil)
	assert.Equal(t, "k9abc", window)
	assert.Len(t, matched, 2, "both fields' survivors merge for the same window")
}

func TestMatchWindowNoMatch(t *testing.T) {
	pools := []fieldPool{
		{field: "name", candidates: []Candidate{{ID: 1, Normalized: "acme", Raw: "ACME"}}},
	}

	matched, window := matchWindow("zzz", pools, nil)
	assert.Empty(t, matched)
	assert.Empty(t, window)
}

func TestSelectCandidateTieBreak(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       int64
	}{
		{
			name: "shortest normalized value wins",
			candidates: []Candidate{
				{ID: 1, Normalized: "abcdefg"},
				{ID: 2, Normalized: "abcde"},
			},
			want: 2,
		},
		{
			name: "equal length falls back to lexicographic order",
			candidates: []Candidate{
				{ID: 1, Normalized: "bcdef"},
				{ID: 2, Normalized: "abcde"},
			},
			want: 2,
		},
		{
			name: "equal value falls back to lowest id",
			candidates: []Candidate{
				{ID: 9, Normalized: "abcde"},
				{ID: 3, Normalized: "abcde"},
				{ID: 5, Normalized: "abcde"},
			},
			want: 3,
		},
		{
			name: "length counts characters, not bytes",
			candidates: []Candidate{
				{ID: 1, Normalized: "grösse"},
				{ID: 2, Normalized: "abcdefg"},
			},
			want: 1,
		},
		{
			name: "multibyte values of equal character length compare lexicographically",
			candidates: []Candidate{
				{ID: 1, Normalized: "müller"},
				{ID: 2, Normalized: "mahler"},
			},
			want: 2,
		},
		{
			name: "order of appearance is irrelevant",
			candidates: []Candidate{
				{ID: 3, Normalized: "abcde"},
				{ID: 9, Normalized: "abc"},
			},
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectCandidate(tt.candidates).ID)
		})
	}
}
