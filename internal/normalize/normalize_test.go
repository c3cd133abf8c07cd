package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims and strips punctuation",
			input:    " ACME-123 ",
			expected: "acme123",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "--- / ***",
			expected: "",
		},
		{
			name:     "already canonical",
			input:    "acme123",
			expected: "acme123",
		},
		{
			name:     "mixed case",
			input:    "AcMe Inc.",
			expected: "acmeinc",
		},
		{
			name:     "underscores are stripped",
			input:    "zzz_not_present",
			expected: "zzznotpresent",
		},
		{
			name:     "unicode letters survive",
			input:    "Müller & Söhne",
			expected: "müllersöhne",
		},
		{
			name:     "full case folding",
			input:    "STRAßE",
			expected: "strasse",
		},
		{
			name:     "digits and letters interleaved",
			input:    "XA36773-04Y",
			expected: "xa3677304y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Token(tt.input))
		})
	}
}

func TestTokenIdempotent(t *testing.T) {
	inputs := []string{" ACME-123 ", "Müller & Söhne", "STRAßE", "zzz_not_present", ""}
	for _, in := range inputs {
		once := Token(in)
		assert.Equal(t, once, Token(once), "Token must be idempotent for %q", in)
	}
}
