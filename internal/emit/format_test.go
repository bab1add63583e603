package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	v := 42
	assert.Equal(t, "42", FormatCount(&v))
	assert.Equal(t, "N/A", FormatCount(nil))
}

func TestFormatPct(t *testing.T) {
	tests := []struct {
		name  string
		input *float64
		want  string
	}{
		{name: "nil is N/A", input: nil, want: "N/A"},
		{name: "two decimals", input: f(33.333333), want: "33.33"},
		{name: "negative", input: f(-12.5), want: "-12.50"},
		{name: "zero", input: f(0), want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPct(tt.input))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "N/A", FormatRate(nil))
	assert.Equal(t, "0.1235", FormatRate(f(0.12345)))
	assert.Equal(t, "-0.0500", FormatRate(f(-0.05)))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+120", FormatSignedCount(120))
	assert.Equal(t, "-45", FormatSignedCount(-45))
	assert.Equal(t, "+0", FormatSignedCount(0))
	assert.Equal(t, "+12.5%", FormatSignedPct(f(12.5)))
	assert.Equal(t, "-3.3%", FormatSignedPct(f(-3.34)))
	assert.Equal(t, "N/A", FormatSignedPct(nil))
}

func f(v float64) *float64 { return &v }
