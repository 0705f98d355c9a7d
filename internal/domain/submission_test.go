package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarks(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *float64
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace", raw: "   ", want: nil},
		{name: "integer", raw: "85", want: ptr(85)},
		{name: "decimal with spaces", raw: " 72.5 ", want: ptr(72.5)},
		{name: "zero is a grade", raw: "0", want: ptr(0)},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "NaN", raw: "NaN", wantErr: true},
		{name: "infinity", raw: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMarks(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-finite sentinel", func(t *testing.T) {
		_, err := ParseMarks("inf")
		assert.ErrorIs(t, err, ErrNonFiniteMarks)
	})
}

func TestFormatMarks(t *testing.T) {
	assert.Equal(t, "-", FormatMarks(nil))
	assert.Equal(t, "85", FormatMarks(ptr(85)))
	assert.Equal(t, "72.5", FormatMarks(ptr(72.5)))
}

func TestSubmission_Clone(t *testing.T) {
	orig := Submission{ID: 1, Marks: ptr(50)}
	clone := orig.Clone()
	*clone.Marks = 99

	assert.Equal(t, 50.0, *orig.Marks)
	assert.True(t, orig.IsGraded())
	assert.False(t, Submission{}.IsGraded())
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", Today(now))
}

func TestEventType_IsValid(t *testing.T) {
	assert.True(t, EventSubmissionCreated.IsValid())
	assert.True(t, EventSubmissionDeleted.IsValid())
	assert.False(t, EventType("submission.archived").IsValid())
	assert.False(t, EventType("").IsValid())
}

func ptr(v float64) *float64 {
	return &v
}
