package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"evaluator/internal/domain"
	"evaluator/internal/service"
)

func graded(name string, m *float64) domain.Submission {
	return domain.Submission{StudentName: name, Marks: m}
}

func ptr(v float64) *float64 { return &v }

func TestFilter(t *testing.T) {
	subs := []domain.Submission{
		{ID: 1, StudentName: "Alice"},
		{ID: 2, StudentName: "Bob"},
		{ID: 3, StudentName: "Malik"},
	}

	t.Run("EmptyQueryReturnsInput", func(t *testing.T) {
		assert.Equal(t, subs, service.Filter(subs, ""))
	})

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		got := service.Filter(subs, "ALI")
		assert.Equal(t, []domain.Submission{subs[0], subs[2]}, got)
	})

	t.Run("SingleRecord", func(t *testing.T) {
		one := []domain.Submission{{StudentName: "Alice"}}
		assert.Equal(t, one, service.Filter(one, "ali"))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, service.Filter(subs, "zoe"))
	})

	t.Run("NilInput", func(t *testing.T) {
		assert.Empty(t, service.Filter(nil, "a"))
	})
}

func TestAverageMarks(t *testing.T) {
	tests := []struct {
		name     string
		subs     []domain.Submission
		expected float64
	}{
		{"Empty", nil, 0},
		{"OnlyUngraded", []domain.Submission{graded("a", nil)}, 0},
		{"IgnoresUngraded", []domain.Submission{graded("a", ptr(80)), graded("b", ptr(90)), graded("c", nil)}, 85},
		{"ZeroCounts", []domain.Submission{graded("a", ptr(0)), graded("b", ptr(10))}, 5},
		{"RoundsToTwoDecimals", []domain.Submission{graded("a", ptr(1)), graded("b", ptr(2)), graded("c", ptr(2))}, 1.67},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.AverageMarks(tc.subs))
		})
	}
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "85.00", service.FormatAverage(85))
	assert.Equal(t, "0.00", service.FormatAverage(0))
	assert.Equal(t, "1.67", service.FormatAverage(1.67))
}
