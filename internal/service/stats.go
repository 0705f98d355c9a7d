package service

import (
	"math"
	"strconv"
	"strings"

	"evaluator/internal/domain"
)

// Filter keeps submissions whose student name contains query, ignoring case.
// An empty query returns the input as is.
func Filter(submissions []domain.Submission, query string) []domain.Submission {
	if query == "" {
		return submissions
	}
	q := strings.ToLower(query)
	out := make([]domain.Submission, 0, len(submissions))
	for _, s := range submissions {
		if strings.Contains(strings.ToLower(s.StudentName), q) {
			out = append(out, s)
		}
	}
	return out
}

// AverageMarks is the mean over graded submissions rounded to two decimals,
// or 0 when nothing is graded.
func AverageMarks(submissions []domain.Submission) float64 {
	var sum float64
	var n int
	for _, s := range submissions {
		if s.Marks == nil {
			continue
		}
		sum += *s.Marks
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*100) / 100
}

func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 2, 64)
}
