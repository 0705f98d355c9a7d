package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrNonFiniteMarks = errors.New("marks must be a finite number")

// Submission is one student's experiment record. Marks stays nil until the
// record is graded; a zero mark is a real grade.
type Submission struct {
	ID              int64    `json:"id" yaml:"id"`
	StudentName     string   `json:"studentName" yaml:"studentName"`
	StudentID       string   `json:"studentId" yaml:"studentId"`
	ExperimentTitle string   `json:"experimentTitle" yaml:"experimentTitle"`
	Date            string   `json:"date" yaml:"date"`
	Observations    string   `json:"observations" yaml:"observations"`
	Data            string   `json:"data" yaml:"data"`
	Marks           *float64 `json:"marks" yaml:"marks"`
	Feedback        string   `json:"feedback" yaml:"feedback"`
}

func (s Submission) IsGraded() bool {
	return s.Marks != nil
}

// Clone returns a copy that shares no memory with s.
func (s Submission) Clone() Submission {
	if s.Marks != nil {
		m := *s.Marks
		s.Marks = &m
	}
	return s
}

type SubmissionInput struct {
	StudentName     string `json:"studentName" validate:"notblank"`
	StudentID       string `json:"studentId" validate:"notblank"`
	ExperimentTitle string `json:"experimentTitle" validate:"notblank"`
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Observations    string `json:"observations"`
	Data            string `json:"data"`
}

// Today is the default submission date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseMarks converts raw grade input. Empty input means ungraded.
func ParseMarks(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ErrNonFiniteMarks
	}
	return &v, nil
}

func FormatMarks(m *float64) string {
	if m == nil {
		return "-"
	}
	return strconv.FormatFloat(*m, 'f', -1, 64)
}
