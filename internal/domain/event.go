package domain

import "time"

type EventType string

const (
	EventSubmissionCreated EventType = "submission.created"
	EventSubmissionGraded  EventType = "submission.graded"
	EventSubmissionDeleted EventType = "submission.deleted"
)

type Event struct {
	Type       EventType  `json:"type"`
	Submission Submission `json:"submission"`
	At         time.Time  `json:"at"`
}

func (t EventType) IsValid() bool {
	switch t {
	case EventSubmissionCreated, EventSubmissionGraded, EventSubmissionDeleted:
		return true
	default:
		return false
	}
}
