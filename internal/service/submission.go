package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"evaluator/internal/domain"
	"evaluator/internal/errdefs"
	"evaluator/internal/logging"
)

const DeletePrompt = "Delete this submission? This cannot be undone."

type SubmissionServiceInterface interface {
	Submit(ctx context.Context, input domain.SubmissionInput) (*domain.Submission, error)
	List(ctx context.Context, query string) []domain.Submission
	Get(ctx context.Context, id int64) (*domain.Submission, error)
	Grade(ctx context.Context, id int64, rawMarks, feedback string) (*domain.Submission, error)
	Delete(ctx context.Context, id int64, confirmer Confirmer) (bool, error)
	Average(ctx context.Context) float64
}

type submissionService struct {
	store     SubmissionStore
	notifiers []Notifier
	logger    *logging.Logger
	now       func() time.Time
}

func NewSubmissionService(store SubmissionStore, logger *logging.Logger, notifiers ...Notifier) SubmissionServiceInterface {
	return &submissionService{
		store:     store,
		notifiers: notifiers,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, input domain.SubmissionInput) (*domain.Submission, error) {
	submission, err := s.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventSubmissionCreated, *submission)
	return submission, nil
}

func (s *submissionService) List(ctx context.Context, query string) []domain.Submission {
	return Filter(s.store.List(ctx), query)
}

func (s *submissionService) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	return s.store.GetByID(ctx, id)
}

// Grade parses rawMarks before touching the store: blank input clears the
// grade, anything that is not a finite number is rejected.
func (s *submissionService) Grade(ctx context.Context, id int64, rawMarks, feedback string) (*domain.Submission, error) {
	marks, err := domain.ParseMarks(rawMarks)
	if err != nil {
		msg := "marks must be a number"
		if errors.Is(err, domain.ErrNonFiniteMarks) {
			msg = err.Error()
		}
		return nil, errdefs.NewValidationError(errdefs.FieldError{Field: "marks", Message: msg})
	}

	submission, err := s.store.UpdateGrade(ctx, id, marks, feedback)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventSubmissionGraded, *submission)
	return submission, nil
}

// Delete removes a submission once the confirmer approves. A declined prompt
// returns errdefs.ErrNotConfirmed and leaves the store untouched.
func (s *submissionService) Delete(ctx context.Context, id int64, confirmer Confirmer) (bool, error) {
	ok, err := confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errdefs.ErrNotConfirmed
	}

	removed, deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.notify(ctx, domain.EventSubmissionDeleted, *removed)
	}
	return deleted, nil
}

func (s *submissionService) Average(ctx context.Context) float64 {
	return AverageMarks(s.store.List(ctx))
}

func (s *submissionService) notify(ctx context.Context, eventType domain.EventType, submission domain.Submission) {
	event := domain.Event{Type: eventType, Submission: submission, At: s.now()}
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			s.logger.Warn(ctx, "failed to deliver notification",
				zap.String("event", string(eventType)),
				zap.Int64("id", submission.ID),
				zap.Error(err),
			)
		}
	}
}
