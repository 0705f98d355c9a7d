package service

import (
	"context"

	"evaluator/internal/domain"
)

type SubmissionStore interface {
	List(ctx context.Context) []domain.Submission
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
	Create(ctx context.Context, input domain.SubmissionInput) (*domain.Submission, error)
	UpdateGrade(ctx context.Context, id int64, marks *float64, feedback string) (*domain.Submission, error)
	Delete(ctx context.Context, id int64) (*domain.Submission, bool, error)
}

// Notifier receives the outcome of a completed operation.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})
