package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"evaluator/internal/domain"
	"evaluator/internal/errdefs"
	"evaluator/internal/logging"
	"evaluator/internal/storage"
	"evaluator/internal/validation"
)

var errDuplicateID = errors.New("duplicate submission id")

// SubmissionRepository is the submission store: an ordered in-memory
// collection written through to a storage.Slot after every mutation. When a
// write fails the mutation is rolled back so memory and slot never diverge.
type SubmissionRepository struct {
	mu        sync.Mutex
	slot      storage.Slot
	logger    *logging.Logger
	validator *validation.Validator
	now       func() time.Time

	submissions []domain.Submission
	lastID      int64
}

type Option func(*SubmissionRepository)

func WithClock(now func() time.Time) Option {
	return func(r *SubmissionRepository) {
		r.now = now
	}
}

func NewSubmissionRepository(slot storage.Slot, logger *logging.Logger, opts ...Option) *SubmissionRepository {
	r := &SubmissionRepository{
		slot:        slot,
		logger:      logger,
		validator:   validation.New(),
		now:         time.Now,
		submissions: []domain.Submission{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the collection with the slot contents. An empty slot or an
// unreadable payload leaves the store empty and is only logged; a failing
// slot read is returned as errdefs.ErrPersistence.
func (r *SubmissionRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.submissions = []domain.Submission{}
	r.lastID = 0

	data, err := r.slot.Read(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		r.logger.Debug(ctx, "slot is empty, starting with no submissions")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read slot: %w", errdefs.ErrPersistence, err)
	}

	submissions, lastID, err := decode(data)
	if err != nil {
		r.logger.Warn(ctx, "failed to parse submissions, starting empty", zap.Error(err))
		return nil
	}

	r.submissions = submissions
	r.lastID = lastID
	r.logger.Debug(ctx, "submissions loaded", zap.Int("count", len(submissions)))
	return nil
}

func (r *SubmissionRepository) List(_ context.Context) []domain.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.submissions)
}

func (r *SubmissionRepository) GetByID(_ context.Context, id int64) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", errdefs.ErrNotFound, id)
	}
	sub := r.submissions[i].Clone()
	return &sub, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, input domain.SubmissionInput) (*domain.Submission, error) {
	if err := r.validator.Struct(input, nil); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = domain.Today(now)
	}

	submission := domain.Submission{
		ID:              r.nextID(now),
		StudentName:     input.StudentName,
		StudentID:       input.StudentID,
		ExperimentTitle: input.ExperimentTitle,
		Date:            date,
		Observations:    input.Observations,
		Data:            input.Data,
		Marks:           nil,
		Feedback:        "",
	}

	next := append(cloneAll(r.submissions), submission)
	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}
	r.submissions = next

	r.logger.Info(ctx, "submission created",
		zap.Int64("id", submission.ID),
		zap.String("student_id", submission.StudentID),
	)
	created := submission.Clone()
	return &created, nil
}

// UpdateGrade replaces marks and feedback of one submission. A nil marks
// value marks the submission as ungraded.
func (r *SubmissionRepository) UpdateGrade(ctx context.Context, id int64, marks *float64, feedback string) (*domain.Submission, error) {
	if marks != nil && (math.IsNaN(*marks) || math.IsInf(*marks, 0)) {
		return nil, errdefs.NewValidationError(errdefs.FieldError{
			Field:   "marks",
			Message: domain.ErrNonFiniteMarks.Error(),
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", errdefs.ErrNotFound, id)
	}

	next := cloneAll(r.submissions)
	if marks != nil {
		m := *marks
		next[i].Marks = &m
	} else {
		next[i].Marks = nil
	}
	next[i].Feedback = feedback

	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}
	r.submissions = next

	r.logger.Info(ctx, "submission graded",
		zap.Int64("id", id),
		zap.Bool("graded", marks != nil),
	)
	updated := next[i].Clone()
	return &updated, nil
}

// Delete removes the submission with id. It reports whether a record was
// removed; an unknown id is not an error and writes nothing.
func (r *SubmissionRepository) Delete(ctx context.Context, id int64) (*domain.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, false, nil
	}

	removed := r.submissions[i].Clone()
	next := make([]domain.Submission, 0, len(r.submissions)-1)
	next = append(next, cloneAll(r.submissions[:i])...)
	next = append(next, cloneAll(r.submissions[i+1:])...)

	if err := r.persist(ctx, next); err != nil {
		return nil, false, err
	}
	r.submissions = next

	r.logger.Info(ctx, "submission deleted", zap.Int64("id", id))
	return &removed, true, nil
}

func (r *SubmissionRepository) persist(ctx context.Context, submissions []domain.Submission) error {
	data, err := json.Marshal(submissions)
	if err != nil {
		return fmt.Errorf("%w: encode submissions: %w", errdefs.ErrPersistence, err)
	}
	if err := r.slot.Write(ctx, data); err != nil {
		r.logger.Error(ctx, "failed to persist submissions", zap.Error(err))
		return fmt.Errorf("%w: write slot: %w", errdefs.ErrPersistence, err)
	}
	return nil
}

// nextID derives ids from the clock in milliseconds and never repeats one,
// even when the clock stalls or goes backwards.
func (r *SubmissionRepository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *SubmissionRepository) indexOf(id int64) int {
	for i := range r.submissions {
		if r.submissions[i].ID == id {
			return i
		}
	}
	return -1
}

func decode(data []byte) ([]domain.Submission, int64, error) {
	var submissions []domain.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, 0, err
	}
	if submissions == nil {
		submissions = []domain.Submission{}
	}

	var lastID int64
	seen := make(map[int64]struct{}, len(submissions))
	for _, s := range submissions {
		if _, ok := seen[s.ID]; ok {
			return nil, 0, fmt.Errorf("%w: %d", errDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.ID > lastID {
			lastID = s.ID
		}
	}
	return submissions, lastID, nil
}

func cloneAll(in []domain.Submission) []domain.Submission {
	out := make([]domain.Submission, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
