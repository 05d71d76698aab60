package memory

import (
	"context"
	"errors"
	"sync"

	"contact-form-backend/internal/domain"
)

// submissionRepository keeps submissions in process memory. Contents are
// unbounded and lost on restart; there is no eviction or deduplication.
type submissionRepository struct {
	mu          sync.RWMutex
	submissions []*domain.ContactSubmission
}

// NewSubmissionRepository creates an empty in-memory repository
func NewSubmissionRepository() domain.SubmissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Append(ctx context.Context, sub *domain.ContactSubmission) error {
	if sub == nil {
		return errors.New("submission is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, sub)
	return nil
}

// List returns a snapshot in arrival order
func (r *submissionRepository) List(ctx context.Context) ([]*domain.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.ContactSubmission, len(r.submissions))
	copy(out, r.submissions)
	return out, nil
}
