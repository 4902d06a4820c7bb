package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists for job and candidate")
)

type StatusUpdate struct {
	Status           Status
	InterviewMessage *string
	InterviewDate    *time.Time
}

type Repository interface {
	// Create inserts the application and increments the owning job's
	// applicant counter in the same transaction. A (job, candidate)
	// duplicate surfaces as ErrDuplicate.
	Create(ctx context.Context, a Application) error

	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (Application, error)

	// ListByCandidate returns the candidate's applications newest first,
	// with the parent job summary joined in.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]WithJob, error)
}
