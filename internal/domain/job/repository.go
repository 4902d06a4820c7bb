package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)

	// List returns every job, newest first.
	List(ctx context.Context) ([]Job, error)

	// Delete removes the job and all of its applications in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetStatus flips the job status. Moving to ended also rejects every
	// application of the job that is not already Rejected or Selected, in the
	// same transaction, and returns the ids of the applications it flipped.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (Job, []uuid.UUID, error)
}
