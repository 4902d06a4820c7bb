package usecase

import (
	"context"
	"errors"
	"time"

	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a usecase. It is built from
// token claims by the delivery layer; usecases trust it for role gating.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role user.Role
}

// Sentinel errors shared across usecases. The delivery layer maps each to an
// HTTP status.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// Cache is the slice of the redis client the usecases need.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
