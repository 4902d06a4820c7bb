package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/ws"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

const jobsListCacheKey = "jobs:list"

type CreateJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      float64
}

type JobUsecase interface {
	Create(ctx context.Context, actor Actor, in CreateJobInput) (job.Job, error)
	List(ctx context.Context) ([]job.Job, error)
	Delete(ctx context.Context, actor Actor, jobID uuid.UUID) error
	SetStatus(ctx context.Context, actor Actor, jobID uuid.UUID, status string) (job.Job, error)
}

type Jobs struct {
	jobs   job.Repository
	cache  Cache
	logger *log.Logger
}

func NewJobUsecase(jobs job.Repository, cache Cache, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, cache: cache, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, actor Actor, in CreateJobInput) (job.Job, error) {
	if actor.Role != user.RoleRecruiter {
		return job.Job{}, ErrForbidden
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	if in.Title == "" || in.Description == "" || in.Company == "" || in.Location == "" || in.Salary <= 0 {
		return job.Job{}, ErrInvalidInput
	}

	j := job.Job{
		ID:          uuid.New(),
		RecruiterID: actor.ID,
		Title:       in.Title,
		Description: in.Description,
		Company:     in.Company,
		Location:    in.Location,
		Salary:      in.Salary,
		Status:      job.StatusOngoing,
	}

	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	u.invalidateList(ctx)
	return created, nil
}

func (u *Jobs) List(ctx context.Context) ([]job.Job, error) {
	if u.cache != nil {
		var cached []job.Job
		hit, err := u.cache.GetJSON(ctx, jobsListCacheKey, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, jobsListCacheKey, jobs, 0)
	}
	return jobs, nil
}

func (u *Jobs) Delete(ctx context.Context, actor Actor, jobID uuid.UUID) error {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	if !j.IsOwnedBy(actor.ID) {
		return ErrForbidden
	}

	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	u.invalidateList(ctx)
	return nil
}

func (u *Jobs) SetStatus(ctx context.Context, actor Actor, jobID uuid.UUID, status string) (job.Job, error) {
	newStatus, ok := job.ParseStatus(strings.TrimSpace(status))
	if !ok {
		return job.Job{}, ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}

	if !j.IsOwnedBy(actor.ID) {
		return job.Job{}, ErrForbidden
	}

	updated, flipped, err := u.jobs.SetStatus(ctx, jobID, newStatus)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}

	for _, appID := range flipped {
		ws.NotifyApplicationUpdated(appID, jobID, string(application.StatusRejected))
	}
	if len(flipped) > 0 && u.logger != nil {
		u.logger.Printf("[Jobs] Cascade rejection | job_id=%s applications=%d", jobID, len(flipped))
	}

	u.invalidateList(ctx)
	return updated, nil
}

func (u *Jobs) invalidateList(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, jobsListCacheKey)
}
