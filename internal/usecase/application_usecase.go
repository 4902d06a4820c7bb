package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobEnded            = errors.New("job has ended")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrApplicationClosed   = errors.New("application already in a terminal status")
	ErrInvalidResume       = errors.New("resume must be a pdf document")
)

var pdfMagic = []byte("%PDF-")

// ResumeFile is the uploaded document as the handler received it.
type ResumeFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (f ResumeFile) isPDF() bool {
	if strings.EqualFold(strings.TrimSpace(f.ContentType), "application/pdf") {
		return true
	}
	return bytes.HasPrefix(f.Content, pdfMagic)
}

type ApplyInput struct {
	Message string
	Resume  ResumeFile
}

type UpdateApplicationInput struct {
	Status           string
	InterviewMessage *string
	InterviewDate    *time.Time
}

// CandidateApplications is the my-applications view: the rows plus the
// statistics derived from them.
type CandidateApplications struct {
	Applications []application.WithJob
	Stats        application.Statistics
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, jobID uuid.UUID, in ApplyInput) (application.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, appID uuid.UUID, in UpdateApplicationInput) (application.Application, error)
	ListForCandidate(ctx context.Context, actor Actor) (CandidateApplications, error)
}

type Applications struct {
	apps    application.Repository
	jobs    job.Repository
	storage storage.ResumeStorage
	cache   Cache
}

func NewApplicationUsecase(apps application.Repository, jobs job.Repository, st storage.ResumeStorage, cache Cache) *Applications {
	return &Applications{apps: apps, jobs: jobs, storage: st, cache: cache}
}

func (u *Applications) Apply(ctx context.Context, actor Actor, jobID uuid.UUID, in ApplyInput) (application.Application, error) {
	if actor.Role != user.RoleCandidate {
		return application.Application{}, ErrForbidden
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !j.IsOngoing() {
		return application.Application{}, ErrJobEnded
	}

	if len(in.Resume.Content) == 0 || !in.Resume.isPDF() {
		return application.Application{}, ErrInvalidResume
	}

	exists, err := u.apps.ExistsForJobAndCandidate(ctx, jobID, actor.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrAlreadyApplied
	}

	appID := uuid.New()
	resumeURL, err := u.storage.Upload(ctx, resumeKey(appID), in.Resume.Content, "application/pdf")
	if err != nil {
		return application.Application{}, ErrInternal
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		message = application.DefaultMessage
	}

	a := application.Application{
		ID:          appID,
		JobID:       jobID,
		CandidateID: actor.ID,
		Message:     message,
		ResumeURL:   resumeURL,
		Status:      application.StatusSubmitted,
	}

	if err := u.apps.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := u.apps.GetByID(ctx, appID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	u.invalidateJobsList(ctx)
	return created, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, appID uuid.UUID, in UpdateApplicationInput) (application.Application, error) {
	if actor.Role != user.RoleRecruiter {
		return application.Application{}, ErrForbidden
	}

	newStatus, ok := application.ParseUpdatableStatus(strings.TrimSpace(in.Status))
	if !ok {
		return application.Application{}, ErrInvalidInput
	}

	a, err := u.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !j.IsOngoing() {
		return application.Application{}, ErrJobEnded
	}

	if a.Status.IsTerminal() {
		return application.Application{}, ErrApplicationClosed
	}

	upd := application.StatusUpdate{
		Status:           newStatus,
		InterviewMessage: in.InterviewMessage,
	}
	if newStatus == application.StatusInterviewScheduled {
		upd.InterviewDate = in.InterviewDate
	}

	updated, err := u.apps.UpdateStatus(ctx, appID, upd)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	ws.NotifyApplicationUpdated(updated.ID, updated.JobID, string(updated.Status))
	return updated, nil
}

func (u *Applications) ListForCandidate(ctx context.Context, actor Actor) (CandidateApplications, error) {
	if actor.Role != user.RoleCandidate {
		return CandidateApplications{}, ErrForbidden
	}

	items, err := u.apps.ListByCandidate(ctx, actor.ID)
	if err != nil {
		return CandidateApplications{}, ErrInternal
	}

	apps := make([]application.Application, 0, len(items))
	for _, it := range items {
		apps = append(apps, it.Application)
	}

	return CandidateApplications{
		Applications: items,
		Stats:        application.ComputeStatistics(apps),
	}, nil
}

func (u *Applications) invalidateJobsList(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, jobsListCacheKey)
}

func resumeKey(appID uuid.UUID) string {
	return fmt.Sprintf("resumes/%s.pdf", appID)
}
