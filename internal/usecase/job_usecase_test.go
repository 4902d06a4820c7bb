package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

type jobsRepoMock struct {
	byID map[uuid.UUID]job.Job

	listRows  []job.Job
	listCalls int
	listErr   error

	deleted []uuid.UUID
	flipped []uuid.UUID
}

func newJobsRepoMock() *jobsRepoMock {
	return &jobsRepoMock{byID: make(map[uuid.UUID]job.Job)}
}

func (m *jobsRepoMock) Create(_ context.Context, j job.Job) error {
	m.byID[j.ID] = j
	return nil
}

func (m *jobsRepoMock) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *jobsRepoMock) List(_ context.Context) ([]job.Job, error) {
	m.listCalls++
	return m.listRows, m.listErr
}

func (m *jobsRepoMock) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return job.ErrNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *jobsRepoMock) SetStatus(_ context.Context, id uuid.UUID, status job.Status) (job.Job, []uuid.UUID, error) {
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, nil, job.ErrNotFound
	}
	j.Status = status
	m.byID[id] = j
	if status == job.StatusEnded {
		return j, m.flipped, nil
	}
	return j, nil, nil
}

// cacheStub keeps marshaled values in memory and counts deletions.
type cacheStub struct {
	data    map[string][]byte
	deletes []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{data: make(map[string][]byte)}
}

func (c *cacheStub) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *cacheStub) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *cacheStub) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func recruiterActor() Actor {
	return Actor{ID: uuid.New(), Name: "Rita", Role: user.RoleRecruiter}
}

func candidateActor() Actor {
	return Actor{ID: uuid.New(), Name: "Carl", Role: user.RoleCandidate}
}

func TestJobCreate_ForbiddenForCandidate(t *testing.T) {
	uc := NewJobUsecase(newJobsRepoMock(), nil, nil)
	_, err := uc.Create(context.Background(), candidateActor(), CreateJobInput{
		Title: "Backend Engineer", Description: "desc", Company: "Acme", Location: "Remote", Salary: 90000,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobCreate_InvalidInput(t *testing.T) {
	uc := NewJobUsecase(newJobsRepoMock(), nil, nil)
	actor := recruiterActor()

	cases := []CreateJobInput{
		{Title: "  ", Description: "d", Company: "c", Location: "l", Salary: 1},
		{Title: "t", Description: "d", Company: "c", Location: "l", Salary: 0},
		{Title: "t", Description: "d", Company: "c", Location: "l", Salary: -5},
	}
	for i, in := range cases {
		if _, err := uc.Create(context.Background(), actor, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestJobCreate_Success(t *testing.T) {
	repo := newJobsRepoMock()
	cache := newCacheStub()
	cache.data[jobsListCacheKey] = []byte(`[]`)

	uc := NewJobUsecase(repo, cache, nil)
	actor := recruiterActor()

	created, err := uc.Create(context.Background(), actor, CreateJobInput{
		Title: " Backend Engineer ", Description: "desc", Company: "Acme", Location: "Remote", Salary: 90000,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.RecruiterID != actor.ID {
		t.Fatalf("recruiter id not set")
	}
	if created.Status != job.StatusOngoing {
		t.Fatalf("expected ongoing status, got %q", created.Status)
	}
	if created.Title != "Backend Engineer" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if _, ok := cache.data[jobsListCacheKey]; ok {
		t.Fatalf("jobs list cache not invalidated")
	}
}

func TestJobList_CacheHitSkipsRepo(t *testing.T) {
	repo := newJobsRepoMock()
	cache := newCacheStub()

	cached := []job.Job{{ID: uuid.New(), Title: "Cached"}}
	if err := cache.SetJSON(context.Background(), jobsListCacheKey, cached, 0); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	uc := NewJobUsecase(repo, cache, nil)
	jobs, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Cached" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
	if repo.listCalls != 0 {
		t.Fatalf("repo hit on cache hit")
	}
}

func TestJobList_CacheMissFillsCache(t *testing.T) {
	repo := newJobsRepoMock()
	repo.listRows = []job.Job{{ID: uuid.New(), Title: "Fresh"}}
	cache := newCacheStub()

	uc := NewJobUsecase(repo, cache, nil)
	jobs, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Fresh" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.listCalls)
	}
	if _, ok := cache.data[jobsListCacheKey]; !ok {
		t.Fatalf("cache not filled after miss")
	}
}

func TestJobDelete_NotFound(t *testing.T) {
	uc := NewJobUsecase(newJobsRepoMock(), nil, nil)
	err := uc.Delete(context.Background(), recruiterActor(), uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobDelete_NonOwnerForbidden(t *testing.T) {
	repo := newJobsRepoMock()
	jobID := uuid.New()
	repo.byID[jobID] = job.Job{ID: jobID, RecruiterID: uuid.New()}

	uc := NewJobUsecase(repo, nil, nil)
	err := uc.Delete(context.Background(), recruiterActor(), jobID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("delete reached repository")
	}
}

func TestJobDelete_OwnerSucceeds(t *testing.T) {
	repo := newJobsRepoMock()
	cache := newCacheStub()
	actor := recruiterActor()
	jobID := uuid.New()
	repo.byID[jobID] = job.Job{ID: jobID, RecruiterID: actor.ID}

	uc := NewJobUsecase(repo, cache, nil)
	if err := uc.Delete(context.Background(), actor, jobID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != jobID {
		t.Fatalf("job not deleted")
	}
	if len(cache.deletes) == 0 {
		t.Fatalf("jobs list cache not invalidated")
	}
}

func TestJobSetStatus_InvalidStatus(t *testing.T) {
	uc := NewJobUsecase(newJobsRepoMock(), nil, nil)
	_, err := uc.SetStatus(context.Background(), recruiterActor(), uuid.New(), "paused")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobSetStatus_NonOwnerForbidden(t *testing.T) {
	repo := newJobsRepoMock()
	jobID := uuid.New()
	repo.byID[jobID] = job.Job{ID: jobID, RecruiterID: uuid.New(), Status: job.StatusOngoing}

	uc := NewJobUsecase(repo, nil, nil)
	_, err := uc.SetStatus(context.Background(), recruiterActor(), jobID, "ended")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobSetStatus_EndFlipsApplications(t *testing.T) {
	repo := newJobsRepoMock()
	cache := newCacheStub()
	actor := recruiterActor()
	jobID := uuid.New()
	repo.byID[jobID] = job.Job{ID: jobID, RecruiterID: actor.ID, Status: job.StatusOngoing}
	repo.flipped = []uuid.UUID{uuid.New(), uuid.New()}

	uc := NewJobUsecase(repo, cache, nil)
	updated, err := uc.SetStatus(context.Background(), actor, jobID, "ended")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != job.StatusEnded {
		t.Fatalf("expected ended, got %q", updated.Status)
	}
	if len(cache.deletes) == 0 {
		t.Fatalf("jobs list cache not invalidated")
	}
}
