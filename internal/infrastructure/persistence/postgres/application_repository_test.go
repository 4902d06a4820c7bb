package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"job-board/internal/database"
	"job-board/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func sampleApplication() application.Application {
	return application.Application{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		CandidateID: uuid.New(),
		Message:     "hire me",
		ResumeURL:   "http://storage.local/resumes/cv.pdf",
		Status:      application.StatusSubmitted,
	}
}

func TestApplicationRepositoryCreate_BumpsCounterInSameTx(t *testing.T) {
	tx := &txStub{}
	db := &dbStub{tx: tx}
	a := sampleApplication()

	repo := NewApplicationRepository(db)
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(tx.execs) != 2 {
		t.Fatalf("expected insert plus counter update, got %d statements", len(tx.execs))
	}
	if !strings.Contains(tx.execs[0].query, "INSERT INTO applications") {
		t.Fatalf("first statement must insert the application: %q", tx.execs[0].query)
	}
	if !strings.Contains(tx.execs[1].query, "num_applicants = num_applicants + 1") {
		t.Fatalf("second statement must bump the counter: %q", tx.execs[1].query)
	}
	if tx.execs[1].args[0] != a.JobID {
		t.Fatalf("counter update must target the application's job, got %v", tx.execs[1].args[0])
	}
	if !tx.committed {
		t.Fatalf("insert and counter must commit together")
	}
}

func TestApplicationRepositoryCreate_UniqueViolationRollsBack(t *testing.T) {
	tx := &txStub{
		execErrs: []error{&pgconn.PgError{Code: pgUniqueViolation}},
	}
	db := &dbStub{tx: tx}

	repo := NewApplicationRepository(db)
	err := repo.Create(context.Background(), sampleApplication())
	if !errors.Is(err, application.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(tx.execs) != 1 {
		t.Fatalf("counter must not move on a failed insert, got %d statements", len(tx.execs))
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("failed insert must roll back, committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
}

func TestApplicationRepositoryListByCandidate_NewestFirst(t *testing.T) {
	candidateID := uuid.New()
	appID, jobID := uuid.New(), uuid.New()

	db := &dbStub{
		rowsQueue: []database.Rows{&stubRows{rows: [][]any{{
			appID, jobID, candidateID, "hire me", "http://storage.local/resumes/cv.pdf", "Submitted",
			(*string)(nil), (*time.Time)(nil), time.Now(),
			jobID, "Backend Engineer", "Acme", "Remote", "ongoing",
		}}}},
	}

	repo := NewApplicationRepository(db)
	out, err := repo.ListByCandidate(context.Background(), candidateID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].ID != appID || out[0].Job.ID != jobID {
		t.Fatalf("row not mapped: %+v", out[0])
	}
	if out[0].Status != application.StatusSubmitted {
		t.Fatalf("status not mapped: %q", out[0].Status)
	}

	if len(db.queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(db.queries))
	}
	if !strings.Contains(db.queries[0].query, "ORDER BY a.created_at DESC") {
		t.Fatalf("listing must be newest first: %q", db.queries[0].query)
	}
	if db.queries[0].args[0] != candidateID {
		t.Fatalf("listing must filter by candidate, got %v", db.queries[0].args[0])
	}
}
