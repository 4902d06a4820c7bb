package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-board/internal/database"
	"job-board/internal/domain/application"
	"job-board/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, description, company, location, salary, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.RecruiterID, j.Title, j.Description, j.Company, j.Location, j.Salary, string(j.Status),
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, recruiter_id, title, description, company, location, salary, status, num_applicants, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	)
	j, err := scanJob(row)
	if err != nil {
		return job.Job{}, err
	}

	j.Applicants, err = r.applicantIDs(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, recruiter_id, title, description, company, location, salary, status, num_applicants, created_at, updated_at
		 FROM jobs
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		j.Applicants = []uuid.UUID{}
		byID[j.ID] = len(out)
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	appRows, err := r.db.Query(ctx, `SELECT id, job_id FROM applications`)
	if err != nil {
		return nil, err
	}
	defer appRows.Close()

	for appRows.Next() {
		var appID, jobID uuid.UUID
		if err := appRows.Scan(&appID, &jobID); err != nil {
			return nil, err
		}
		if idx, ok := byID[jobID]; ok {
			out[idx].Applicants = append(out[idx].Applicants, appID)
		}
	}
	if err := appRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the job together with its applications so no orphaned
// records survive.
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
			return err
		}
		affected, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return job.ErrNotFound
		}
		return nil
	})
}

// SetStatus flips the job status and, when the job ends, rejects every
// still-open application in the same transaction. The rejection is computed
// from current state, so replaying the call is harmless.
func (r *JobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) (job.Job, []uuid.UUID, error) {
	var updated job.Job
	var flipped []uuid.UUID

	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE jobs SET status = $2, updated_at = now()
			 WHERE id = $1
			 RETURNING id, recruiter_id, title, description, company, location, salary, status, num_applicants, created_at, updated_at`,
			id, string(status),
		)
		j, err := scanJob(row)
		if err != nil {
			return err
		}
		updated = j

		if status == job.StatusEnded {
			query, args := cascadeRejectQuery(id)
			rows, err := tx.Query(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()

			for rows.Next() {
				var appID uuid.UUID
				if err := rows.Scan(&appID); err != nil {
					return err
				}
				flipped = append(flipped, appID)
			}
			if err := rows.Err(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return job.Job{}, nil, err
	}

	updated.Applicants, err = r.applicantIDs(ctx, id)
	if err != nil {
		return job.Job{}, nil, err
	}
	return updated, flipped, nil
}

// cascadeRejectQuery rejects every still-open application of the job. The
// excluded set is derived from Status.IsTerminal, not spelled out here.
func cascadeRejectQuery(jobID uuid.UUID) (string, []any) {
	args := []any{jobID, string(application.StatusRejected)}

	placeholders := make([]string, 0, 2)
	for _, s := range application.TerminalStatuses() {
		args = append(args, string(s))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE applications SET status = $2
		 WHERE job_id = $1 AND status NOT IN (%s)
		 RETURNING id`,
		strings.Join(placeholders, ", "),
	)
	return query, args
}

func (r *JobRepository) applicantIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM applications WHERE job_id = $1 ORDER BY created_at`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Company, &j.Location,
		&j.Salary, &status, &j.NumApplicants, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}
