package postgres

import (
	"context"
	"errors"

	"job-board/internal/database"
	"job-board/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application and bumps the job's applicant counter in one
// transaction, keeping num_applicants equal to the number of application rows.
func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO applications (id, job_id, candidate_id, message, resume_url, status, interview_message, interview_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, a.JobID, a.CandidateID, a.Message, a.ResumeURL, string(a.Status), a.InterviewMessage, a.InterviewDate,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE jobs SET num_applicants = num_applicants + 1, updated_at = now() WHERE id = $1`,
			a.JobID,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return application.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, message, resume_url, status, interview_message, interview_date, created_at
		 FROM applications WHERE id = $1`,
		id,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd application.StatusUpdate) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET status = $2,
		     interview_message = COALESCE($3, interview_message),
		     interview_date = CASE WHEN $2 = $4 THEN $5 ELSE interview_date END
		 WHERE id = $1
		 RETURNING id, job_id, candidate_id, message, resume_url, status, interview_message, interview_date, created_at`,
		id,
		string(upd.Status),
		upd.InterviewMessage,
		string(application.StatusInterviewScheduled),
		upd.InterviewDate,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.WithJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.message, a.resume_url, a.status,
		        a.interview_message, a.interview_date, a.created_at,
		        j.id, j.title, j.company, j.location, j.status
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.WithJob, 0)
	for rows.Next() {
		var item application.WithJob
		var status string
		err := rows.Scan(
			&item.ID, &item.JobID, &item.CandidateID, &item.Message, &item.ResumeURL, &status,
			&item.InterviewMessage, &item.InterviewDate, &item.CreatedAt,
			&item.Job.ID, &item.Job.Title, &item.Job.Company, &item.Job.Location, &item.Job.Status,
		)
		if err != nil {
			return nil, err
		}
		item.Status = application.Status(status)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.Message, &a.ResumeURL, &status,
		&a.InterviewMessage, &a.InterviewDate, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
