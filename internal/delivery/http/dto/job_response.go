package dto

import (
	"time"

	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID            uuid.UUID   `json:"id"`
	Recruiter     uuid.UUID   `json:"recruiter"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Company       string      `json:"company"`
	Location      string      `json:"location"`
	Salary        float64     `json:"salary"`
	Status        string      `json:"status"`
	Applicants    []uuid.UUID `json:"applicants"`
	NumApplicants int         `json:"numApplicants"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func FromJob(j job.Job) JobResponse {
	applicants := j.Applicants
	if applicants == nil {
		applicants = []uuid.UUID{}
	}
	return JobResponse{
		ID:            j.ID,
		Recruiter:     j.RecruiterID,
		Title:         j.Title,
		Description:   j.Description,
		Company:       j.Company,
		Location:      j.Location,
		Salary:        j.Salary,
		Status:        string(j.Status),
		Applicants:    applicants,
		NumApplicants: j.NumApplicants,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

func FromJobs(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
