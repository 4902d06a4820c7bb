package dto

import (
	"time"

	"job-board/internal/domain/application"
	"job-board/internal/usecase"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID               uuid.UUID  `json:"id"`
	Job              uuid.UUID  `json:"job"`
	Candidate        uuid.UUID  `json:"candidate"`
	Message          string     `json:"message"`
	ResumeURL        string     `json:"resumeUrl"`
	Status           string     `json:"status"`
	InterviewMessage *string    `json:"interviewMessage,omitempty"`
	InterviewDate    *time.Time `json:"interviewDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               a.ID,
		Job:              a.JobID,
		Candidate:        a.CandidateID,
		Message:          a.Message,
		ResumeURL:        a.ResumeURL,
		Status:           string(a.Status),
		InterviewMessage: a.InterviewMessage,
		InterviewDate:    a.InterviewDate,
		CreatedAt:        a.CreatedAt,
	}
}

type ApplicationJobResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Status   string    `json:"status"`
}

type CandidateApplicationResponse struct {
	ID               uuid.UUID              `json:"id"`
	Job              ApplicationJobResponse `json:"job"`
	Message          string                 `json:"message"`
	ResumeURL        string                 `json:"resumeUrl"`
	Status           string                 `json:"status"`
	InterviewMessage *string                `json:"interviewMessage,omitempty"`
	InterviewDate    *time.Time             `json:"interviewDate,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// MyApplicationsResponse carries the candidate's applications plus the
// statistics computed from them.
type MyApplicationsResponse struct {
	Applications      []CandidateApplicationResponse `json:"applications"`
	TotalApplications int                            `json:"totalApplications"`
	StatusData        map[string]int                 `json:"statusData"`
	ConversionRatio   float64                        `json:"conversionRatio"`
}

func FromCandidateApplications(in usecase.CandidateApplications) MyApplicationsResponse {
	apps := make([]CandidateApplicationResponse, 0, len(in.Applications))
	for _, it := range in.Applications {
		apps = append(apps, CandidateApplicationResponse{
			ID: it.ID,
			Job: ApplicationJobResponse{
				ID:       it.Job.ID,
				Title:    it.Job.Title,
				Company:  it.Job.Company,
				Location: it.Job.Location,
				Status:   it.Job.Status,
			},
			Message:          it.Message,
			ResumeURL:        it.ResumeURL,
			Status:           string(it.Status),
			InterviewMessage: it.InterviewMessage,
			InterviewDate:    it.InterviewDate,
			CreatedAt:        it.CreatedAt,
		})
	}

	statusData := make(map[string]int, len(in.Stats.ByStatus))
	for s, n := range in.Stats.ByStatus {
		statusData[string(s)] = n
	}

	return MyApplicationsResponse{
		Applications:      apps,
		TotalApplications: in.Stats.Total,
		StatusData:        statusData,
		ConversionRatio:   in.Stats.ConversionRatio,
	}
}
