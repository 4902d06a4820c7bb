package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSubmitted          Status = "Submitted"
	StatusShortlisted        Status = "Shortlisted"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusRejected           Status = "Rejected"
	StatusSelected           Status = "Selected"
)

// DefaultMessage is stored when a candidate applies without a cover message.
const DefaultMessage = "No message provided"

// ParseUpdatableStatus accepts only the recruiter-assignable statuses.
// Submitted is the implicit initial state, never a transition target.
func ParseUpdatableStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusShortlisted, StatusInterviewScheduled, StatusRejected, StatusSelected:
		return Status(raw), true
	default:
		return "", false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusSelected
}

var allStatuses = []Status{
	StatusSubmitted,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusRejected,
	StatusSelected,
}

// TerminalStatuses lists the statuses a job-end cascade must leave untouched.
func TerminalStatuses() []Status {
	out := make([]Status, 0, 2)
	for _, s := range allStatuses {
		if s.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}

// Application links one candidate to one job. At most one exists per
// (job, candidate) pair.
type Application struct {
	ID               uuid.UUID
	JobID            uuid.UUID
	CandidateID      uuid.UUID
	Message          string
	ResumeURL        string
	Status           Status
	InterviewMessage *string
	InterviewDate    *time.Time
	CreatedAt        time.Time
}

// JobSummary carries the job fields joined onto a candidate's application
// listing.
type JobSummary struct {
	ID       uuid.UUID
	Title    string
	Company  string
	Location string
	Status   string
}

type WithJob struct {
	Application
	Job JobSummary
}
