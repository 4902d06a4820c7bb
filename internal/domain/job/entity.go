package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusEnded   Status = "ended"
)

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusOngoing:
		return StatusOngoing, true
	case StatusEnded:
		return StatusEnded, true
	default:
		return "", false
	}
}

// Job is a posting owned by one recruiter. Applicants holds the ids of the
// applications filed against it; NumApplicants is kept equal to
// len(Applicants) by updating both inside the same transaction.
type Job struct {
	ID            uuid.UUID
	RecruiterID   uuid.UUID
	Title         string
	Description   string
	Company       string
	Location      string
	Salary        float64
	Status        Status
	Applicants    []uuid.UUID
	NumApplicants int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (j Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.RecruiterID == userID
}

func (j Job) IsOngoing() bool {
	return j.Status == StatusOngoing
}
