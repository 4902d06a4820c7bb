package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ApplicationUpdatedEvent is pushed whenever an application changes status,
// whether by a recruiter action or a job-end cascade.
type ApplicationUpdatedEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyApplicationUpdated(appID, jobID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ApplicationUpdatedEvent{
		Type:          "application_updated",
		ApplicationID: appID.String(),
		JobID:         jobID.String(),
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
