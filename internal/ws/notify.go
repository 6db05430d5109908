package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CandidatesMatchedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"jobId"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// MatchNotifier publishes match events on the hub, one topic per job.
type MatchNotifier struct {
	hub *Hub
}

func NewMatchNotifier(hub *Hub) *MatchNotifier {
	return &MatchNotifier{hub: hub}
}

func (n *MatchNotifier) CandidatesMatched(jobID uuid.UUID, count int) {
	if n == nil || n.hub == nil || jobID == uuid.Nil {
		return
	}

	evt := CandidatesMatchedEvent{
		Type:      "candidates_matched",
		JobID:     jobID.String(),
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(jobID.String(), b)
}
