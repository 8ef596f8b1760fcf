package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type FavoritesUpdatedEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	JobID     string `json:"jobId"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyFavoritesUpdated is a no-op until a default hub is installed, so
// use cases can call it unconditionally.
func NotifyFavoritesUpdated(userID uuid.UUID, action string, jobID string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if userID == uuid.Nil || jobID == "" {
		return
	}

	evt := FavoritesUpdatedEvent{
		Type:      "favorites_updated",
		Action:    action,
		JobID:     jobID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(userID, b)
}
