package publishers

import (
	"time"

	"github.com/samvad-hq/placeholder-collector/internal/domain"
)

// Event represents the payload published downstream for each new comment.
type Event struct {
	Endpoint    string         `json:"endpoint"`
	Comment     domain.Comment `json:"comment"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewEvent constructs an Event for the given endpoint + comment.
func NewEvent(endpoint string, comment domain.Comment) Event {
	return Event{
		Endpoint:    endpoint,
		Comment:     comment,
		CollectedAt: time.Now().UTC(),
	}
}
