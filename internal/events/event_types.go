package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCompetitionCreated EventType = "competition_created"
	EventCompetitionUpdated EventType = "competition_updated"
	EventCompetitionDeleted EventType = "competition_deleted"
)

// CompetitionEventTypes lists every competition lifecycle event.
var CompetitionEventTypes = []EventType{
	EventCompetitionCreated,
	EventCompetitionUpdated,
	EventCompetitionDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	CompetitionID string      `json:"competition_id"`
	ActorID       string      `json:"actor_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// CompetitionChangedPayload carries the athlete sheet links around a change.
// PreviousSheetURL is empty on create; SheetURL is empty on delete.
type CompetitionChangedPayload struct {
	Name             string `json:"name"`
	PreviousSheetURL string `json:"previous_sheet_url,omitempty"`
	SheetURL         string `json:"sheet_url,omitempty"`
}

// NewCompetitionEvent stamps a competition event with an id and time.
func NewCompetitionEvent(t EventType, competitionID, actorID string, payload CompetitionChangedPayload) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		CompetitionID: competitionID,
		ActorID:       actorID,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}
}

// SheetURLs returns the distinct non-empty sheet links referenced by an event.
func (e Event) SheetURLs() []string {
	p, ok := e.Payload.(CompetitionChangedPayload)
	if !ok {
		return nil
	}
	var urls []string
	for _, u := range []string{p.PreviousSheetURL, p.SheetURL} {
		if u == "" || (len(urls) > 0 && urls[0] == u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}
