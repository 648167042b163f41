// Package calendar renders competitions as calendar entries and links.
package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spec-kit/competition-service/internal/domain"
)

// DefaultColor is used for leagues without a configured colour.
const DefaultColor = "#888"

const (
	googleRenderURL  = "https://calendar.google.com/calendar/render?action=TEMPLATE&"
	googleDateLayout = "20060102T150405Z"
)

// Event is one all-day calendar entry. End is exclusive.
type Event struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	URL    string
	Color  string
	League string
	Type   string
}

// LeagueColor returns the display colour for a league code.
func LeagueColor(code string) string {
	if l, ok := domain.LookupLeague(code); ok && l.Color != "" {
		return l.Color
	}
	return DefaultColor
}

// EventFromCompetition maps a competition onto an all-day event spanning
// its first through last day.
func EventFromCompetition(c domain.Competition) Event {
	return Event{
		ID:     c.ID,
		Title:  c.Name,
		Start:  c.StartDate,
		End:    c.LastDay().AddDate(0, 0, 1),
		URL:    c.RegistrationURL,
		Color:  LeagueColor(c.League),
		League: c.League,
		Type:   c.Type,
	}
}

// Events maps competitions in order.
func Events(comps []domain.Competition) []Event {
	out := make([]Event, 0, len(comps))
	for _, c := range comps {
		out = append(out, EventFromCompetition(c))
	}
	return out
}

// GoogleCalendarLink builds an "add to Google Calendar" URL for c.
func GoogleCalendarLink(c domain.Competition) string {
	start := c.StartDate.UTC()
	end := c.LastDay().UTC().Add(24 * time.Hour)

	location := ""
	details := ""
	if c.Gym != nil {
		location = c.Gym.Location
		details = c.Gym.GoogleMapURL
	}

	params := url.Values{}
	params.Set("text", c.Name)
	params.Set("dates", start.Format(googleDateLayout)+"/"+end.Format(googleDateLayout))
	params.Set("details", details)
	params.Set("location", location)
	return googleRenderURL + params.Encode()
}

// FormatDateRange renders a human date span such as "May 1, 2024",
// "May 1–3, 2024" or "May 30–Jun 2, 2024".
func FormatDateRange(start, end time.Time) string {
	if end.IsZero() || sameDay(start, end) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%s–%d, %d", start.Format("Jan 2"), end.Day(), end.Year())
	}
	return fmt.Sprintf("%s–%s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
