package domain

import "time"

// DateLayout is the wire and storage format for competition dates.
const DateLayout = "2006-01-02"

// CoachAttending records whether a coach travels to a competition.
type CoachAttending string

const (
	CoachAttendingYes   CoachAttending = "yes"
	CoachAttendingNo    CoachAttending = "no"
	CoachAttendingMaybe CoachAttending = "maybe"
)

// Competition is a scheduled event listing.
type Competition struct {
	ID              string
	Name            string
	StartDate       time.Time
	EndDate         *time.Time
	GymID           *string
	Gym             *Gym
	League          string
	Type            string
	Format          string
	RegistrationURL string
	ResultsURL      string
	CoachAttending  *CoachAttending
	AthleteSheetURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LastDay returns the final day of the competition.
func (c *Competition) LastDay() time.Time {
	if c.EndDate != nil && !c.EndDate.IsZero() {
		return *c.EndDate
	}
	return c.StartDate
}

// HasRoster reports whether an athlete sheet is linked.
func (c *Competition) HasRoster() bool {
	return c.AthleteSheetURL != ""
}

// CalendarDay returns the calendar date of t in loc as a UTC midnight,
// matching how stored dates are scanned.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
