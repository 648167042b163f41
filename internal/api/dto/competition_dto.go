package dto

import (
	"github.com/spec-kit/competition-service/internal/calendar"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/service"
)

// CompetitionResponse is the public view of a competition.
type CompetitionResponse struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date,omitempty"`
	DateRange          string       `json:"date_range"`
	Gym                *GymResponse `json:"gym,omitempty"`
	League             string       `json:"league,omitempty"`
	Type               string       `json:"type,omitempty"`
	Format             string       `json:"format,omitempty"`
	RegistrationURL    string       `json:"registration_url,omitempty"`
	ResultsURL         string       `json:"results_url,omitempty"`
	CoachAttending     string       `json:"coach_attending,omitempty"`
	HasRoster          bool         `json:"has_roster"`
	GoogleCalendarLink string       `json:"google_calendar_link"`
}

// CompetitionAdminResponse adds fields only editors see.
type CompetitionAdminResponse struct {
	CompetitionResponse
	AthleteSheetURL string `json:"athlete_sheet_url,omitempty"`
}

// PageResponse describes listing pagination.
type PageResponse struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// CompetitionListResponse is one page of competitions.
type CompetitionListResponse struct {
	Items []CompetitionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CalendarEventResponse is one all-day calendar entry; End is exclusive.
type CalendarEventResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	URL    string `json:"url,omitempty"`
	Color  string `json:"color"`
	League string `json:"league,omitempty"`
	Type   string `json:"type,omitempty"`
}

// LeagueResponse describes a league page.
type LeagueResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Found       bool   `json:"found"`
}

// NewCompetitionResponse maps a competition.
func NewCompetitionResponse(c *domain.Competition) CompetitionResponse {
	resp := CompetitionResponse{
		ID:                 c.ID,
		Name:               c.Name,
		StartDate:          c.StartDate.Format(domain.DateLayout),
		League:             c.League,
		Type:               c.Type,
		Format:             c.Format,
		RegistrationURL:    c.RegistrationURL,
		ResultsURL:         c.ResultsURL,
		HasRoster:          c.HasRoster(),
		GoogleCalendarLink: calendar.GoogleCalendarLink(*c),
	}
	if c.EndDate != nil {
		resp.EndDate = c.EndDate.Format(domain.DateLayout)
		resp.DateRange = calendar.FormatDateRange(c.StartDate, *c.EndDate)
	} else {
		resp.DateRange = calendar.FormatDateRange(c.StartDate, c.StartDate)
	}
	if c.Gym != nil {
		gym := NewGymResponse(c.Gym)
		resp.Gym = &gym
	}
	if c.CoachAttending != nil {
		resp.CoachAttending = string(*c.CoachAttending)
	}
	return resp
}

// NewCompetitionAdminResponse maps a competition for editors.
func NewCompetitionAdminResponse(c *domain.Competition) CompetitionAdminResponse {
	return CompetitionAdminResponse{
		CompetitionResponse: NewCompetitionResponse(c),
		AthleteSheetURL:     c.AthleteSheetURL,
	}
}

// NewCompetitionListResponse maps a listing page.
func NewCompetitionListResponse(p *service.CompetitionPage) CompetitionListResponse {
	items := make([]CompetitionResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, NewCompetitionResponse(&p.Items[i]))
	}
	return CompetitionListResponse{
		Items: items,
		Page:  PageResponse{Page: p.Page, PageSize: p.PageSize, HasMore: p.HasMore},
	}
}

// NewCalendarResponse maps calendar events.
func NewCalendarResponse(evs []calendar.Event) []CalendarEventResponse {
	out := make([]CalendarEventResponse, 0, len(evs))
	for _, e := range evs {
		out = append(out, CalendarEventResponse{
			ID:     e.ID,
			Title:  e.Title,
			Start:  e.Start.Format(domain.DateLayout),
			End:    e.End.Format(domain.DateLayout),
			URL:    e.URL,
			Color:  e.Color,
			League: e.League,
			Type:   e.Type,
		})
	}
	return out
}

// NewLeagueResponse maps league details.
func NewLeagueResponse(l service.LeagueDetails) LeagueResponse {
	return LeagueResponse{
		Code:        l.Code,
		Name:        l.Name,
		Description: l.Description,
		Color:       calendar.LeagueColor(l.Code),
		Found:       l.Found,
	}
}
