package dto

import "github.com/spec-kit/competition-service/internal/service"

// AthleteResponse is one roster line.
type AthleteResponse struct {
	Name        string `json:"name"`
	RawDivision string `json:"raw_division"`
	Special     bool   `json:"special"`
}

// DivisionResponse groups athletes under a canonical division.
type DivisionResponse struct {
	Division string            `json:"division"`
	Count    int               `json:"count"`
	Athletes []AthleteResponse `json:"athletes"`
}

// RosterResponse is a competition's grouped athlete list.
type RosterResponse struct {
	CompetitionID   string             `json:"competition_id"`
	CompetitionName string             `json:"competition_name"`
	UpdatedAt       *string            `json:"updated_at"`
	Total           int                `json:"total"`
	Divisions       []DivisionResponse `json:"divisions"`
}

// NewRosterResponse maps a roster. UpdatedAt is null when the sheet carried no marker.
func NewRosterResponse(r *service.Roster) RosterResponse {
	resp := RosterResponse{
		CompetitionID:   r.Competition.ID,
		CompetitionName: r.Competition.Name,
		Total:           r.Total(),
		Divisions:       make([]DivisionResponse, 0, len(r.Groups)),
	}
	if r.HasUpdatedAt {
		updated := r.UpdatedAt
		resp.UpdatedAt = &updated
	}
	for _, g := range r.Groups {
		athletes := make([]AthleteResponse, 0, len(g.Entries))
		for _, e := range g.Entries {
			athletes = append(athletes, AthleteResponse{Name: e.Name, RawDivision: e.RawDivision, Special: e.Special})
		}
		resp.Divisions = append(resp.Divisions, DivisionResponse{
			Division: g.Division,
			Count:    g.Count(),
			Athletes: athletes,
		})
	}
	return resp
}
