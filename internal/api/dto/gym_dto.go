package dto

import "github.com/spec-kit/competition-service/internal/domain"

// GymResponse is the public view of a gym.
type GymResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	Location     string `json:"location,omitempty"`
	GoogleMapURL string `json:"google_map_url,omitempty"`
}

// NewGymResponse maps a gym.
func NewGymResponse(g *domain.Gym) GymResponse {
	return GymResponse{
		ID:           g.ID,
		Name:         g.Name,
		URL:          g.URL,
		Location:     g.Location,
		GoogleMapURL: g.GoogleMapURL,
	}
}

// NewGymList maps gyms in order.
func NewGymList(gyms []domain.Gym) []GymResponse {
	out := make([]GymResponse, 0, len(gyms))
	for i := range gyms {
		out = append(out, NewGymResponse(&gyms[i]))
	}
	return out
}
