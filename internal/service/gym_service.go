package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/repository"
)

// GymInput is the editable form of a gym.
type GymInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	URL          string `json:"url" validate:"omitempty,url"`
	Location     string `json:"location" validate:"max=200"`
	GoogleMapURL string `json:"google_map_url" validate:"omitempty,url"`
}

// GymService manages host gyms.
type GymService struct {
	gyms     repository.GymRepository
	validate *validator.Validate
}

// NewGymService constructs the service.
func NewGymService(gyms repository.GymRepository) *GymService {
	return &GymService{gyms: gyms, validate: newValidator()}
}

// List returns all gyms by name.
func (s *GymService) List(ctx context.Context) ([]domain.Gym, error) {
	return s.gyms.List(ctx)
}

// Create validates and stores a gym.
func (s *GymService) Create(ctx context.Context, input GymInput) (*domain.Gym, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.URL = strings.TrimSpace(input.URL)
	input.Location = strings.TrimSpace(input.Location)
	input.GoogleMapURL = strings.TrimSpace(input.GoogleMapURL)
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	gym := &domain.Gym{
		Name:         input.Name,
		URL:          input.URL,
		Location:     input.Location,
		GoogleMapURL: input.GoogleMapURL,
	}
	if err := s.gyms.Create(ctx, gym); err != nil {
		return nil, err
	}
	return gym, nil
}
