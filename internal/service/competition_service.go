package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/calendar"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/repository"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// CompetitionService coordinates competition listings.
type CompetitionService struct {
	competitions repository.CompetitionRepository
	gyms         repository.GymRepository
	dispatcher   events.Dispatcher
	loc          *time.Location
	validate     *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// CompetitionDependencies bundles collaborators for the competition service.
type CompetitionDependencies struct {
	CompetitionRepo repository.CompetitionRepository
	GymRepo         repository.GymRepository
	Dispatcher      events.Dispatcher
	Location        *time.Location
	Logger          *zap.Logger
}

// CompetitionInput is the editable form of a competition.
type CompetitionInput struct {
	Name            string `json:"name" validate:"required,max=200"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	GymID           string `json:"gym_id" validate:"omitempty,uuid"`
	League          string `json:"league" validate:"omitempty,league"`
	Type            string `json:"type" validate:"max=100"`
	Format          string `json:"format" validate:"max=100"`
	RegistrationURL string `json:"registration_url" validate:"omitempty,url"`
	ResultsURL      string `json:"results_url" validate:"omitempty,url"`
	CoachAttending  string `json:"coach_attending" validate:"omitempty,oneof=yes no maybe"`
	AthleteSheetURL string `json:"athlete_sheet_url" validate:"omitempty,url"`
}

// CompetitionQuery describes a listing request.
type CompetitionQuery struct {
	Search   string `json:"q" validate:"max=200"`
	League   string `json:"league" validate:"omitempty,league"`
	When     string `json:"when" validate:"omitempty,oneof=upcoming past all"`
	Page     int    `json:"page" validate:"gte=0"`
	PageSize int    `json:"page_size" validate:"gte=0,lte=200"`
}

// CompetitionPage is one page of a listing.
type CompetitionPage struct {
	Items    []domain.Competition
	Page     int
	PageSize int
	HasMore  bool
}

// NewCompetitionService constructs the service.
func NewCompetitionService(deps CompetitionDependencies) *CompetitionService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompetitionService{
		competitions: deps.CompetitionRepo,
		gyms:         deps.GymRepo,
		dispatcher:   deps.Dispatcher,
		loc:          loc,
		validate:     newValidator(),
		logger:       logger,
		now:          time.Now,
	}
}

// List returns competitions matching q, earliest first for upcoming and
// latest first for past listings.
func (s *CompetitionService) List(ctx context.Context, q CompetitionQuery) (*CompetitionPage, error) {
	if err := validateStruct(s.validate, q); err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	filter := repository.CompetitionFilter{
		Search: strings.TrimSpace(q.Search),
		League: q.League,
		Today:  s.today(),
		Limit:  size + 1,
		Offset: (page - 1) * size,
	}
	switch q.When {
	case "upcoming":
		filter.Window = repository.WindowUpcoming
	case "past":
		filter.Window = repository.WindowPast
	}

	items, err := s.competitions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := &CompetitionPage{Items: items, Page: page, PageSize: size}
	if len(items) > size {
		result.Items = items[:size]
		result.HasMore = true
	}
	return result, nil
}

// Get loads a single competition.
func (s *CompetitionService) Get(ctx context.Context, id string) (*domain.Competition, error) {
	comp, err := s.competitions.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "competition", id)
	}
	return comp, nil
}

// Calendar returns every competition as an all-day calendar event,
// optionally restricted to one league.
func (s *CompetitionService) Calendar(ctx context.Context, league string) ([]calendar.Event, error) {
	if league != "" {
		if _, ok := domain.LookupLeague(league); !ok {
			return nil, apperrors.NewValidationError("invalid input", map[string]any{"league": "league"})
		}
	}
	comps, err := s.competitions.List(ctx, repository.CompetitionFilter{League: league})
	if err != nil {
		return nil, err
	}
	return calendar.Events(comps), nil
}

// Create validates and stores a new competition.
func (s *CompetitionService) Create(ctx context.Context, actorID string, input CompetitionInput) (*domain.Competition, error) {
	comp := &domain.Competition{}
	if err := s.apply(ctx, comp, input); err != nil {
		return nil, err
	}
	if err := s.competitions.Create(ctx, comp); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCompetitionCreated, comp.ID, actorID, events.CompetitionChangedPayload{
		Name:     comp.Name,
		SheetURL: comp.AthleteSheetURL,
	})
	return s.Get(ctx, comp.ID)
}

// Update replaces the editable fields of an existing competition.
func (s *CompetitionService) Update(ctx context.Context, actorID, id string, input CompetitionInput) (*domain.Competition, error) {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSheet := comp.AthleteSheetURL
	if err := s.apply(ctx, comp, input); err != nil {
		return nil, err
	}
	if err := s.competitions.Update(ctx, comp); err != nil {
		return nil, notFoundOr(err, "competition", id)
	}
	s.publish(ctx, events.EventCompetitionUpdated, comp.ID, actorID, events.CompetitionChangedPayload{
		Name:             comp.Name,
		PreviousSheetURL: previousSheet,
		SheetURL:         comp.AthleteSheetURL,
	})
	return s.Get(ctx, id)
}

// Delete removes a competition.
func (s *CompetitionService) Delete(ctx context.Context, actorID, id string) error {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.competitions.Delete(ctx, id); err != nil {
		return notFoundOr(err, "competition", id)
	}
	s.publish(ctx, events.EventCompetitionDeleted, id, actorID, events.CompetitionChangedPayload{
		Name:             comp.Name,
		PreviousSheetURL: comp.AthleteSheetURL,
	})
	return nil
}

func (s *CompetitionService) apply(ctx context.Context, comp *domain.Competition, input CompetitionInput) error {
	input = trimCompetitionInput(input)
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}

	start, _ := time.Parse(domain.DateLayout, input.StartDate)
	var end *time.Time
	if input.EndDate != "" {
		e, _ := time.Parse(domain.DateLayout, input.EndDate)
		if e.Before(start) {
			return apperrors.NewValidationError("invalid input", map[string]any{"end_date": "gtefield=start_date"})
		}
		end = &e
	}

	var gymID *string
	if input.GymID != "" {
		if _, err := s.gyms.GetByID(ctx, input.GymID); err != nil {
			if errors.Is(err, errNoRows) {
				return apperrors.NewValidationError("invalid input", map[string]any{"gym_id": "exists"})
			}
			return err
		}
		id := input.GymID
		gymID = &id
	}

	var coach *domain.CoachAttending
	if input.CoachAttending != "" {
		ca := domain.CoachAttending(input.CoachAttending)
		coach = &ca
	}

	comp.Name = input.Name
	comp.StartDate = start
	comp.EndDate = end
	comp.GymID = gymID
	comp.League = input.League
	comp.Type = input.Type
	comp.Format = input.Format
	comp.RegistrationURL = input.RegistrationURL
	comp.ResultsURL = input.ResultsURL
	comp.CoachAttending = coach
	comp.AthleteSheetURL = input.AthleteSheetURL
	return nil
}

func trimCompetitionInput(in CompetitionInput) CompetitionInput {
	for _, f := range []*string{
		&in.Name, &in.StartDate, &in.EndDate, &in.GymID, &in.League, &in.Type, &in.Format,
		&in.RegistrationURL, &in.ResultsURL, &in.CoachAttending, &in.AthleteSheetURL,
	} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

func (s *CompetitionService) publish(ctx context.Context, t events.EventType, competitionID, actorID string, payload events.CompetitionChangedPayload) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, events.NewCompetitionEvent(t, competitionID, actorID, payload)); err != nil {
		s.logger.Warn("publish competition event failed",
			zap.String("event_type", string(t)),
			zap.String("competition_id", competitionID),
			zap.Error(err))
	}
}

func (s *CompetitionService) today() time.Time {
	return domain.CalendarDay(s.now(), s.loc)
}
