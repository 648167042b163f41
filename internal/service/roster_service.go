package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/observability"
	"github.com/spec-kit/competition-service/internal/repository"
	"github.com/spec-kit/competition-service/internal/roster"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// FeedSource returns the raw export behind an athlete sheet link.
type FeedSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Roster is a competition's normalized athlete list.
type Roster struct {
	Competition *domain.Competition
	roster.Result
}

// RosterService resolves a competition's sheet and normalizes it.
type RosterService struct {
	competitions repository.CompetitionRepository
	feeds        FeedSource
	normalizer   *roster.Normalizer
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// RosterDependencies bundles collaborators for the roster service.
type RosterDependencies struct {
	CompetitionRepo repository.CompetitionRepository
	Feeds           FeedSource
	Options         roster.Options
	Metrics         *observability.Metrics
	Logger          *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(deps RosterDependencies) *RosterService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		competitions: deps.CompetitionRepo,
		feeds:        deps.Feeds,
		normalizer:   roster.NewNormalizer(deps.Options),
		metrics:      deps.Metrics,
		logger:       logger,
	}
}

// GetRoster returns the grouped athletes of a competition. A non-empty tag
// keeps only entries whose raw division contains it as a whole word.
func (s *RosterService) GetRoster(ctx context.Context, competitionID, tag string) (*Roster, error) {
	comp, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		return nil, notFoundOr(err, "competition", competitionID)
	}
	if !comp.HasRoster() {
		return nil, apperrors.NewRosterUnavailable(competitionID)
	}

	raw, err := s.feeds.Fetch(ctx, comp.AthleteSheetURL)
	if err != nil {
		s.logger.Warn("athlete sheet unavailable",
			zap.String("competition_id", competitionID),
			zap.Error(err))
		return nil, apperrors.NewUpstreamError(err)
	}

	result := s.normalizer.Normalize(raw)
	s.metrics.RecordRosterSize(result.Total())
	if tag = strings.TrimSpace(tag); tag != "" {
		result = result.Filter(tag)
	}
	return &Roster{Competition: comp, Result: result}, nil
}
