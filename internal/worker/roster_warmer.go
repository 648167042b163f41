package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/repository"
)

// FeedRefresher downloads a sheet and replaces its cached copy.
type FeedRefresher interface {
	Refresh(ctx context.Context, url string) (string, error)
}

// RosterWarmer periodically refreshes cached sheets of upcoming competitions.
type RosterWarmer struct {
	competitions repository.CompetitionRepository
	feeds        FeedRefresher
	loc          *time.Location
	timeout      time.Duration
	logger       *zap.Logger
	cron         *cron.Cron
	now          func() time.Time
}

// NewRosterWarmer constructs a warmer. timeout bounds one full pass.
func NewRosterWarmer(competitions repository.CompetitionRepository, feeds FeedRefresher, loc *time.Location, timeout time.Duration, logger *zap.Logger) *RosterWarmer {
	return &RosterWarmer{
		competitions: competitions,
		feeds:        feeds,
		loc:          loc,
		timeout:      timeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Start schedules passes on a cron expression or descriptor such as "@hourly".
func (w *RosterWarmer) Start(spec string) error {
	c := cron.New(cron.WithLocation(w.loc))
	if _, err := c.AddFunc(spec, w.run); err != nil {
		return err
	}
	w.cron = c
	c.Start()
	w.logger.Info("roster warmer scheduled", zap.String("schedule", spec))
	return nil
}

// Stop halts scheduling and waits for a running pass to finish or ctx to end.
func (w *RosterWarmer) Stop(ctx context.Context) {
	if w.cron == nil {
		return
	}
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (w *RosterWarmer) run() {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.WarmOnce(ctx); err != nil {
		w.logger.Error("roster warm pass failed", zap.Error(err))
	}
}

// WarmOnce refreshes every upcoming competition's sheet and returns how many
// succeeded. Individual download failures are logged and skipped.
func (w *RosterWarmer) WarmOnce(ctx context.Context) (int, error) {
	comps, err := w.competitions.List(ctx, repository.CompetitionFilter{
		Window:     repository.WindowUpcoming,
		Today:      domain.CalendarDay(w.now(), w.loc),
		WithRoster: true,
	})
	if err != nil {
		return 0, err
	}

	warmed := 0
	seen := make(map[string]struct{}, len(comps))
	for _, c := range comps {
		if _, ok := seen[c.AthleteSheetURL]; ok {
			continue
		}
		seen[c.AthleteSheetURL] = struct{}{}
		if ctx.Err() != nil {
			return warmed, ctx.Err()
		}
		if _, err := w.feeds.Refresh(ctx, c.AthleteSheetURL); err != nil {
			w.logger.Warn("roster warm failed", zap.String("competition_id", c.ID), zap.Error(err))
			continue
		}
		warmed++
	}
	w.logger.Info("roster warm pass finished", zap.Int("competitions", len(comps)), zap.Int("warmed", warmed))
	return warmed, nil
}
