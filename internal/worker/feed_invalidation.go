package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/competition-service/internal/events"
)

// FeedInvalidator evicts cached athlete sheets.
type FeedInvalidator interface {
	Invalidate(ctx context.Context, url string) error
}

// StartFeedInvalidation evicts cached sheets whenever a competition's
// sheet link may have changed.
func StartFeedInvalidation(dispatcher events.Dispatcher, feeds FeedInvalidator, logger *zap.Logger) {
	if dispatcher == nil || feeds == nil {
		return
	}
	handler := func(ctx context.Context, e events.Event) error {
		for _, url := range e.SheetURLs() {
			if err := feeds.Invalidate(ctx, url); err != nil {
				return err
			}
			logger.Debug("athlete sheet cache evicted",
				zap.String("competition_id", e.CompetitionID),
				zap.String("event_type", string(e.Type)))
		}
		return nil
	}
	for _, t := range events.CompetitionEventTypes {
		dispatcher.Subscribe(t, handler)
	}
}
