package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInMemoryDispatcher(t *testing.T) {
	t.Run("Should deliver to every subscriber of the type", func(t *testing.T) {
		d := NewInMemoryDispatcher(nil)
		var got []string
		d.Subscribe(EventCompetitionCreated, func(_ context.Context, e Event) error {
			got = append(got, "a:"+e.CompetitionID)
			return nil
		})
		d.Subscribe(EventCompetitionCreated, func(_ context.Context, e Event) error {
			got = append(got, "b:"+e.CompetitionID)
			return nil
		})
		d.Subscribe(EventCompetitionDeleted, func(_ context.Context, e Event) error {
			got = append(got, "deleted")
			return nil
		})

		err := d.Publish(context.Background(), NewCompetitionEvent(EventCompetitionCreated, "c-1", "", CompetitionChangedPayload{}))
		require.NoError(t, err)
		assert.Equal(t, []string{"a:c-1", "b:c-1"}, got)
	})

	t.Run("Should keep going and log when a handler fails", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		d := NewInMemoryDispatcher(zap.New(core))
		called := false
		d.Subscribe(EventCompetitionUpdated, func(context.Context, Event) error { return errors.New("boom") })
		d.Subscribe(EventCompetitionUpdated, func(context.Context, Event) error {
			called = true
			return nil
		})

		require.NoError(t, d.Publish(context.Background(), NewCompetitionEvent(EventCompetitionUpdated, "c-2", "u-1", CompetitionChangedPayload{})))
		assert.True(t, called)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "event handler failed", logs.All()[0].Message)
	})
}

func TestEvent_SheetURLs(t *testing.T) {
	cases := map[string]struct {
		payload interface{}
		want    []string
	}{
		"created":   {CompetitionChangedPayload{SheetURL: "https://b"}, []string{"https://b"}},
		"changed":   {CompetitionChangedPayload{PreviousSheetURL: "https://a", SheetURL: "https://b"}, []string{"https://a", "https://b"}},
		"unchanged": {CompetitionChangedPayload{PreviousSheetURL: "https://a", SheetURL: "https://a"}, []string{"https://a"}},
		"none":      {CompetitionChangedPayload{}, nil},
		"foreign":   {"other", nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Event{Payload: tc.payload}.SheetURLs())
		})
	}
}
