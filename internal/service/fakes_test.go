package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/repository"
)

type memCompetitions struct {
	mu         sync.Mutex
	items      map[string]*domain.Competition
	seq        int
	lastFilter repository.CompetitionFilter
	listResult []domain.Competition
}

func newMemCompetitions(comps ...domain.Competition) *memCompetitions {
	m := &memCompetitions{items: map[string]*domain.Competition{}}
	for i := range comps {
		c := comps[i]
		m.items[c.ID] = &c
	}
	return m
}

func (m *memCompetitions) Create(_ context.Context, comp *domain.Competition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	comp.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	c := *comp
	m.items[c.ID] = &c
	return nil
}

func (m *memCompetitions) Update(_ context.Context, comp *domain.Competition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[comp.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *comp
	m.items[c.ID] = &c
	return nil
}

func (m *memCompetitions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memCompetitions) GetByID(_ context.Context, id string) (*domain.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *memCompetitions) List(_ context.Context, filter repository.CompetitionFilter) ([]domain.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	if m.listResult != nil {
		return m.listResult, nil
	}
	var out []domain.Competition
	for _, c := range m.items {
		if filter.League != "" && c.League != filter.League {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

type memGyms struct {
	items map[string]*domain.Gym
}

func (m *memGyms) Create(_ context.Context, gym *domain.Gym) error {
	gym.ID = "11111111-1111-1111-1111-111111111111"
	if m.items == nil {
		m.items = map[string]*domain.Gym{}
	}
	g := *gym
	m.items[g.ID] = &g
	return nil
}

func (m *memGyms) GetByID(_ context.Context, id string) (*domain.Gym, error) {
	if g, ok := m.items[id]; ok {
		return g, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memGyms) List(context.Context) ([]domain.Gym, error) {
	var out []domain.Gym
	for _, g := range m.items {
		out = append(out, *g)
	}
	return out, nil
}

type memUsers struct {
	byEmail map[string]*domain.User
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	if m.byEmail == nil {
		m.byEmail = map[string]*domain.User{}
	}
	user.ID = "u-" + user.Email
	u := *user
	m.byEmail[strings.ToLower(user.Email)] = &u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.published = append(d.published, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type stubFeeds struct {
	body  string
	err   error
	calls []string
}

func (s *stubFeeds) Fetch(_ context.Context, url string) (string, error) {
	s.calls = append(s.calls, url)
	return s.body, s.err
}
