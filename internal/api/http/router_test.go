package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/competition-service/internal/api/http"
	"github.com/spec-kit/competition-service/internal/api/http/handlers"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/events"
	"github.com/spec-kit/competition-service/internal/feed"
	"github.com/spec-kit/competition-service/internal/observability"
	"github.com/spec-kit/competition-service/internal/repository"
	"github.com/spec-kit/competition-service/internal/roster"
	"github.com/spec-kit/competition-service/internal/service"
)

const (
	withSheetID    = "aaaaaaaa-0000-0000-0000-000000000001"
	withoutSheetID = "aaaaaaaa-0000-0000-0000-000000000002"
	brokenSheetID  = "aaaaaaaa-0000-0000-0000-000000000003"
)

type competitionStore struct {
	mu    sync.Mutex
	items map[string]domain.Competition
}

func (s *competitionStore) Create(_ context.Context, c *domain.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = "bbbbbbbb-0000-0000-0000-000000000001"
	s.items[c.ID] = *c
	return nil
}

func (s *competitionStore) Update(_ context.Context, c *domain.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.items[c.ID] = *c
	return nil
}

func (s *competitionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

func (s *competitionStore) GetByID(_ context.Context, id string) (*domain.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (s *competitionStore) List(_ context.Context, f repository.CompetitionFilter) ([]domain.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Competition{}
	for _, id := range []string{withSheetID, withoutSheetID, brokenSheetID} {
		if c, ok := s.items[id]; ok && (f.League == "" || c.League == f.League) {
			out = append(out, c)
		}
	}
	return out, nil
}

type gymStore struct{}

func (gymStore) Create(_ context.Context, g *domain.Gym) error {
	g.ID = "cccccccc-0000-0000-0000-000000000001"
	return nil
}
func (gymStore) GetByID(context.Context, string) (*domain.Gym, error) { return nil, pgx.ErrNoRows }
func (gymStore) List(context.Context) ([]domain.Gym, error) {
	return []domain.Gym{{ID: "g-1", Name: "Apex"}}, nil
}

type userStore struct {
	users map[string]*domain.User
}

func (s *userStore) Create(_ context.Context, u *domain.User) error {
	u.ID = "user-" + u.Email
	s.users[u.ID] = u
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app    *fiber.App
	tokens *auth.TokenManager
	comps  *competitionStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sheet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, "Last Updated: today,,\nName,Division\nJane,9U Female\nTom,Male 10-12\nAnn,Female Pro employee\n")
	}))
	t.Cleanup(sheet.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	comps := &competitionStore{items: map[string]domain.Competition{
		withSheetID:    {ID: withSheetID, Name: "Spring Open", League: domain.LeagueWNL, StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), AthleteSheetURL: sheet.URL + "/sheet"},
		withoutSheetID: {ID: withoutSheetID, Name: "Local Jam", League: domain.LeagueNCNS, StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		brokenSheetID:  {ID: brokenSheetID, Name: "Broken", StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), AthleteSheetURL: sheet.URL + "/broken"},
	}}
	users := &userStore{users: map[string]*domain.User{
		"admin": {ID: "admin", Email: "admin@example.com", IsAdmin: true},
		"fan":   {ID: "fan", Email: "fan@example.com"},
	}}

	authCfg := config.AuthConfig{JWTSecret: "secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, users)
	fetcher := feed.NewFetcher(config.FeedConfig{FetchTimeoutSeconds: 2}, nil, logger, metrics)
	dispatcher := events.NewInMemoryDispatcher(logger)

	competitionService := service.NewCompetitionService(service.CompetitionDependencies{
		CompetitionRepo: comps,
		GymRepo:         gymStore{},
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	rosterService := service.NewRosterService(service.RosterDependencies{
		CompetitionRepo: comps,
		Feeds:           fetcher,
		Options:         roster.Options{},
		Metrics:         metrics,
		Logger:          logger,
	})

	app := httptransport.NewApp(config.AppConfig{Name: "test", RequestTimeoutSeconds: 5}, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", okPinger{}, okPinger{}),
		Auth:           handlers.NewAuthHandler(authService),
		Competitions:   handlers.NewCompetitionsHandler(competitionService, rosterService),
		Catalog:        handlers.NewCatalogHandler(service.NewGymService(gymStore{})),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
		Metrics:        metrics,
	})
	return &testServer{app: app, tokens: authService.TokenManager(), comps: comps}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, 5000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func (s *testServer) token(t *testing.T, userID string, admin bool) string {
	t.Helper()
	token, _, err := s.tokens.GenerateToken(userID, admin)
	require.NoError(t, err)
	return token
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestRoster(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Should return grouped athletes", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/competitions/"+withSheetID+"/athletes", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, withSheetID, data["competition_id"])
		assert.Equal(t, "today", data["updated_at"])
		assert.EqualValues(t, 3, data["total"])

		divisions := data["divisions"].([]any)
		require.Len(t, divisions, 3)
		var names []string
		for _, d := range divisions {
			names = append(names, d.(map[string]any)["division"].(string))
		}
		assert.Equal(t, []string{"Female 9U", "Male 10-12", "Female Pro"}, names)
		pro := divisions[2].(map[string]any)["athletes"].([]any)[0].(map[string]any)
		assert.Equal(t, true, pro["special"])
		assert.Equal(t, "Female Pro employee", pro["raw_division"])
	})

	t.Run("Should filter by tag", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/competitions/"+withSheetID+"/athletes?tag=employee", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 1, body["data"].(map[string]any)["total"])
	})

	cases := []struct {
		name   string
		id     string
		status int
		code   string
	}{
		{name: "no sheet", id: withoutSheetID, status: http.StatusNotFound, code: "ROSTER_UNAVAILABLE"},
		{name: "upstream failure", id: brokenSheetID, status: http.StatusBadGateway, code: "UPSTREAM_FETCH_FAILED"},
		{name: "unknown competition", id: "aaaaaaaa-0000-0000-0000-00000000ffff", status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "malformed id", id: "not-a-uuid", status: http.StatusNotFound, code: "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run("Should report "+tc.name, func(t *testing.T) {
			resp, body := srv.do(t, http.MethodGet, "/competitions/"+tc.id+"/athletes", "", "")
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(body))
		})
	}
}

func TestCompetitionRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Should list competitions", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/competitions?when=all", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		items := body["data"].(map[string]any)["items"].([]any)
		assert.Len(t, items, 3)
		first := items[0].(map[string]any)
		assert.Equal(t, "May 1, 2024", first["date_range"])
		assert.Equal(t, true, first["has_roster"])
		assert.NotContains(t, first, "athlete_sheet_url")
	})

	t.Run("Should reject bad listing filters", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/competitions?when=someday", "", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
	})

	t.Run("Should show the sheet link to admins only", func(t *testing.T) {
		_, anon := srv.do(t, http.MethodGet, "/competitions/"+withSheetID, "", "")
		assert.NotContains(t, anon["data"], "athlete_sheet_url")

		_, admin := srv.do(t, http.MethodGet, "/competitions/"+withSheetID, srv.token(t, "admin", true), "")
		assert.Contains(t, admin["data"], "athlete_sheet_url")
	})

	t.Run("Should restrict writes to admins", func(t *testing.T) {
		payload := `{"name":"Fall Classic","start_date":"2024-10-01","league":"WNL"}`

		resp, body := srv.do(t, http.MethodPost, "/competitions", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", errorCode(body))

		resp, body = srv.do(t, http.MethodPost, "/competitions", srv.token(t, "fan", false), payload)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(body))

		resp, body = srv.do(t, http.MethodPost, "/competitions", srv.token(t, "admin", true), payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := body["data"].(map[string]any)
		assert.Equal(t, "Fall Classic", created["name"])

		resp, _ = srv.do(t, http.MethodDelete, "/competitions/"+created["id"].(string), srv.token(t, "admin", true), "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Should validate writes", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPut, "/competitions/"+withSheetID, srv.token(t, "admin", true),
			`{"name":"","start_date":"2024-13-01"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		details := body["error"].(map[string]any)["details"].(map[string]any)
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "start_date")
	})

	t.Run("Should render the calendar", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/calendar?league=WNL", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		evs := body["data"].([]any)
		require.Len(t, evs, 1)
		ev := evs[0].(map[string]any)
		assert.Equal(t, "2024-05-02", ev["end"])
		assert.Equal(t, "#000000", ev["color"])
	})
}

func TestCatalogAndOps(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Should fall back for undocumented leagues", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/leagues/Barn", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, false, data["found"])
		assert.Equal(t, service.LeagueNotFoundText, data["description"])
		assert.Equal(t, "#888", data["color"])
	})

	t.Run("Should list gyms", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/gyms", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"].([]any), 1)
	})

	t.Run("Should answer probes", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/health/ready", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("Should return JSON for unknown routes", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodGet, "/nope", "", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(body))
		assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))
	})

	t.Run("Should expose metrics", func(t *testing.T) {
		srv.do(t, http.MethodGet, "/gyms", "", "")
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		resp, err := srv.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "http_requests_total")
	})

	t.Run("Should register and read the current account", func(t *testing.T) {
		resp, body := srv.do(t, http.MethodPost, "/auth/register", "", `{"email":"new@example.com","password":"long enough"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		token := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

		resp, body = srv.do(t, http.MethodGet, "/auth/me", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "new@example.com", body["data"].(map[string]any)["email"])
	})
}
