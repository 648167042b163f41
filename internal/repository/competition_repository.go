package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/competition-service/internal/domain"
)

// Window selects competitions relative to a reference day.
type Window string

const (
	WindowAll      Window = ""
	WindowUpcoming Window = "upcoming"
	WindowPast     Window = "past"
)

// CompetitionFilter captures listing parameters.
type CompetitionFilter struct {
	Search     string
	League     string
	Window     Window
	Today      time.Time
	WithRoster bool
	Limit      int
	Offset     int
}

// CompetitionRepository encapsulates competition persistence.
type CompetitionRepository interface {
	Create(ctx context.Context, comp *domain.Competition) error
	Update(ctx context.Context, comp *domain.Competition) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Competition, error)
	List(ctx context.Context, filter CompetitionFilter) ([]domain.Competition, error)
}

type competitionRepository struct {
	db DB
}

// NewCompetitionRepository instantiates repository.
func NewCompetitionRepository(db DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

const competitionColumns = `c.id::text, c.name, c.start_date, c.end_date, c.gym_id::text, c.league, c.type, c.format,
               c.registration_url, c.results_url, c.coach_attending, c.athlete_sheet_url,
               c.created_at, c.updated_at,
               COALESCE(g.name, ''), COALESCE(g.url, ''), COALESCE(g.location, ''), COALESCE(g.google_map_url, '')
        FROM competitions c LEFT JOIN gyms g ON g.id = c.gym_id`

func (r *competitionRepository) Create(ctx context.Context, comp *domain.Competition) error {
	const query = `
        INSERT INTO competitions (name, start_date, end_date, gym_id, league, type, format,
            registration_url, results_url, coach_attending, athlete_sheet_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id::text, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		comp.Name,
		comp.StartDate,
		comp.EndDate,
		comp.GymID,
		comp.League,
		comp.Type,
		comp.Format,
		comp.RegistrationURL,
		comp.ResultsURL,
		coachAttendingArg(comp.CoachAttending),
		comp.AthleteSheetURL,
	).Scan(&comp.ID, &comp.CreatedAt, &comp.UpdatedAt)
}

func (r *competitionRepository) Update(ctx context.Context, comp *domain.Competition) error {
	const query = `
        UPDATE competitions SET name=$1, start_date=$2, end_date=$3, gym_id=$4, league=$5, type=$6,
            format=$7, registration_url=$8, results_url=$9, coach_attending=$10,
            athlete_sheet_url=$11, updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.db.Exec(ctx, query,
		comp.Name,
		comp.StartDate,
		comp.EndDate,
		comp.GymID,
		comp.League,
		comp.Type,
		comp.Format,
		comp.RegistrationURL,
		comp.ResultsURL,
		coachAttendingArg(comp.CoachAttending),
		comp.AthleteSheetURL,
		comp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *competitionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM competitions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (*domain.Competition, error) {
	query := `SELECT ` + competitionColumns + ` WHERE c.id=$1`
	comp, err := scanCompetition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func (r *competitionRepository) List(ctx context.Context, filter CompetitionFilter) ([]domain.Competition, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(c.name) LIKE %s OR LOWER(g.location) LIKE %s OR LOWER(c.league) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	if filter.League != "" {
		args = append(args, filter.League)
		clauses = append(clauses, fmt.Sprintf("c.league=$%d", len(args)))
	}
	if filter.WithRoster {
		clauses = append(clauses, "c.athlete_sheet_url <> ''")
	}

	order := "c.start_date ASC, c.name ASC"
	switch filter.Window {
	case WindowUpcoming:
		args = append(args, filter.Today)
		clauses = append(clauses, fmt.Sprintf("COALESCE(c.end_date, c.start_date) >= $%d", len(args)))
	case WindowPast:
		args = append(args, filter.Today)
		clauses = append(clauses, fmt.Sprintf("COALESCE(c.end_date, c.start_date) < $%d", len(args)))
		order = "c.start_date DESC, c.name ASC"
	}

	query := fmt.Sprintf(`SELECT %s WHERE %s ORDER BY %s`, competitionColumns, strings.Join(clauses, " AND "), order)
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Competition{}
	for rows.Next() {
		comp, err := scanCompetition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *comp)
	}
	return result, rows.Err()
}

func scanCompetition(row pgx.Row) (*domain.Competition, error) {
	var (
		comp  domain.Competition
		coach *string
		gym   domain.Gym
	)
	if err := row.Scan(
		&comp.ID,
		&comp.Name,
		&comp.StartDate,
		&comp.EndDate,
		&comp.GymID,
		&comp.League,
		&comp.Type,
		&comp.Format,
		&comp.RegistrationURL,
		&comp.ResultsURL,
		&coach,
		&comp.AthleteSheetURL,
		&comp.CreatedAt,
		&comp.UpdatedAt,
		&gym.Name,
		&gym.URL,
		&gym.Location,
		&gym.GoogleMapURL,
	); err != nil {
		return nil, err
	}
	if coach != nil {
		ca := domain.CoachAttending(*coach)
		comp.CoachAttending = &ca
	}
	if comp.GymID != nil {
		gym.ID = *comp.GymID
		comp.Gym = &gym
	}
	return &comp, nil
}

func coachAttendingArg(ca *domain.CoachAttending) *string {
	if ca == nil {
		return nil
	}
	s := string(*ca)
	return &s
}
