package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/competition-service/internal/domain"
)

// GymRepository manages gym persistence.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id string) (*domain.Gym, error)
	List(ctx context.Context) ([]domain.Gym, error)
}

type gymRepository struct {
	db DB
}

// NewGymRepository builds the repository.
func NewGymRepository(db DB) GymRepository {
	return &gymRepository{db: db}
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	const query = `
        INSERT INTO gyms (name, url, location, google_map_url)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		gym.Name,
		gym.URL,
		gym.Location,
		gym.GoogleMapURL,
	).Scan(&gym.ID, &gym.CreatedAt, &gym.UpdatedAt)
}

func (r *gymRepository) GetByID(ctx context.Context, id string) (*domain.Gym, error) {
	const query = `
        SELECT id, name, url, location, google_map_url, created_at, updated_at
        FROM gyms WHERE id=$1`
	var gym domain.Gym
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&gym.ID,
		&gym.Name,
		&gym.URL,
		&gym.Location,
		&gym.GoogleMapURL,
		&gym.CreatedAt,
		&gym.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *gymRepository) List(ctx context.Context) ([]domain.Gym, error) {
	const query = `
        SELECT id, name, url, location, google_map_url, created_at, updated_at
        FROM gyms ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGyms(rows)
}

func scanGyms(rows pgx.Rows) ([]domain.Gym, error) {
	result := []domain.Gym{}
	for rows.Next() {
		var gym domain.Gym
		if err := rows.Scan(&gym.ID, &gym.Name, &gym.URL, &gym.Location, &gym.GoogleMapURL, &gym.CreatedAt, &gym.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, gym)
	}
	return result, rows.Err()
}
