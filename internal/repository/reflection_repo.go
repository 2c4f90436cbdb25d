package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saju-mbti/internal/domain"
)

type ReflectionRepository interface {
	Upsert(ctx context.Context, reflection domain.Reflection) (string, error)
	ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Reflection, error)
	Delete(ctx context.Context, profileID, date string) error
}

type PgReflectionRepository struct {
	pool *pgxpool.Pool
}

func NewPgReflectionRepository(pool *pgxpool.Pool) *PgReflectionRepository {
	return &PgReflectionRepository{pool: pool}
}

// Upsert guarda una reflexion por (perfil, dia); si ya existe la reemplaza y
// conserva su id. Devuelve el id guardado.
func (r *PgReflectionRepository) Upsert(ctx context.Context, reflection domain.Reflection) (string, error) {
	const query = `
		INSERT INTO reflections (
			id, profile_id, day, note, day_description, main_message,
			energy_level, luck, element, polarity, best_for, watch_out_for, saved_at
		)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (profile_id, day)
		DO UPDATE SET
			note = EXCLUDED.note,
			day_description = EXCLUDED.day_description,
			main_message = EXCLUDED.main_message,
			energy_level = EXCLUDED.energy_level,
			luck = EXCLUDED.luck,
			element = EXCLUDED.element,
			polarity = EXCLUDED.polarity,
			best_for = EXCLUDED.best_for,
			watch_out_for = EXCLUDED.watch_out_for,
			saved_at = EXCLUDED.saved_at
		RETURNING id::text
	`
	var id string
	err := r.pool.QueryRow(ctx, query,
		reflection.ID,
		reflection.ProfileID,
		reflection.Date,
		reflection.Note,
		reflection.DayDescription,
		reflection.MainMessage,
		reflection.EnergyLevel,
		reflection.Luck,
		reflection.Element,
		reflection.Polarity,
		reflection.BestFor,
		reflection.WatchOutFor,
		reflection.SavedAt,
	).Scan(&id)
	return id, err
}

// ListByProfile devuelve las reflexiones mas recientes primero.
func (r *PgReflectionRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Reflection, error) {
	const query = `
		SELECT id, profile_id, day::text, note, day_description, main_message,
			energy_level, luck, element, polarity, best_for, watch_out_for, saved_at
		FROM reflections
		WHERE profile_id = $1
		ORDER BY day DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reflection
	for rows.Next() {
		var ref domain.Reflection
		if err := rows.Scan(
			&ref.ID,
			&ref.ProfileID,
			&ref.Date,
			&ref.Note,
			&ref.DayDescription,
			&ref.MainMessage,
			&ref.EnergyLevel,
			&ref.Luck,
			&ref.Element,
			&ref.Polarity,
			&ref.BestFor,
			&ref.WatchOutFor,
			&ref.SavedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *PgReflectionRepository) Delete(ctx context.Context, profileID, date string) error {
	const query = `DELETE FROM reflections WHERE profile_id = $1 AND day = $2::date`
	tag, err := r.pool.Exec(ctx, query, profileID, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
