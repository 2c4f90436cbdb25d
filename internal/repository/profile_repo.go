package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saju-mbti/internal/domain"
)

// ProfileRepository define el contrato de persistencia para perfiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	Delete(ctx context.Context, id string) error
}

// PgProfileRepository implementa ProfileRepository usando pgxpool.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (
			id, display_name, mbti_type, birth_date, timezone,
			birth_stem, birth_branch, birth_element, birth_polarity,
			year_stem, year_branch, year_animal, created_at
		)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.DisplayName,
		profile.MBTIType,
		profile.BirthDate,
		profile.Timezone,
		profile.BirthStem,
		profile.BirthBranch,
		profile.BirthElement,
		profile.BirthPolarity,
		profile.YearStem,
		profile.YearBranch,
		profile.YearAnimal,
		profile.CreatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `
		SELECT id, display_name, mbti_type, birth_date::text, timezone,
			birth_stem, birth_branch, birth_element, birth_polarity,
			year_stem, year_branch, year_animal, created_at
		FROM profiles
		WHERE id = $1
	`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.DisplayName,
		&p.MBTIType,
		&p.BirthDate,
		&p.Timezone,
		&p.BirthStem,
		&p.BirthBranch,
		&p.BirthElement,
		&p.BirthPolarity,
		&p.YearStem,
		&p.YearBranch,
		&p.YearAnimal,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	return p, err
}

// Delete borra el perfil (y sus reflexiones en cascada).
// Devuelve pgx.ErrNoRows si no existia.
func (r *PgProfileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
