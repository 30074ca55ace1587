package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStaffRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStaffRepository(db *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) Save(ctx context.Context, staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	query := `
		INSERT INTO staff (id, name, password, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET password = EXCLUDED.password,
		              role = EXCLUDED.role
	`
	_, err := r.db.Exec(ctx, query,
		staff.ID, staff.Name, staff.Password, staff.Role,
	)
	return err
}

func (r *PostgresStaffRepository) FindByName(ctx context.Context, name string) (*Staff, error) {
	query := `
		SELECT id, name, password, role
		FROM staff WHERE name=$1
	`
	staff := &Staff{}
	err := r.db.QueryRow(ctx, query, name).Scan(&staff.ID, &staff.Name, &staff.Password, &staff.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}
