package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"transport-route-service/internal/domain"
)

// PostgresStore keeps the address book in a facilities table, for
// deployments where several replicas share one directory.
type PostgresStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, now: time.Now}
}

// InitSchema creates the facilities table when missing.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("facility store: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS facilities (
		id UUID PRIMARY KEY,
		facility_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		city TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create facilities table: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupByID(ctx context.Context, id string) (domain.Facility, bool, error) {
	if s.DB == nil {
		return domain.Facility{}, false, errors.New("facility store: db is nil")
	}

	q := `
	SELECT id, facility_id, name, address, postal_code, city, created_at, updated_at
	FROM facilities
	WHERE facility_id = $1;
	`

	var f domain.Facility
	err := s.DB.QueryRowContext(ctx, q, strings.TrimSpace(id)).Scan(
		&f.ID, &f.FacilityID, &f.Name, &f.Address, &f.PostalCode, &f.City,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Facility{}, false, nil
	}
	if err != nil {
		return domain.Facility{}, false, fmt.Errorf("lookup facility %q: %w", id, err)
	}
	return f, true, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Facility, error) {
	if s.DB == nil {
		return nil, errors.New("facility store: db is nil")
	}

	q := `
	SELECT id, facility_id, name, address, postal_code, city, created_at, updated_at
	FROM facilities
	ORDER BY facility_id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var out []domain.Facility
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(
			&f.ID, &f.FacilityID, &f.Name, &f.Address, &f.PostalCode, &f.City,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list facilities: scan row: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, f domain.Facility) (domain.Facility, error) {
	if s.DB == nil {
		return domain.Facility{}, errors.New("facility store: db is nil")
	}

	if _, ok, err := s.LookupByID(ctx, f.FacilityID); err != nil {
		return domain.Facility{}, err
	} else if ok {
		return domain.Facility{}, fmt.Errorf("%w: %q", ErrDuplicateFacility, f.FacilityID)
	}

	now := s.now()
	f.ID = uuid.NewString()
	f.CreatedAt = now
	f.UpdatedAt = now

	q := `
	INSERT INTO facilities (id, facility_id, name, address, postal_code, city, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		f.ID, f.FacilityID, f.Name, f.Address, f.PostalCode, f.City, f.CreatedAt, f.UpdatedAt,
	); err != nil {
		return domain.Facility{}, fmt.Errorf("insert facility %q: %w", f.FacilityID, err)
	}
	return f, nil
}

func (s *PostgresStore) Update(ctx context.Context, f domain.Facility) (domain.Facility, error) {
	if s.DB == nil {
		return domain.Facility{}, errors.New("facility store: db is nil")
	}

	f.UpdatedAt = s.now()

	q := `
	UPDATE facilities
	SET name = $2, address = $3, postal_code = $4, city = $5, updated_at = $6
	WHERE facility_id = $1
	RETURNING id, created_at;
	`
	err := s.DB.QueryRowContext(ctx, q,
		f.FacilityID, f.Name, f.Address, f.PostalCode, f.City, f.UpdatedAt,
	).Scan(&f.ID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Facility{}, fmt.Errorf("%w: %q", ErrFacilityNotFound, f.FacilityID)
	}
	if err != nil {
		return domain.Facility{}, fmt.Errorf("update facility %q: %w", f.FacilityID, err)
	}
	return f, nil
}

func (s *PostgresStore) Delete(ctx context.Context, facilityID string) error {
	if s.DB == nil {
		return errors.New("facility store: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM facilities WHERE facility_id = $1;`, facilityID)
	if err != nil {
		return fmt.Errorf("delete facility %q: %w", facilityID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrFacilityNotFound, facilityID)
	}
	return nil
}
