package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateLink is returned by Insert when an application with the same
// link is already stored. Callers treat it as "already handled, skip".
var ErrDuplicateLink = errors.New("application link already recorded")

// ErrNotFound is returned when no application matches the given link.
var ErrNotFound = errors.New("application not found")

const applicationColumns = `id, link, status, company_name, role, location,
	COALESCE(salary_min, 0), description, cv_summary, created_at, updated_at`

// Exists reports whether an application with the given link is already stored.
func (s *Store) Exists(ctx context.Context, link string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE link = $1)`,
		link,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check link %s: %w", link, err)
	}
	return exists, nil
}

// Insert persists a new application and returns the stored record with the
// row id and timestamps populated. A uniqueness violation on link is surfaced
// as ErrDuplicateLink, never swallowed.
func (s *Store) Insert(ctx context.Context, app *Application) (*Application, error) {
	if app.Status == "" {
		app.Status = StatusSubmitted
	}

	stored := *app
	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications (link, status, company_name, role, location, salary_min, description, cv_summary)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8)
		 RETURNING id, created_at, updated_at`,
		app.Link, app.Status, app.CompanyName, app.Role, app.Location,
		app.SalaryMin, app.Description, app.CVSummary,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("link %s: %w", app.Link, ErrDuplicateLink)
		}
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return &stored, nil
}

// UpdateStatus sets the status of the application with the given link and
// returns the updated record, or ErrNotFound.
func (s *Store) UpdateStatus(ctx context.Context, link string, status Status) (*Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	var app Application
	err := s.pool.QueryRow(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE link = $2
		 RETURNING `+applicationColumns,
		status, link,
	).Scan(&app.ID, &app.Link, &app.Status, &app.CompanyName, &app.Role, &app.Location,
		&app.SalaryMin, &app.Description, &app.CVSummary, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("link %s: %w", link, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return &app, nil
}

// ListAll returns every stored application, oldest first.
func (s *Store) ListAll(ctx context.Context) ([]Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.Link, &app.Status, &app.CompanyName, &app.Role,
			&app.Location, &app.SalaryMin, &app.Description, &app.CVSummary,
			&app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// Count returns the number of stored applications.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// ClearAll deletes every stored application and returns the number removed.
// Maintenance operation, not part of the pipeline.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM applications`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear applications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
