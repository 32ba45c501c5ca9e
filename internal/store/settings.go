package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/foamquote/internal/estimate"
)

// EnsureBusinessSettings inserts the settings singleton with defaults when missing.
// It reports whether a row was inserted.
func (s *Store) EnsureBusinessSettings(ctx context.Context, defaults estimate.BusinessSettings) (bool, error) {
	return ensureBusinessSettings(ctx, s.db, defaults)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func ensureBusinessSettings(ctx context.Context, db execer, d estimate.BusinessSettings) (bool, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO business_settings (
			id,
			salaries,
			rent,
			rig_lease,
			truck_lease,
			insurance,
			marketing,
			software,
			other,
			expected_monthly_hours,
			target_net_margin
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, d.Salaries, d.Rent, d.RigLease, d.TruckLease, d.Insurance, d.Marketing, d.Software, d.Other, d.ExpectedMonthlyHours, d.TargetNetMargin)
	if err != nil {
		return false, fmt.Errorf("insert default business_settings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert default business_settings: %w", err)
	}
	return affected > 0, nil
}

// EnsureBusinessSettingsTx is EnsureBusinessSettings inside a caller's transaction.
func EnsureBusinessSettingsTx(ctx context.Context, tx *sql.Tx, defaults estimate.BusinessSettings) (bool, error) {
	return ensureBusinessSettings(ctx, tx, defaults)
}

// GetBusinessSettings reads the settings singleton, creating it with defaults if needed.
func (s *Store) GetBusinessSettings(ctx context.Context) (estimate.BusinessSettings, error) {
	if _, err := s.EnsureBusinessSettings(ctx, estimate.DefaultBusinessSettings()); err != nil {
		return estimate.BusinessSettings{}, err
	}

	var b estimate.BusinessSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT salaries, rent, rig_lease, truck_lease, insurance, marketing, software, other, expected_monthly_hours, target_net_margin
		FROM business_settings
		WHERE id = 1
	`).Scan(
		&b.Salaries,
		&b.Rent,
		&b.RigLease,
		&b.TruckLease,
		&b.Insurance,
		&b.Marketing,
		&b.Software,
		&b.Other,
		&b.ExpectedMonthlyHours,
		&b.TargetNetMargin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return estimate.BusinessSettings{}, fmt.Errorf("business_settings singleton not found")
		}
		return estimate.BusinessSettings{}, fmt.Errorf("query business_settings: %w", err)
	}
	return b, nil
}

// UpdateBusinessSettings overwrites the settings singleton.
func (s *Store) UpdateBusinessSettings(ctx context.Context, b estimate.BusinessSettings) error {
	if _, err := s.EnsureBusinessSettings(ctx, estimate.DefaultBusinessSettings()); err != nil {
		return err
	}

	b = estimate.ClampSettings(b)
	_, err := s.db.ExecContext(ctx, `
		UPDATE business_settings
		SET
			salaries = ?,
			rent = ?,
			rig_lease = ?,
			truck_lease = ?,
			insurance = ?,
			marketing = ?,
			software = ?,
			other = ?,
			expected_monthly_hours = ?,
			target_net_margin = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		b.Salaries,
		b.Rent,
		b.RigLease,
		b.TruckLease,
		b.Insurance,
		b.Marketing,
		b.Software,
		b.Other,
		b.ExpectedMonthlyHours,
		b.TargetNetMargin,
	)
	if err != nil {
		return fmt.Errorf("update business_settings: %w", err)
	}

	return nil
}
