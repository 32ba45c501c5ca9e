package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/pricing"
	"github.com/Simplici0/foamquote/internal/store"
)

const (
	demoEstimateID   = "00000000-0000-4000-8000-000000000001"
	demoEstimateName = "Demo: attic retrofit"
)

// Config contains the values required by startup seed.
type Config struct {
	Settings estimate.BusinessSettings
	// Demo adds a sample estimate so a fresh development database is not empty.
	Demo bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(ctx, tx, cfg.Settings, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if cfg.Demo {
		if err := ensureDemoEstimate(ctx, tx, cfg.Settings, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, settings estimate.BusinessSettings, stats *Stats) error {
	inserted, err := store.EnsureBusinessSettingsTx(ctx, tx, estimate.ClampSettings(settings))
	if err != nil {
		return err
	}
	if inserted {
		stats.Inserts++
	}
	return nil
}

func ensureDemoEstimate(ctx context.Context, tx *sql.Tx, settings estimate.BusinessSettings, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM estimates WHERE id = ? LIMIT 1)`, demoEstimateID).Scan(&exists); err != nil {
		return fmt.Errorf("check demo estimate existence: %w", err)
	}
	if exists {
		return nil
	}

	state := demoState(settings)
	raw, err := document.Encode(document.FromState(demoEstimateID, state))
	if err != nil {
		return fmt.Errorf("encode demo estimate: %w", err)
	}
	totals := pricing.Calculate(state).Estimate

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO estimates (id, name, customer, notes, document_json, totals_json)
		VALUES (?, ?, ?, ?, ?, json_object('customerCost', ?, 'trueNetProfit', ?))
	`, demoEstimateID, state.Metadata.Name, state.Metadata.Customer, state.Metadata.Notes, string(raw), totals.CustomerCost, totals.TrueNetProfit); err != nil {
		return fmt.Errorf("insert demo estimate: %w", err)
	}
	stats.Inserts++
	return nil
}

func demoState(settings estimate.BusinessSettings) estimate.State {
	s := estimate.NewState()
	s.Metadata = estimate.Metadata{Name: demoEstimateName, Customer: "Sample Customer", Notes: "seeded"}
	s.Settings = estimate.ClampSettings(settings)
	s.Global = estimate.GlobalInputs{LaborHours: 12, ManualLaborRate: 35, LaborMarkup: 60, TravelDistance: 40, TravelRate: 0.65, WasteDisposal: 50}

	roof := &s.Areas[0]
	roof.Name = "Roof deck"
	roof.AreaType = estimate.AreaRoofDeck
	roof.Length, roof.Width = 40, 30

	s = estimate.AddArea(s, estimate.AreaExteriorWalls)
	walls := &s.Areas[1]
	walls.Name = "Exterior walls"
	walls.AreaSqFt = 1200
	walls.FoamApplications[0] = estimate.NewFoamApplication(estimate.FoamClosed)
	return s
}
