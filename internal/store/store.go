// Package store persists recent estimates and the business settings in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/pricing"
)

// DefaultRecentLimit bounds ListRecent when no limit is given.
const DefaultRecentLimit = 10

// ErrNotFound is returned when no estimate has the requested id.
var ErrNotFound = errors.New("estimate not found")

// Store reads and writes estimates.
type Store struct {
	db *sql.DB
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Summary is the list view of a saved estimate.
type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Customer      string  `json:"customer"`
	CustomerCost  float64 `json:"customerCost"`
	TrueNetProfit float64 `json:"trueNetProfit"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// SaveEstimate inserts or replaces an estimate. A missing document ID is assigned.
func (s *Store) SaveEstimate(ctx context.Context, doc document.Document, report pricing.Report) (Summary, error) {
	if strings.TrimSpace(doc.ID) == "" {
		doc.ID = estimate.NewID()
	}
	doc.SavedAt = time.Now().UTC().Format(time.RFC3339)

	docJSON, err := document.Encode(doc)
	if err != nil {
		return Summary{}, err
	}
	totalsJSON, err := json.Marshal(report.Estimate)
	if err != nil {
		return Summary{}, fmt.Errorf("encode estimate totals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO estimates (id, name, customer, notes, document_json, totals_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			customer = excluded.customer,
			notes = excluded.notes,
			document_json = excluded.document_json,
			totals_json = excluded.totals_json,
			updated_at = CURRENT_TIMESTAMP
	`, doc.ID, doc.Estimate.Name, doc.Estimate.Customer, doc.Estimate.Notes, string(docJSON), string(totalsJSON))
	if err != nil {
		return Summary{}, fmt.Errorf("upsert estimate: %w", err)
	}

	return s.summary(ctx, doc.ID)
}

func (s *Store) summary(ctx context.Context, id string) (Summary, error) {
	var item Summary
	var totalsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, customer, totals_json, created_at, updated_at
		FROM estimates
		WHERE id = ?
	`, id).Scan(&item.ID, &item.Name, &item.Customer, &totalsJSON, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, ErrNotFound
	}
	if err != nil {
		return Summary{}, fmt.Errorf("query estimate summary: %w", err)
	}
	item.CustomerCost, item.TrueNetProfit = extractTotalsFromJSON(totalsJSON)
	return item, nil
}

// GetEstimate loads and migrates a saved document.
func (s *Store) GetEstimate(ctx context.Context, id string) (document.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT document_json FROM estimates WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return document.Document{}, ErrNotFound
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("query estimate: %w", err)
	}

	doc, err := document.Decode([]byte(raw))
	if err != nil {
		return document.Document{}, fmt.Errorf("decode stored estimate %s: %w", id, err)
	}
	doc.ID = id
	return doc, nil
}

// ListRecent returns the most recently saved estimates, optionally filtered by a
// substring of name, customer or notes.
func (s *Store) ListRecent(ctx context.Context, query string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	query = strings.TrimSpace(query)
	search := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, customer, totals_json, created_at, updated_at
		FROM estimates
		WHERE (? = '' OR name LIKE ? OR customer LIKE ? OR notes LIKE ?)
		ORDER BY datetime(updated_at) DESC, rowid DESC
		LIMIT ?
	`, query, search, search, search, limit)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	items := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		var totalsJSON string
		if err := rows.Scan(&item.ID, &item.Name, &item.Customer, &totalsJSON, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		item.CustomerCost, item.TrueNetProfit = extractTotalsFromJSON(totalsJSON)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return items, nil
}

// DeleteEstimate removes a saved estimate.
func (s *Store) DeleteEstimate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func extractTotalsFromJSON(totalsJSON string) (customerCost, trueNetProfit float64) {
	var values map[string]any
	if err := json.Unmarshal([]byte(totalsJSON), &values); err != nil {
		return 0, 0
	}

	number := func(key string) float64 {
		if v, ok := values[key].(float64); ok {
			return v
		}
		return 0
	}
	return number("customerCost"), number("trueNetProfit")
}
