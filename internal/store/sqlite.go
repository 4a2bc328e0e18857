package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amardeep033/pots-of-gold/internal/game"
)

// sqliteStore keeps the journal in the move_journal table (see assets/migrations).
type sqliteStore struct{ db *sql.DB }

// NewSQLiteStore wraps an opened, migrated database.
func NewSQLiteStore(db *sql.DB) Store { return &sqliteStore{db: db} }

func (s *sqliteStore) Record(ctx context.Context, d Decision) error {
	row, err := json.Marshal(d.Pots)
	if err != nil {
		return fmt.Errorf("encode pots: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO move_journal (id, fingerprint, pots, pot_count, level, chosen_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Fingerprint, string(row), len(d.Pots), d.Level.String(), d.ChosenIndex,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent orders by insertion (rowid) so entries sharing a timestamp stay in order.
func (s *sqliteStore) Recent(ctx context.Context, limit int) ([]Decision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fingerprint, pots, level, chosen_index, created_at
		FROM move_journal
		ORDER BY rowid DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Decision, 0, limit)
	for rows.Next() {
		var (
			d       Decision
			row     string
			level   string
			created string
		)
		if err := rows.Scan(&d.ID, &d.Fingerprint, &row, &level, &d.ChosenIndex, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(row), &d.Pots); err != nil {
			return nil, fmt.Errorf("decode pots of %s: %w", d.ID, err)
		}
		d.Level = game.ParseLevel(level)
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, d)
	}
	return out, rows.Err()
}
