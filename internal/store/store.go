// internal/store/store.go
//
// Move journal: an append-only record of engine decisions.
// The journal is write-mostly audit data; the engine never reads it.

package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/amardeep033/pots-of-gold/internal/game"
)

// Decision is one answered /api/optimal-move request.
type Decision struct {
	ID          string     `json:"id"`
	Fingerprint string     `json:"fingerprint"` // identical rows share it
	Pots        []int64    `json:"pots"`
	Level       game.Level `json:"level"`
	ChosenIndex int        `json:"chosenIndex"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Store defines the persistence interface for the journal.
// Implementations may be backed by memory (NewMemoryStore) or SQLite (NewSQLiteStore).
type Store interface {
	// Record appends a decision.
	Record(ctx context.Context, d Decision) error

	// Recent returns up to limit decisions, newest first.
	Recent(ctx context.Context, limit int) ([]Decision, error)
}

// NewDecision fills in ID, Fingerprint and CreatedAt.
func NewDecision(row []int64, level game.Level, chosen int) Decision {
	return Decision{
		ID:          uuid.NewString(),
		Fingerprint: Fingerprint(row),
		Pots:        row,
		Level:       level,
		ChosenIndex: chosen,
		CreatedAt:   time.Now().UTC(),
	}
}

// Fingerprint is a short blake2b digest of the row's JSON form.
func Fingerprint(row []int64) string {
	b, _ := json.Marshal(row)
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
