package daily

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/amardeep033/pots-of-gold/internal/pots"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives two PCG seed words from blake2b(key=salt, DateKey(date)).
// The salt is hashed first so any length is accepted as a key.
func Seed(date time.Time, salt string) (uint64, uint64) {
	key := blake2b.Sum256([]byte(salt))
	h, _ := blake2b.New256(key[:]) // only fails for keys over 64 bytes
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Row returns the pot row of the day. Same date, salt and count give the same row.
func Row(date time.Time, salt string, count int) []int64 {
	s1, s2 := Seed(date, salt)
	return pots.Generate(rand.New(rand.NewPCG(s1, s2)), count)
}
