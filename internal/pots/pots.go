// internal/pots/pots.go
//
// Pot rows: generation of fresh rows and validation of rows sent by clients.
//
// Responsibilities:
//   - Draw a row of pots, each uniform in [MinValue, MaxValue].
//   - Reject rows the move engine must never see (empty, too long,
//     negative values, totals that overflow int64).
//   - Reject pot counts that would produce such rows.
//
// Errors are sentinels so the HTTP layer can map them with errors.Is.

package pots

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	MinValue = 1
	MaxValue = 9
)

var (
	ErrEmptyRow    = errors.New("pot row is empty")
	ErrBadPotCount = errors.New("pot count must be positive")
	ErrTooManyPots = errors.New("too many pots")
	ErrNegativePot = errors.New("pot value is negative")
	ErrSumOverflow = errors.New("pot total overflows")
)

// Generate returns count pots drawn from r. It does not validate count;
// call CheckCount first.
func Generate(r *rand.Rand, count int) []int64 {
	out := make([]int64, count)
	for i := range out {
		out[i] = int64(MinValue + r.IntN(MaxValue-MinValue+1))
	}
	return out
}

// CheckCount validates a requested pot count against limit.
// A limit <= 0 disables the upper bound.
func CheckCount(count, limit int) error {
	if count <= 0 {
		return ErrBadPotCount
	}
	if limit > 0 && count > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPots, count, limit)
	}
	return nil
}

// Check validates a client-supplied row before it reaches the engine.
// A limit <= 0 disables the length bound.
func Check(row []int64, limit int) error {
	if len(row) == 0 {
		return ErrEmptyRow
	}
	if limit > 0 && len(row) > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPots, len(row), limit)
	}
	var total int64
	for i, p := range row {
		if p < 0 {
			return fmt.Errorf("%w: index %d", ErrNegativePot, i)
		}
		if p > math.MaxInt64-total {
			return fmt.Errorf("%w: at index %d", ErrSumOverflow, i)
		}
		total += p
	}
	return nil
}

// Total returns the sum of a row that already passed Check.
func Total(row []int64) int64 {
	var t int64
	for _, p := range row {
		t += p
	}
	return t
}
