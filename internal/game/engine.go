// internal/game/engine.go
//
// Move engine for the two-player pot-picking game.
// Responsibilities:
//   - Build the interval table of best guaranteed totals for every sub-row.
//   - Turn the table into a "good" and a "bad" end for the current mover.
//   - Apply the difficulty policy (Easy/Medium/Hard) to pick one of them.
//
// Notes:
//   - Every call owns its table and prefix sums; nothing is shared.
//   - Callers validate rows first (non-empty, non-negative, no overflow).
//     See the pots package.
package game

import "math/rand/v2"

// OptimalMove returns the index of the end the mover should take:
// 0 for the leftmost pot or len(pots)-1 for the rightmost.
//
// rng is only consulted for Medium. A nil rng with Medium falls back to a
// locally seeded generator.
func OptimalMove(pots []int64, level Level, rng *rand.Rand) int {
	n := len(pots)
	if n == 1 {
		return 0
	}
	good, bad := ends(solve(pots))

	switch level {
	case Easy:
		return bad
	case Medium:
		if rng == nil {
			rng = NewRand()
		}
		if rng.IntN(2) == 0 {
			return good
		}
		return bad
	default:
		return good
	}
}

// RowValue reports the total the mover can guarantee on the whole row
// when both players play optimally from here on.
func RowValue(pots []int64) int64 {
	if len(pots) == 0 {
		return 0
	}
	dp := solve(pots)
	return dp[0][len(pots)-1]
}

// NewRand returns a PCG-backed generator seeded from the runtime source.
// Each caller gets its own instance.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// solve fills dp[left][right] bottom-up by sub-row length.
// Cells of one length only read cells of the previous length.
func solve(pots []int64) [][]int64 {
	n := len(pots)
	sum := prefixSums(pots)

	dp := make([][]int64, n)
	for i := range dp {
		dp[i] = make([]int64, n)
	}

	for length := 1; length <= n; length++ {
		for left := 0; left+length <= n; left++ {
			right := left + length - 1
			if left == right {
				dp[left][right] = pots[left]
				continue
			}
			pickLeft := pots[left] + (sum[right+1] - sum[left+1] - dp[left+1][right])
			pickRight := pots[right] + (sum[right] - sum[left] - dp[left][right-1])
			dp[left][right] = max(pickLeft, pickRight)
		}
	}
	return dp
}

// ends compares what the opponent is left with after each choice.
// Ties go to the left end.
func ends(dp [][]int64) (good, bad int) {
	n := len(dp)
	if dp[1][n-1] <= dp[0][n-2] {
		return 0, n - 1
	}
	return n - 1, 0
}

// prefixSums returns sum where sum[i] is the total of pots[0:i].
func prefixSums(pots []int64) []int64 {
	sum := make([]int64, len(pots)+1)
	for i, p := range pots {
		sum[i+1] = sum[i] + p
	}
	return sum
}
