package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/amardeep033/pots-of-gold/internal/config"
	"github.com/amardeep033/pots-of-gold/internal/store"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func testConfig() config.Config {
	return config.Config{
		ClientOrigin:   "http://localhost:3000",
		MaxPots:        10,
		DailySalt:      "test_salt",
		RequestTimeout: 5 * time.Second,
	}
}

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	journal := store.NewMemoryStore(50)
	return New(testConfig(), journal), journal
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != `{"ok":true}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "GET", "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	res := decodeBody[errorRes](t, w)
	if res.Error != "not_found" || res.Message != "/nope" {
		t.Errorf("unexpected error body %+v", res)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "OPTIONS", "/api/optimal-move", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("unexpected origin %q", h.Get("Access-Control-Allow-Origin"))
	}
	if h.Get("Access-Control-Max-Age") != "3600" {
		t.Errorf("unexpected max age %q", h.Get("Access-Control-Max-Age"))
	}
	if !strings.Contains(h.Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("POST not allowed: %q", h.Get("Access-Control-Allow-Methods"))
	}
}

func TestStartGame(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "POST", "/api/start-game", `{"potscount":6}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	res := decodeBody[startGameRes](t, w)
	if len(res.Pots) != 6 {
		t.Fatalf("expected 6 pots, got %v", res.Pots)
	}
	for _, p := range res.Pots {
		if p < 1 || p > 9 {
			t.Errorf("pot %d outside [1,9]", p)
		}
	}
}

func TestStartGameRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"zero count", `{"potscount":0}`, "bad_pot_count"},
		{"missing count", `{}`, "bad_pot_count"},
		{"negative count", `{"potscount":-2}`, "bad_pot_count"},
		{"above limit", `{"potscount":11}`, "too_many_pots"},
		{"bad json", `{"potscount":`, "bad_json"},
		{"wrong type", `{"potscount":"six"}`, "bad_json"},
	}
	s, _ := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, "POST", "/api/start-game", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			if res := decodeBody[errorRes](t, w); res.Error != tc.code {
				t.Errorf("expected error %q, got %q", tc.code, res.Error)
			}
		})
	}
}

// moveBody reads the wire form without the game.Level decoder.
type moveBody struct {
	ChosenIndex int    `json:"chosen_index"`
	Level       string `json:"level"`
	Value       int64  `json:"value"`
	Total       int64  `json:"total"`
}

func TestOptimalMove(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		index int
		level string
	}{
		{"hard", `{"pots":[1,9,1],"level":"HARD"}`, 0, "HARD"},
		{"easy", `{"pots":[1,9,1],"level":"EASY"}`, 2, "EASY"},
		{"unknown falls back to hard", `{"pots":[1,9,1],"level":"whatever"}`, 0, "HARD"},
		{"missing level is hard", `{"pots":[3,5]}`, 1, "HARD"},
		{"single pot", `{"pots":[4],"level":"EASY"}`, 0, "EASY"},
	}
	s, _ := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, "POST", "/api/optimal-move", tc.body)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			res := decodeBody[moveBody](t, w)
			if res.ChosenIndex != tc.index {
				t.Errorf("expected index %d, got %d", tc.index, res.ChosenIndex)
			}
			if res.Level != tc.level {
				t.Errorf("expected level %s, got %s", tc.level, res.Level)
			}
		})
	}
}

func TestOptimalMoveReportsValueAndTotal(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "POST", "/api/optimal-move", `{"pots":[2,7,3,1],"level":"HARD"}`)
	res := decodeBody[moveBody](t, w)
	if res.ChosenIndex != 3 || res.Value != 8 || res.Total != 13 {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestOptimalMoveRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"empty row", `{"pots":[],"level":"HARD"}`, "empty_row"},
		{"missing row", `{"level":"HARD"}`, "empty_row"},
		{"negative pot", `{"pots":[1,-4,2]}`, "negative_pot"},
		{"overflow", `{"pots":[9223372036854775807,1]}`, "sum_overflow"},
		{"too many", `{"pots":[1,1,1,1,1,1,1,1,1,1,1]}`, "too_many_pots"},
		{"fractional pot", `{"pots":[1.5,2]}`, "bad_json"},
		{"not json", `pots`, "bad_json"},
	}
	s, journal := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, s, "POST", "/api/optimal-move", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			if res := decodeBody[errorRes](t, w); res.Error != tc.code {
				t.Errorf("expected error %q, got %q", tc.code, res.Error)
			}
		})
	}
	if got, _ := journal.Recent(context.Background(), 0); len(got) != 0 {
		t.Errorf("rejected requests were journaled: %d entries", len(got))
	}
}

func TestOptimalMoveMediumUsesBothEnds(t *testing.T) {
	s, _ := newTestServer(t)
	r := rand.New(rand.NewPCG(3, 4))
	s.newRand = func() *rand.Rand { return r }

	seen := map[int]int{}
	for i := 0; i < 200; i++ {
		w := do(t, s, "POST", "/api/optimal-move", `{"pots":[2,7,3,1],"level":"MEDIUM"}`)
		res := decodeBody[optimalMoveRes](t, w)
		seen[res.ChosenIndex]++
	}
	if seen[0] == 0 || seen[3] == 0 || len(seen) != 2 {
		t.Fatalf("expected both ends, got %v", seen)
	}
}

func TestJournalRecordsMoves(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, "POST", "/api/optimal-move", `{"pots":[1,9,1],"level":"EASY"}`)
	do(t, s, "POST", "/api/optimal-move", `{"pots":[3,5],"level":"HARD"}`)

	w := do(t, s, "GET", "/api/moves/recent?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	res := decodeBody[recentMovesRes](t, w)
	if len(res.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(res.Moves))
	}
	newest := res.Moves[0]
	if !slices.Equal(newest.Pots, []int64{3, 5}) || newest.ChosenIndex != 1 {
		t.Errorf("unexpected newest move %+v", newest)
	}
	if res.Moves[1].ChosenIndex != 2 || res.Moves[1].Level.String() != "EASY" {
		t.Errorf("unexpected older move %+v", res.Moves[1])
	}
}

func TestRecentMovesEmptyAndBadLimit(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, "GET", "/api/moves/recent", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"moves":[]}` {
		t.Fatalf("unexpected empty journal response %d %s", w.Code, w.Body.String())
	}
	for _, q := range []string{"0", "-1", "ten"} {
		w := do(t, s, "GET", "/api/moves/recent?limit="+q, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", q, w.Code)
		}
	}
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Record(context.Context, store.Decision) error {
	return errors.New("disk full")
}
func (failingStore) Recent(context.Context, int) ([]store.Decision, error) {
	return nil, errors.New("disk full")
}

func TestJournalFailureDoesNotFailMove(t *testing.T) {
	s := New(testConfig(), failingStore{})
	w := do(t, s, "POST", "/api/optimal-move", `{"pots":[1,9,1],"level":"HARD"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	w = do(t, s, "GET", "/api/moves/recent", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
}

func TestDailyRow(t *testing.T) {
	s, _ := newTestServer(t)
	w1 := do(t, s, "GET", "/api/daily-row", "")
	w2 := do(t, s, "GET", "/api/daily-row", "")
	if w1.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w1.Code)
	}
	a := decodeBody[dailyRowRes](t, w1)
	b := decodeBody[dailyRowRes](t, w2)
	if len(a.Pots) != defaultDailyCount {
		t.Fatalf("expected %d pots, got %d", defaultDailyCount, len(a.Pots))
	}
	// a UTC midnight between the two calls would legitimately change the row
	if a.Date == b.Date && !slices.Equal(a.Pots, b.Pots) {
		t.Errorf("same day returned different rows: %v vs %v", a.Pots, b.Pots)
	}

	w := do(t, s, "GET", "/api/daily-row?count=4", "")
	if res := decodeBody[dailyRowRes](t, w); len(res.Pots) != 4 {
		t.Errorf("expected 4 pots, got %v", res.Pots)
	}
}

func TestDailyRowRejects(t *testing.T) {
	s, _ := newTestServer(t)
	for q, code := range map[string]string{
		"0":   "bad_pot_count",
		"abc": "bad_pot_count",
		"11":  "too_many_pots",
	} {
		w := do(t, s, "GET", "/api/daily-row?count="+q, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("count=%s: expected 400, got %d", q, w.Code)
			continue
		}
		if res := decodeBody[errorRes](t, w); res.Error != code {
			t.Errorf("count=%s: expected %q, got %q", q, code, res.Error)
		}
	}
}
