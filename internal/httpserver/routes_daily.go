// internal/httpserver/routes_daily.go
//
// HTTP route for the "daily row" mode.
//   - GET /api/daily-row?count=N → today's row (UTC), same for every caller.
//
// The row is derived from the date and DAILY_SALT; nothing is stored.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amardeep033/pots-of-gold/internal/daily"
	"github.com/amardeep033/pots-of-gold/internal/pots"
)

// defaultDailyCount matches the client's default row length.
const defaultDailyCount = 6

// mountDaily registers the daily route under r.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily-row", s.handleDailyRow)
}

// dailyRowRes is returned by /api/daily-row.
type dailyRowRes struct {
	Date string  `json:"date"`
	Pots []int64 `json:"pots"`
}

// handleDailyRow returns today's row of the requested length (default 6).
func (s *Server) handleDailyRow(w http.ResponseWriter, r *http.Request) {
	count := defaultDailyCount
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_pot_count", "count must be an integer")
			return
		}
		count = n
	}
	if err := pots.CheckCount(count, s.cfg.MaxPots); err != nil {
		writeValidation(w, err)
		return
	}

	now := time.Now()
	writeJSON(w, http.StatusOK, dailyRowRes{
		Date: daily.DateKey(now),
		Pots: daily.Row(now, s.cfg.DailySalt, count),
	})
}
