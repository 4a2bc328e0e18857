package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/amardeep033/pots-of-gold/internal/store"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

func (s *Server) mountMoves(r chi.Router) {
	r.Get("/moves/recent", s.handleRecentMoves)
}

type recentMovesRes struct {
	Moves []store.Decision `json:"moves"`
}

// handleRecentMoves lists the newest journal entries; limit is clamped to [1,100].
func (s *Server) handleRecentMoves(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	moves, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("read journal")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	if moves == nil {
		moves = []store.Decision{}
	}
	writeJSON(w, http.StatusOK, recentMovesRes{Moves: moves})
}
