// internal/httpserver/server.go
//
// HTTP server wiring for the pots-of-gold backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     request logging, JSON, CORS).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /api/start-game, POST /api/optimal-move.
//   - Daily row and move journal endpoints (routes_daily.go, routes_moves.go).
//
// Notes:
//   - Handlers are stateless: each request decodes its input, validates it
//     with the pots package, and calls the engine with its own generator.
//   - The move journal is best effort; a failed write is logged, not returned.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/amardeep033/pots-of-gold/internal/config"
	"github.com/amardeep033/pots-of-gold/internal/game"
	"github.com/amardeep033/pots-of-gold/internal/pots"
	"github.com/amardeep033/pots-of-gold/internal/store"
)

// maxBodyBytes bounds request bodies; MAX_POTS bounds rows separately.
const maxBodyBytes = 1 << 20

// Server bundles router, configuration and the move journal.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	journal store.Store
	newRand func() *rand.Rand // one generator per request
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, journal store.Store) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, journal: journal, newRand: game.NewRand}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one zerolog line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	if cfg.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	}
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin)) // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pots-of-gold","endpoints":["/health","POST /api/start-game","POST /api/optimal-move","GET /api/daily-row","GET /api/moves/recent"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Post("/start-game", s.handleStartGame)
		r.Post("/optimal-move", s.handleOptimalMove)
		s.mountDaily(r)
		s.mountMoves(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Router exposes the internal router (used by main and tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// startGameReq/Res payloads for POST /api/start-game.
type startGameReq struct {
	PotsCount int `json:"potscount"`
}
type startGameRes struct {
	Pots []int64 `json:"pots"`
}

// handleStartGame draws a fresh row of pots, each in [1,9].
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameReq
	if !decode(w, r, &req) {
		return
	}
	if err := pots.CheckCount(req.PotsCount, s.cfg.MaxPots); err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusOK, startGameRes{Pots: pots.Generate(s.newRand(), req.PotsCount)})
}

// optimalMoveReq/Res payloads for POST /api/optimal-move.
type optimalMoveReq struct {
	Pots  []int64 `json:"pots"`
	Level string  `json:"level"`
}
type optimalMoveRes struct {
	ChosenIndex int        `json:"chosen_index"` // 0 or len(pots)-1
	Level       game.Level `json:"level"`        // resolved level, after fallback
	Value       int64      `json:"value"`        // mover's guaranteed total on the full row
	Total       int64      `json:"total"`
}

// handleOptimalMove validates the row, asks the engine for an end,
// and journals the decision.
func (s *Server) handleOptimalMove(w http.ResponseWriter, r *http.Request) {
	var req optimalMoveReq
	if !decode(w, r, &req) {
		return
	}
	if err := pots.Check(req.Pots, s.cfg.MaxPots); err != nil {
		writeValidation(w, err)
		return
	}

	level := game.ParseLevel(req.Level)
	idx := game.OptimalMove(req.Pots, level, s.newRand())

	if err := s.journal.Record(r.Context(), store.NewDecision(req.Pots, level, idx)); err != nil {
		log.Warn().Err(err).Str("reqId", chimw.GetReqID(r.Context())).Msg("journal move")
	}

	writeJSON(w, http.StatusOK, optimalMoveRes{
		ChosenIndex: idx,
		Level:       level,
		Value:       game.RowValue(req.Pots),
		Total:       pots.Total(req.Pots),
	})
}

// ------------------------------ helpers ------------------------------------

// errorRes is the body of every 4xx/5xx response.
type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}

// decode reads a JSON body into v, answering 400 bad_json on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}

// validationCodes maps pots sentinels to stable error codes.
var validationCodes = []struct {
	err  error
	code string
}{
	{pots.ErrEmptyRow, "empty_row"},
	{pots.ErrBadPotCount, "bad_pot_count"},
	{pots.ErrTooManyPots, "too_many_pots"},
	{pots.ErrNegativePot, "negative_pot"},
	{pots.ErrSumOverflow, "sum_overflow"},
}

// writeValidation answers 400 for known input errors, 500 otherwise.
func writeValidation(w http.ResponseWriter, err error) {
	for _, vc := range validationCodes {
		if errors.Is(err, vc.err) {
			writeError(w, http.StatusBadRequest, vc.code, err.Error())
			return
		}
	}
	log.Error().Err(err).Msg("unexpected validation error")
	writeError(w, http.StatusInternalServerError, "server_error", "")
}
