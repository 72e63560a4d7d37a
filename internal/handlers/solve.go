package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-solver/internal/config"
	"github.com/vancomm/minesweeper-solver/internal/middleware"
	"github.com/vancomm/minesweeper-solver/internal/repository"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

type SolveHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	cfg    *config.Solver
}

func NewSolveHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cfg *config.Solver,
) *SolveHandler {
	handler := &SolveHandler{
		logger: logger,
		repo:   repository.New(db),
		cfg:    cfg,
	}

	return handler
}

// statusFor maps solver failures to response codes: bad snapshots are
// the client's fault, contradictory ones are semantically invalid, and
// a blown search budget means the server refused the work.
func statusFor(err error) int {
	switch {
	case errors.Is(err, solver.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, solver.ErrInconsistentBoard),
		errors.Is(err, solver.ErrNoValidConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, solver.ErrTooComplex):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// options merges per-request overrides into the configured limits.
// Clients may only tighten them.
func (h SolveHandler) options(dto SolveOptionsDTO) solver.Options {
	opts := solver.Options{
		MineCount: dto.MineCount,
		MaxNodes:  h.cfg.MaxNodes,
		Timeout:   h.cfg.Timeout,
	}
	if dto.MaxNodes > 0 && (opts.MaxNodes == 0 || dto.MaxNodes < opts.MaxNodes) {
		opts.MaxNodes = dto.MaxNodes
	}
	if dto.TimeoutMs > 0 {
		timeout := time.Duration(dto.TimeoutMs) * time.Millisecond
		if timeout < opts.Timeout {
			opts.Timeout = timeout
		}
	}
	return opts
}

func (h SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSolveOptionsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	var boardDTO BoardDTO
	if err := json.NewDecoder(r.Body).Decode(&boardDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	board, err := boardDTO.Board()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	result, err := solver.Solve(r.Context(), board, h.options(dto))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("solve failed", "error", err)
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(status)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	params := repository.SaveAnalysisParams{
		AnalysisId: pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Board:      board,
		MineCount:  dto.MineCount,
		Probs:      result.Probs,
		Groups:     result.Groups,
		GrandTotal: result.GrandTotal,
		SolveTime:  result.Elapsed,
	}
	claims, loggedIn := r.Context().
		Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		params.PlayerId = &claims.PlayerId
	}

	response := NewAnalysisDTO(result, dto.MineCount)

	saved, err := h.repo.SaveAnalysis(r.Context(), params)
	if err != nil {
		// The answer is still good; only its permalink is lost.
		h.logger.Error("unable to save analysis", "error", err)
	} else {
		response.AnalysisId = uuid.UUID(saved.AnalysisId.Bytes).String()
		createdAt := saved.CreatedAt.Time.UnixMilli()
		response.CreatedAt = &createdAt
	}

	sendJSONOrLog(w, h.logger, response)
}
