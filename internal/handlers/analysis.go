package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-solver/internal/config"
	"github.com/vancomm/minesweeper-solver/internal/middleware"
	"github.com/vancomm/minesweeper-solver/internal/repository"
)

type AnalysisHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewAnalysisHandler(logger *slog.Logger, db *pgxpool.Pool) *AnalysisHandler {
	return &AnalysisHandler{
		logger: logger,
		repo:   repository.New(db),
	}
}

func (h AnalysisHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	analysis, err := h.repo.GetAnalysis(
		r.Context(), pgtype.UUID{Bytes: id, Valid: true},
	)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch analysis from db", "error", err)
		return
	}

	board, err := analysis.DecodeBoard()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid analysis.board", "error", err)
		return
	}

	dto := NewStoredAnalysisDTO(*analysis)
	dto.Cells = board.Cells
	sendJSONOrLog(w, h.logger, dto)
}

func (h AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.AnalysisFilter{}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
		filter.Limit = limit
	}

	claims, loggedIn := r.Context().
		Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		filter.PlayerId = &claims.PlayerId
	}

	analyses, err := h.repo.ListAnalyses(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list analyses", "error", err)
		return
	}

	dtos := make([]*AnalysisDTO, 0, len(analyses))
	for _, a := range analyses {
		dtos = append(dtos, NewStoredAnalysisDTO(a))
	}
	sendJSONOrLog(w, h.logger, dtos)
}
