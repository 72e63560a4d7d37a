package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/config"
	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

func TestParseSolveOptionsDTO(t *testing.T) {
	query, err := url.ParseQuery("mine_count=10&max_nodes=500&timeout_ms=250&unknown=1")
	require.NoError(t, err)

	dto, err := ParseSolveOptionsDTO(query)
	require.NoError(t, err)
	require.NotNil(t, dto.MineCount)
	assert.Equal(t, 10, *dto.MineCount)
	assert.Equal(t, 500, dto.MaxNodes)
	assert.Equal(t, 250, dto.TimeoutMs)
}

func TestParseSolveOptionsDTODefaults(t *testing.T) {
	dto, err := ParseSolveOptionsDTO(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, dto.MineCount)
	assert.Zero(t, dto.MaxNodes)
	assert.Zero(t, dto.TimeoutMs)
}

func TestBoardDTORejectsBadShape(t *testing.T) {
	dto := BoardDTO{Width: 3, Height: 2, Cells: mines.Grid{-2, -2, -2}}
	_, err := dto.Board()
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{solver.ErrInvalidInput, http.StatusBadRequest},
		{solver.ErrInconsistentBoard, http.StatusUnprocessableEntity},
		{solver.ErrNoValidConfiguration, http.StatusUnprocessableEntity},
		{solver.ErrTooComplex, http.StatusServiceUnavailable},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, statusFor(test.err), "%v", test.err)
	}
}

func TestOptionsOnlyTighten(t *testing.T) {
	h := SolveHandler{cfg: &config.Solver{
		MaxNodes: 1000,
		Timeout:  time.Second,
	}}

	opts := h.options(SolveOptionsDTO{MaxNodes: 500, TimeoutMs: 100})
	assert.Equal(t, 500, opts.MaxNodes)
	assert.Equal(t, 100*time.Millisecond, opts.Timeout)

	opts = h.options(SolveOptionsDTO{MaxNodes: 5000, TimeoutMs: 60000})
	assert.Equal(t, 1000, opts.MaxNodes)
	assert.Equal(t, time.Second, opts.Timeout)
}
