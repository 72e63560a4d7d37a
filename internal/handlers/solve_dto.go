package handlers

import (
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/repository"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

type SolveOptionsDTO struct {
	MineCount *int `schema:"mine_count"`
	MaxNodes  int  `schema:"max_nodes"`
	TimeoutMs int  `schema:"timeout_ms"`
}

func ParseSolveOptionsDTO(src map[string][]string) (SolveOptionsDTO, error) {
	var dto SolveOptionsDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type BoardDTO struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Cells  mines.Grid `json:"cells"`
}

func (dto BoardDTO) Board() (*mines.Board, error) {
	return mines.NewBoard(dto.Width, dto.Height, dto.Cells)
}

type AnalysisDTO struct {
	AnalysisId  string     `json:"analysis_id,omitempty"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	MineCount   *int       `json:"mine_count,omitempty"`
	Cells       mines.Grid `json:"cells,omitempty"`
	Probs       []float64  `json:"probs"`
	Groups      int        `json:"groups"`
	Constrained int        `json:"constrained,omitempty"`
	Remainder   int        `json:"remainder,omitempty"`
	GrandTotal  string     `json:"grand_total"`
	SolveTimeMs int64      `json:"solve_time_ms"`
	CreatedAt   *int64     `json:"created_at,omitempty"`
}

func NewAnalysisDTO(result *solver.Result, mineCount *int) *AnalysisDTO {
	return &AnalysisDTO{
		Width:       result.Width,
		Height:      result.Height,
		MineCount:   mineCount,
		Probs:       result.Probs,
		Groups:      result.Groups,
		Constrained: result.Constrained,
		Remainder:   result.Remainder,
		GrandTotal:  result.GrandTotal,
		SolveTimeMs: result.Elapsed.Milliseconds(),
	}
}

func NewStoredAnalysisDTO(a repository.Analysis) *AnalysisDTO {
	createdAt := a.CreatedAt.Time.UnixMilli()
	return &AnalysisDTO{
		AnalysisId:  uuid.UUID(a.AnalysisId.Bytes).String(),
		Width:       a.Width,
		Height:      a.Height,
		MineCount:   a.MineCount,
		Probs:       a.Probs,
		Groups:      a.Groups,
		GrandTotal:  a.GrandTotal,
		SolveTimeMs: a.SolveTimeMs,
		CreatedAt:   &createdAt,
	}
}
