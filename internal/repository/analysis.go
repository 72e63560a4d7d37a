package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

type Analysis struct {
	AnalysisId  pgtype.UUID
	PlayerId    *int64
	Width       int
	Height      int
	MineCount   *int
	Board       []byte
	Probs       []float64
	Groups      int
	GrandTotal  string
	SolveTimeMs int64
	CreatedAt   pgtype.Timestamptz
}

// DecodeBoard restores the snapshot the probabilities were computed
// from.
func (a Analysis) DecodeBoard() (*mines.Board, error) {
	var board mines.Board
	buf := bytes.NewBuffer(a.Board)
	if err := gob.NewDecoder(buf).Decode(&board); err != nil {
		return nil, err
	}
	return &board, nil
}

type SaveAnalysisParams struct {
	AnalysisId pgtype.UUID
	PlayerId   *int64
	Board      *mines.Board
	MineCount  *int
	Probs      []float64
	Groups     int
	GrandTotal string
	SolveTime  time.Duration
}

func (p SaveAnalysisParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	if p.MineCount != nil {
		(*args)["mine_count"] = *p.MineCount
	}
	return args
}

func (q Queries) SaveAnalysis(
	ctx context.Context, params SaveAnalysisParams,
) (*Analysis, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(params.Board); err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"analysis_id":   params.AnalysisId,
		"width":         params.Board.Width,
		"height":        params.Board.Height,
		"board":         buf.Bytes(),
		"probs":         params.Probs,
		"groups":        params.Groups,
		"grand_total":   params.GrandTotal,
		"solve_time_ms": params.SolveTime.Milliseconds(),
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO analysis (
			analysis_id, player_id, width, height, mine_count,
			board, probs, groups, grand_total, solve_time_ms
		)
		VALUES (
			@analysis_id, @player_id, @width, @height, @mine_count,
			@board, @probs, @groups, @grand_total, @solve_time_ms
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Analysis])
}

func (q Queries) GetAnalysis(
	ctx context.Context, analysisId pgtype.UUID,
) (*Analysis, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM analysis WHERE analysis_id = $1", analysisId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Analysis])
}

type AnalysisFilter struct {
	PlayerId *int64
	Limit    int
}

func (f AnalysisFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.PlayerId != nil {
		clauses = append(clauses, "player_id = @player_id")
		args["player_id"] = *f.PlayerId
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) ListAnalyses(
	ctx context.Context, filter AnalysisFilter,
) ([]Analysis, error) {
	query := "SELECT * FROM analysis"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args["limit"] = limit
	query += " LIMIT @limit;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Analysis])
}
