package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
}

// DefaultMaxNodes bounds the search tree visited per group before the
// solver gives up with [ErrTooComplex].
const DefaultMaxNodes = 1 << 21

type Options struct {
	// MineCount, when set, is the TOTAL number of mines on the board,
	// known-mine cells included. When nil the solver assumes an unknown
	// mine count and weights every remainder mine count uniformly.
	MineCount *int
	// MaxNodes caps the per-group search; 0 means DefaultMaxNodes.
	MaxNodes int
	// Timeout, when positive, bounds the whole computation.
	Timeout time.Duration
}

/*
Result is the probability map for one board snapshot. Probs is
row-major and same-shaped as the board: revealed numbers report 0,
known mines report 1, every other cell the probability that it hides a
mine.
*/
type Result struct {
	Width, Height int
	Probs         []float64
	Groups        int
	Constrained   int
	Remainder     int
	GrandTotal    string
	Elapsed       time.Duration
}

/*
Solve computes, for every unopened cell of the board, the probability
that it hides a mine given the revealed clues. The computation is a
pure function of the snapshot; repeated calls with an identical board
and options produce identical results.
*/
func Solve(ctx context.Context, board *mines.Board, opts Options) (*Result, error) {
	start := time.Now()

	if board == nil {
		return nil, fmt.Errorf("%w: nil board", ErrInvalidInput)
	}
	if opts.MaxNodes == 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	p, err := extract(board)
	if err != nil {
		return nil, err
	}

	// Resolve the optional global budget against what the board
	// already pins down.
	var budget *int
	if opts.MineCount != nil {
		total := *opts.MineCount
		if total < 0 || total > board.Width*board.Height {
			return nil, fmt.Errorf(
				"%w: mine count %d out of range for a %dx%d board",
				ErrInvalidInput, total, board.Width, board.Height,
			)
		}
		left := total - p.knownMines
		if left < 0 || left > board.CountState(mines.Unclicked) {
			return nil, fmt.Errorf(
				"%w: %d mines cannot fit this board's known cells",
				ErrNoValidConfiguration, total,
			)
		}
		budget = &left
	}

	ded, err := propagate(p)
	if err != nil {
		return nil, err
	}
	if budget != nil {
		left := *budget - ded.forcedMines
		if left < 0 {
			return nil, fmt.Errorf(
				"%w: clues force more mines than the mine count allows",
				ErrNoValidConfiguration,
			)
		}
		budget = &left
	}

	groups := partition(len(p.vars), ded.constraints)

	log.WithFields(logrus.Fields{
		"constrained": len(p.vars),
		"groups":      len(groups),
		"remainder":   p.remainderSize(),
		"forced":      ded.forcedMines,
	}).Debug("board partitioned")

	// Groups share no variables, so each one enumerates on its own
	// worker; aggregation below is the fan-in.
	stats := make([]groupStats, len(groups))
	eg, gctx := errgroup.WithContext(ctx)
	for gi, g := range groups {
		eg.Go(func() error {
			cfgs, err := enumerate(gctx, g, opts.MaxNodes)
			if err != nil {
				return err
			}
			if len(cfgs) == 0 {
				return fmt.Errorf(
					"%w: no valid mine placement around %s",
					ErrInconsistentBoard, g.Constraints[0].Cell,
				)
			}
			stats[gi] = tally(g, cfgs)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", ErrTooComplex, opts.Timeout)
		}
		return nil, err
	}

	agg, err := aggregate(groups, stats, p.remainderSize(), budget)
	if err != nil {
		return nil, err
	}

	probs := make([]float64, board.Width*board.Height)
	for at, c := range board.Points() {
		i := board.Index(at)
		switch {
		case c == mines.Mine:
			probs[i] = 1
		case c != mines.Unclicked:
			// revealed number: 0 by convention
		default:
			v, constrained := p.varAt[at]
			switch {
			case !constrained:
				probs[i] = agg.remainderProb
			case ded.forced[v] == forcedMine:
				probs[i] = 1
			case ded.forced[v] == forcedSafe:
				probs[i] = 0
			default:
				probs[i] = agg.varProb[v]
			}
		}
	}

	return &Result{
		Width:       board.Width,
		Height:      board.Height,
		Probs:       probs,
		Groups:      len(groups),
		Constrained: len(p.vars),
		Remainder:   p.remainderSize(),
		GrandTotal:  agg.grandTotal.String(),
		Elapsed:     time.Since(start),
	}, nil
}
