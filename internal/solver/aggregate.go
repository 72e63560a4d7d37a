package solver

import (
	"math/big"
)

/*
groupStats bins a group's configuration set by mine count: hist[m] is
the number of configurations placing exactly m mines, hits[i][m] the
number of those in which variable i (local index) is a mine. This is
all the aggregator needs; individual configurations are not kept.
*/
type groupStats struct {
	hist []int64
	hits [][]int64
}

func tally(g Group, cfgs []Configuration) groupStats {
	s := groupStats{
		hist: make([]int64, len(g.Vars)+1),
		hits: make([][]int64, len(g.Vars)),
	}
	for i := range s.hits {
		s.hits[i] = make([]int64, len(g.Vars)+1)
	}
	for _, cfg := range cfgs {
		s.hist[cfg.MineCount]++
		for i, mine := range cfg.Mines {
			if mine {
				s.hits[i][cfg.MineCount]++
			}
		}
	}
	return s
}

type aggregation struct {
	varProb       map[int]float64 // arena id -> mine probability
	remainderProb float64
	grandTotal    *big.Int
}

// binom is C(n, k), zero outside 0 <= k <= n.
func binom(n, k int) *big.Int {
	if k < 0 || k > n || n < 0 {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

func convolve(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	var tmp big.Int
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			if bj.Sign() == 0 {
				continue
			}
			out[i+j].Add(out[i+j], tmp.Mul(ai, bj))
		}
	}
	return out
}

func histToBig(hist []int64) []*big.Int {
	out := make([]*big.Int, len(hist))
	for i, h := range hist {
		out[i] = big.NewInt(h)
	}
	return out
}

/*
aggregate folds per-group mine-count histograms and the remainder's
binomial weights into per-cell probabilities.

The group cross product is never materialized: groups combine through
prefix/suffix convolutions over total mine count, so the work is
polynomial in groups x mines. remainder is the number of unclicked
cells constrained by nothing; budget, when non-nil, is the number of
mines left to distribute over group variables and remainder (total
mines minus known and forced ones). A nil budget keeps every remainder
mine count, uniformly weighted.

All weights are exact integers; division happens once per cell, at the
end, through big.Rat.
*/
func aggregate(groups []Group, stats []groupStats, remainder int, budget *int) (*aggregation, error) {
	n := len(groups)

	// weight of one global combination as a function of the total mine
	// count t over all group variables
	weight := func(t int) *big.Int {
		if budget != nil {
			return binom(remainder, *budget-t)
		}
		// no budget: every remainder count r contributes C(R, r)
		return new(big.Int).Lsh(big.NewInt(1), uint(remainder))
	}
	// same, with one remainder cell pinned as a mine:
	// C(R, r) * r / R == C(R-1, r-1)
	mineWeight := func(t int) *big.Int {
		if remainder == 0 {
			return new(big.Int)
		}
		if budget != nil {
			return binom(remainder-1, *budget-t-1)
		}
		return new(big.Int).Lsh(big.NewInt(1), uint(remainder-1))
	}

	one := []*big.Int{big.NewInt(1)}
	prefix := make([][]*big.Int, n+1)
	prefix[0] = one
	for i, s := range stats {
		prefix[i+1] = convolve(prefix[i], histToBig(s.hist))
	}
	suffix := make([][]*big.Int, n+1)
	suffix[n] = one
	for i := n - 1; i >= 0; i-- {
		suffix[i] = convolve(histToBig(stats[i].hist), suffix[i+1])
	}
	full := prefix[n]

	var (
		tmp   big.Int
		grand = new(big.Int)
		remW  = new(big.Int)
	)
	for t, count := range full {
		if count.Sign() == 0 {
			continue
		}
		grand.Add(grand, tmp.Mul(count, weight(t)))
		remW.Add(remW, tmp.Mul(count, mineWeight(t)))
	}
	if grand.Sign() == 0 {
		return nil, ErrNoValidConfiguration
	}

	agg := &aggregation{
		varProb:    make(map[int]float64),
		grandTotal: grand,
	}

	for gi, g := range groups {
		// total weight of everything outside this group, by mine count
		exterior := convolve(prefix[gi], suffix[gi+1])

		// coef[m]: total weight multiplying any configuration of this
		// group that places m mines
		coef := make([]*big.Int, len(stats[gi].hist))
		for m := range coef {
			coef[m] = new(big.Int)
			for t, count := range exterior {
				if count.Sign() == 0 {
					continue
				}
				coef[m].Add(coef[m], tmp.Mul(count, weight(t+m)))
			}
		}

		for i, v := range g.Vars {
			mineW := new(big.Int)
			for m, hits := range stats[gi].hits[i] {
				if hits == 0 {
					continue
				}
				mineW.Add(mineW, tmp.Mul(big.NewInt(hits), coef[m]))
			}
			agg.varProb[v] = ratio(mineW, grand)
		}
	}

	if remainder > 0 {
		agg.remainderProb = ratio(remW, grand)
	}

	return agg, nil
}

func ratio(num, den *big.Int) float64 {
	f, _ := new(big.Rat).SetFrac(num, den).Float64()
	return f
}
