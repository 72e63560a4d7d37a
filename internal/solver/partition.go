package solver

import "sort"

/*
Group is a maximal set of constraints connected through shared
variables. Groups partition the constrained variables: no variable or
constraint belongs to two groups, so each group can be solved on its
own.
*/
type Group struct {
	Vars        []int // ascending arena ids
	Constraints []Constraint
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

/*
partition merges constraints that share variables into groups.
Membership is a pure function of the constraint contents: groups come
out ordered by their smallest variable, with variables ascending inside
each group, whatever order the constraints arrived in.
*/
func partition(nvars int, constraints []Constraint) []Group {
	u := newUnionFind(nvars)
	for _, c := range constraints {
		for _, v := range c.Vars[1:] {
			u.union(c.Vars[0], v)
		}
	}

	byRoot := make(map[int]*Group)
	inSome := make([]bool, nvars)
	for _, c := range constraints {
		root := u.find(c.Vars[0])
		g, ok := byRoot[root]
		if !ok {
			g = &Group{}
			byRoot[root] = g
		}
		g.Constraints = append(g.Constraints, c)
		for _, v := range c.Vars {
			if !inSome[v] {
				inSome[v] = true
				g.Vars = append(g.Vars, v)
			}
		}
	}

	groups := make([]Group, 0, len(byRoot))
	for _, g := range byRoot {
		sort.Ints(g.Vars)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Vars[0] < groups[j].Vars[0]
	})
	return groups
}
