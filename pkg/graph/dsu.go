package graph

// UnionFind is a disjoint-set forest over dense indices.
type UnionFind struct {
	parent []int
	rank   []int
}

// NewUnionFind initializes n singleton sets.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	rank := make([]int, n)
	for i := 0; i < n; i++ {
		parent[i] = i
	}
	return &UnionFind{parent: parent, rank: rank}
}

// Find returns the set representative, or -1 when i is out of range.
func (uf *UnionFind) Find(i int) int {
	if i < 0 || i >= len(uf.parent) {
		return -1
	}
	if uf.parent[i] != i {
		uf.parent[i] = uf.Find(uf.parent[i])
	}
	return uf.parent[i]
}

// Union merges the sets holding i and j.
func (uf *UnionFind) Union(i, j int) {
	rootI := uf.Find(i)
	rootJ := uf.Find(j)
	if rootI == -1 || rootJ == -1 || rootI == rootJ {
		return
	}

	// Union by rank
	switch {
	case uf.rank[rootI] < uf.rank[rootJ]:
		uf.parent[rootI] = rootJ
	case uf.rank[rootI] > uf.rank[rootJ]:
		uf.parent[rootJ] = rootI
	default:
		uf.parent[rootJ] = rootI
		uf.rank[rootI]++
	}
}

// Connected checks connectivity.
func (uf *UnionFind) Connected(i, j int) bool {
	return uf.Find(i) == uf.Find(j)
}

// Components returns the number of connected pieces of the pattern.
// An isolated vertex is a piece of its own.
func (g *Graph) Components() int {
	index := make(map[VertexID]int, len(g.vertices))
	for i, v := range g.vertices {
		index[v.ID] = i
	}

	uf := NewUnionFind(len(g.vertices))
	for _, e := range g.edges {
		i, ok1 := index[e.V1]
		j, ok2 := index[e.V2]
		if ok1 && ok2 {
			uf.Union(i, j)
		}
	}

	roots := make(map[int]struct{})
	for i := range g.vertices {
		roots[uf.Find(i)] = struct{}{}
	}
	return len(roots)
}
