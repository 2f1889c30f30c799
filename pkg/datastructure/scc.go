package datastructure

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/util"
)

/*
StronglyConnectedComponents kosaraju scc buat satu flag encoder. u->v ada kalau edge state di u punya forward access,
jadi reverse graph nya edge state di u yang punya backward access. dfs iteratif biar tidak stack overflow di graph besar.
*/
func (g *Graph) StronglyConnectedComponents(enc FlagEncoder) [][]int32 {
	n := int32(g.GetNumNodes())
	components := make([][]int32, 0)

	order := make([]int32, 0, n)
	visited := make([]bool, n)

	for i := int32(0); i < n; i++ {
		if !visited[i] {
			g.dfs(i, &order, visited, enc, false)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)

	for _, v := range order {
		if !visited[v] {
			component := make([]int32, 0)
			g.dfs(v, &component, visited, enc, true)
			components = append(components, component)
		}
	}

	return components
}

type dfsFrame struct {
	node int32
	next int
}

// dfs append node ke output dalam urutan post-order
func (g *Graph) dfs(start int32, output *[]int32, visited []bool, enc FlagEncoder, reversed bool) {
	visited[start] = true
	stack := []dfsFrame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := g.GetNodeFirstOutEdges(top.node)

		pushed := false
		for top.next < len(edges) {
			edge := g.GetOutEdge(edges[top.next])
			top.next++

			ok := edge.IsForward(enc)
			if reversed {
				ok = edge.IsBackward(enc)
			}
			if ok && !visited[edge.ToNodeID] {
				visited[edge.ToNodeID] = true
				stack = append(stack, dfsFrame{node: edge.ToNodeID})
				pushed = true
				break
			}
		}

		if !pushed {
			*output = append(*output, top.node)
			stack = stack[:len(stack)-1]
		}
	}
}

// LargestComponent node yang masuk scc terbesar
func (g *Graph) LargestComponent(enc FlagEncoder) []bool {
	inLargest := make([]bool, g.GetNumNodes())
	var largest []int32
	for _, c := range g.StronglyConnectedComponents(enc) {
		if len(c) > len(largest) {
			largest = c
		}
	}
	for _, v := range largest {
		inLargest[v] = true
	}
	return inLargest
}
