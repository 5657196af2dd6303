package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/wordchain/pkg/chain"
)

type graph struct {
	Nodes  []node `json:"nodes"`
	Edges  []edge `json:"edges"`
	Path   []int  `json:"path"`
	Result string `json:"result"`
}

type node struct {
	ID   int    `json:"id"`
	Item string `json:"item"`
	Best bool   `json:"best,omitempty"`
}

type edge struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Best bool `json:"best,omitempty"`
}

// WriteJSON encodes g together with the chain best and writes it to w.
func WriteJSON(g *chain.Graph, best chain.Path, w io.Writer) error {
	onPath := make(map[int]int, len(best)) // node -> position in best
	for i, id := range best {
		onPath[id] = i
	}

	out := graph{
		Nodes:  make([]node, g.NodeCount()),
		Edges:  make([]edge, 0, g.EdgeCount()),
		Path:   make([]int, len(best)),
		Result: chain.Join(best, g.Items()),
	}
	copy(out.Path, best)

	for u := range g.NodeCount() {
		_, in := onPath[u]
		out.Nodes[u] = node{ID: u, Item: g.Item(u), Best: in}
		for _, v := range g.Neighbors(u) {
			out.Edges = append(out.Edges, edge{From: u, To: v, Best: isPathEdge(onPath, u, v)})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// isPathEdge reports whether u -> v is a step of the chain indexed by onPath.
func isPathEdge(onPath map[int]int, u, v int) bool {
	i, ok := onPath[u]
	if !ok {
		return false
	}
	j, ok := onPath[v]
	return ok && j == i+1
}
