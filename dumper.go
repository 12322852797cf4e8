// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// DumpDot renders the BVH as a Graphviz digraph.
// Useful during development and debugging.
//
// Leaves are labeled with material name, row index and extent, internal
// nodes with their union box. The output feeds straight into `dot -Tsvg`.
func (r *Rows) DumpDot() string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	nodes := make(map[int32]dot.Node)

	r.bvh.Walk(func(id, parent int32, b geom.Box, loc geom.Loc, isLeaf bool) {
		var n dot.Node
		if isLeaf {
			row := r.array[loc.M][loc.I]
			n = g.Node(fmt.Sprintf("n%d", id)).
				Box().
				Label(fmt.Sprintf("%s[%d]\n[%d,%d,%d)\n[%d,%d,%d)",
					r.cat.Name(loc.M), loc.I,
					row.P0.X, row.P0.Y, row.P0.Z,
					row.P1.X, row.P1.Y, row.P1.Z))
		} else {
			n = g.Node(fmt.Sprintf("n%d", id)).
				Label(fmt.Sprintf("[%d,%d,%d)\n[%d,%d,%d)",
					b.P0.X, b.P0.Y, b.P0.Z,
					b.P1.X, b.P1.Y, b.P1.Z))
		}
		nodes[id] = n

		if p, ok := nodes[parent]; ok {
			g.Edge(p, n)
		}
	})

	return g.String()
}
