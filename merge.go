// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// Merge fuses same-material, axis-touching, orthogonal-matching neighbor
// rows until no such pair remains. With a nil batch all materials are
// considered; otherwise only the materials present in the batch, bounding
// the work. The returned batch holds the union rows created by the merge
// that survived until it returned.
func (r *Rows) Merge(batch *Batch) (*Batch, error) {
	before := r.total
	owner := r.beginBatch()

	if batch == nil {
		for m := range r.array {
			r.mergeMat(m)
		}
	} else {
		r.mergeRounds(batch.Materials())
	}

	out := r.endBatch(owner)
	r.log.Debug("merge",
		zap.Int("before", before),
		zap.Int("after", r.total),
	)
	return out, nil
}

// mergeMat consolidates one material: the three axes in fixed X, Y, Z
// order, each repeated until fixed-point before proceeding to the next.
func (r *Rows) mergeMat(m int) {
	for _, ax := range geom.Axes {
		for r.mergeAxis(m, ax) > 0 {
		}
	}
}

// mergeRounds consolidates a material set: full X, Y, Z rounds over all
// the materials until a complete round fuses nothing.
func (r *Rows) mergeRounds(mats []int) {
	if len(mats) == 0 {
		return
	}
	for {
		merged := 0
		for _, ax := range geom.Axes {
			for _, m := range mats {
				merged += r.mergeAxis(m, ax)
			}
		}
		if merged == 0 {
			return
		}
	}
}

// mergeAxis drains a work queue seeded with all rows of material m in
// reverse index order (so they pop in ascending order). For every live
// row it asks FHX for a fusion candidate along ax and fuses the pair.
// The union row's index and the two source slots go back onto the queue.
// A seen-set keeps already inspected slots off the queue until a fusion
// changes their contents. Returns the number of fusions.
func (r *Rows) mergeAxis(m int, ax geom.Axis) int {
	merged := 0

	n := len(r.array[m])
	stack := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		stack = append(stack, i)
	}
	seen := mapset.NewThreadUnsafeSet[int]()

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if i < 0 || i >= len(r.array[m]) {
			continue // slot vanished by swap-remove
		}
		if seen.Contains(i) {
			continue
		}
		seen.Add(i)

		nb, ok := r.fhx.Neighbor(geom.Loc{M: m, I: i}, ax)
		if !ok {
			continue
		}

		union, ok := r.mergePair(r.array[m][i], r.array[nb.M][nb.I])
		if !ok {
			continue
		}
		merged++

		// the union and the slots that got swap-filled need another look
		seen.Remove(union.RID)
		stack = append(stack, union.RID)
		seen.Remove(nb.I)
		stack = append(stack, nb.I)
		seen.Remove(i)
		stack = append(stack, i)
	}
	return merged
}

// mergePair fuses two rows into their union box if they are fusible.
// The higher index is removed first so the lower one's slot stays valid
// under swap-remove, then the union is inserted with the same material.
func (r *Rows) mergePair(row0, row1 Row) (Row, bool) {
	if _, ok := mergeable(row0, row1); !ok {
		return Row{}, false
	}

	union := row0.Box().Union(row1.Box())

	hi, lo := row0, row1
	if lo.RID > hi.RID {
		hi, lo = lo, hi
	}
	r.removeAt(hi.Loc())
	r.removeAt(lo.Loc())

	return r.insert(row0.MIdx, union, FlagDirty|FlagAlive), true
}
