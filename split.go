// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"go.uber.org/zap"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// Split carves the half-open box [p0, p1) out of the partition and
// reassigns every point in it to mat, preserving the partition. The
// corners are normalized, a degenerate box is a no-op returning an empty
// batch.
//
// The returned batch holds the rows created by the carve that are still
// present after the interleaved merges, it can be passed straight into
// [Rows.Merge].
func (r *Rows) Split(p0, p1 Point, mat string) (*Batch, error) {
	m, err := r.matIndex(mat)
	if err != nil {
		return nil, err
	}

	b := geom.MakeBox(p0, p1)
	if b.Empty() {
		return newBatch(r.cat.Len()), nil
	}
	if err := r.validBox(b); err != nil {
		return nil, err
	}

	owner := r.beginBatch()
	err = r.carve(b, m)
	batch := r.endBatch(owner)
	if err != nil {
		return nil, err
	}

	r.log.Debug("split",
		zap.Uint64("volume", b.Volume()),
		zap.String("mat", mat),
		zap.Int("batch", batch.Len()),
		zap.Int("total", r.total),
	)
	return batch, nil
}

// SplitPoint is the degenerate single-point split, carving [p, p+1).
func (r *Rows) SplitPoint(p Point, mat string) (*Batch, error) {
	return r.Split(p, Point{X: p.X + 1, Y: p.Y + 1, Z: p.Z + 1}, mat)
}

// carve recursively cuts b out of the partition. Each level carves the
// portion of b inside the row owning b.P0, then recurses on the
// remainders in axis priority: the +x slab first, then +y within the
// consumed x range, then +z within the consumed x,y range. Every point
// of b is carved exactly once.
func (r *Rows) carve(b geom.Box, newM int) error {
	if b.Empty() {
		return nil
	}

	hit, err := r.search(b.P0)
	if err != nil {
		return err
	}

	q, ok := b.Intersect(hit.Box())
	if !ok {
		panic("logic error, owning row misses carve origin")
	}

	r.carveRow(hit, q, newM)

	// collapse rows the carve made fusible before recursing
	if hit.MIdx != newM {
		r.mergeRounds([]int{hit.MIdx, newM})
	} else {
		r.mergeRounds([]int{newM})
	}

	if q.P1.X < b.P1.X {
		next := geom.Box{
			P0: Point{X: q.P1.X, Y: b.P0.Y, Z: b.P0.Z},
			P1: b.P1,
		}
		if err := r.carve(next, newM); err != nil {
			return err
		}
	}
	if q.P1.Y < b.P1.Y {
		next := geom.Box{
			P0: Point{X: b.P0.X, Y: q.P1.Y, Z: b.P0.Z},
			P1: Point{X: q.P1.X, Y: b.P1.Y, Z: b.P1.Z},
		}
		if err := r.carve(next, newM); err != nil {
			return err
		}
	}
	if q.P1.Z < b.P1.Z {
		next := geom.Box{
			P0: Point{X: b.P0.X, Y: b.P0.Y, Z: q.P1.Z},
			P1: Point{X: q.P1.X, Y: q.P1.Y, Z: b.P1.Z},
		}
		if err := r.carve(next, newM); err != nil {
			return err
		}
	}
	return nil
}

// carveRow replaces the parent row by the up-to-27 cells of the 3-way cut
// along q's planes: the center cell gets newM, the others keep the parent
// material. The cut is a true partition of the parent extent, volume is
// preserved and no overlaps are created.
func (r *Rows) carveRow(parent Row, q geom.Box, newM int) {
	xs := [4]uint32{parent.P0.X, q.P0.X, q.P1.X, parent.P1.X}
	ys := [4]uint32{parent.P0.Y, q.P0.Y, q.P1.Y, parent.P1.Y}
	zs := [4]uint32{parent.P0.Z, q.P0.Z, q.P1.Z, parent.P1.Z}

	for i := range 3 {
		if xs[i] >= xs[i+1] {
			continue
		}
		for j := range 3 {
			if ys[j] >= ys[j+1] {
				continue
			}
			for k := range 3 {
				if zs[k] >= zs[k+1] {
					continue
				}

				m := parent.MIdx
				if i == 1 && j == 1 && k == 1 {
					m = newM
				}
				cell := geom.Box{
					P0: Point{X: xs[i], Y: ys[j], Z: zs[k]},
					P1: Point{X: xs[i+1], Y: ys[j+1], Z: zs[k+1]},
				}
				r.insert(m, cell, FlagDirty|FlagAlive)
			}
		}
	}

	r.removeAt(parent.Loc())
}
