// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// CheckIntegrity validates the engine invariants that are checkable
// without sampling: identity patching, index cross-registration,
// pairwise disjointness and volume conservation. It is O(n^2) in the row
// count and meant for tests and debugging, not for hot paths.
//
// A non-nil result wraps [ErrPartitionViolated].
func (r *Rows) CheckIntegrity() error {
	count := 0

	for m := range r.array {
		for i := range r.array[m] {
			row := r.array[m][i]
			count++

			// stored identity must match the slot
			if row.RID != i || row.MIdx != m {
				return fmt.Errorf("%w: slot (%d,%d) holds identity (%d,%d)",
					ErrPartitionViolated, m, i, row.MIdx, row.RID)
			}
			if !row.Box().Valid() {
				return fmt.Errorf("%w: %v is degenerate", ErrPartitionViolated, row)
			}
			if !r.world.ContainsBox(row.Box()) {
				return fmt.Errorf("%w: %v escapes the world", ErrPartitionViolated, row)
			}

			// both indexes must know the row
			loc := geom.Loc{M: m, I: i}
			if !r.bvh.Has(loc) {
				return fmt.Errorf("%w: %v has no bvh leaf", ErrPartitionViolated, row)
			}
			if !r.fhx.Has(loc) {
				return fmt.Errorf("%w: %v has no fhx faces", ErrPartitionViolated, row)
			}

			// and the bvh must resolve the row's own origin to it
			got, ok := r.bvh.Search(row.P0)
			if !ok || got != loc {
				return fmt.Errorf("%w: bvh resolves %v origin to %v", ErrPartitionViolated, row, got)
			}
		}
	}

	if count != r.total {
		return fmt.Errorf("%w: store holds %d rows, counted %d", ErrPartitionViolated, r.total, count)
	}
	if n := r.bvh.Len(); n != count {
		return fmt.Errorf("%w: bvh holds %d leaves for %d rows", ErrPartitionViolated, n, count)
	}
	if n := r.fhx.Len(); n != count {
		return fmt.Errorf("%w: fhx holds %d rows for %d rows", ErrPartitionViolated, n, count)
	}

	// pairwise disjointness over all materials
	all := make([]Row, 0, count)
	for m := range r.array {
		all = append(all, r.array[m]...)
	}
	for a := range all {
		for b := a + 1; b < len(all); b++ {
			if all[a].Box().Overlaps(all[b].Box()) {
				return fmt.Errorf("%w: %v overlaps %v", ErrPartitionViolated, all[a], all[b])
			}
		}
	}

	// with a seeded world the row volumes must sum to the world volume
	if r.seed != "" {
		if got, want := r.Volume(), r.world.Volume(); got != want {
			return fmt.Errorf("%w: total volume %d, world volume %d", ErrPartitionViolated, got, want)
		}
	}
	return nil
}
