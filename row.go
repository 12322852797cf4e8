// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// Point is an integer position in the world box.
// Aliased from internal/geom to keep the code readable.
type Point = geom.Point

// Size is a box extent, P1-P0 componentwise.
type Size = geom.Size

// Flags are the per-row flag bits. Solid, destructible and visible are
// derived from the material type, dirty and alive belong to the row.
type Flags uint8

const (
	FlagDirty Flags = 1 << iota
	FlagAlive
	FlagSolid
	FlagDestructible
	FlagVisible
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// matFlags returns the material-derived flag bits.
func matFlags(t MaterialType) Flags {
	var f Flags
	if t == Solid {
		f |= FlagSolid
	}
	if t != Indestructible {
		f |= FlagDestructible
	}
	if t != Invisible {
		f |= FlagVisible
	}
	return f
}

// Row is one box of the partition, a pure value. All mutation goes
// through the store; collaborators receive copies only.
type Row struct {
	P0, P1 Point // half-open extent, P0 < P1 componentwise
	Size   Size  // P1 - P0, redundant but stored

	RID   int    // row index within its per-material array
	MIdx  int    // dense material index, routes storage
	MID   uint64 // stable catalog id
	Flags Flags
}

// Box returns the row extent as a half-open box.
func (w Row) Box() geom.Box {
	return geom.Box{P0: w.P0, P1: w.P1}
}

// Volume returns the row volume in uint64.
func (w Row) Volume() uint64 {
	return w.Size.Volume()
}

// Contains reports whether p lies in [P0, P1).
func (w Row) Contains(p Point) bool {
	return w.Box().Contains(p)
}

// Loc returns the row's store identity.
func (w Row) Loc() geom.Loc {
	return geom.Loc{M: w.MIdx, I: w.RID}
}

func (w Row) String() string {
	return fmt.Sprintf("row{m=%d i=%d [%d,%d,%d)-[%d,%d,%d)}",
		w.MIdx, w.RID, w.P0.X, w.P0.Y, w.P0.Z, w.P1.X, w.P1.Y, w.P1.Z)
}

// mergeable classifies whether a and b can fuse into a single box: same
// material, exactly one axis where the intervals touch at a plane, and
// identical extents on the other two axes. Touching AABBs with merely
// overlapping orthogonal spans are NOT fusible, their union would cover
// points neither row owns.
func mergeable(a, b Row) (geom.Axis, bool) {
	if a.MIdx != b.MIdx {
		return 0, false
	}

	touchAx := geom.Axis(0)
	touches := 0

	for _, ax := range geom.Axes {
		a0, a1 := a.Box().Span(ax)
		b0, b1 := b.Box().Span(ax)

		switch {
		case a0 == b0 && a1 == b1:
			// identical span, fusion preserves this axis
		case a1 == b0 || b1 == a0:
			touchAx = ax
			touches++
		default:
			// partial overlap or separation
			return 0, false
		}
	}

	if touches != 1 {
		return 0, false
	}
	return touchAx, true
}
