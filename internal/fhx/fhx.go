// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package fhx implements the face-hash merge index.
//
// For every registered row the index keeps six face descriptors, two per
// axis. A face descriptor on axis X is (m, y0, y1, z0, z1, x) with x
// either x0 (negative side) or x1 (positive side), analogous for Y and Z.
// Two same-material rows are fusible into a single box iff they touch
// exactly at a plane on one axis and have identical extents on the other
// two, and that is precisely what a matching descriptor in the
// opposite-side map encodes: the orthogonal spans are part of the key, so
// a hit is a proof of fusibility.
//
// Registration inserts the row's location into the six per-axis-per-side
// buckets; the stored six-face tuple allows O(1) unregistration without
// access to the row itself.
package fhx

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/whoisthereitsme/voxels/internal/geom"
)

// face is one face descriptor: material index, the two orthogonal spans
// in fixed axis order, and the plane coordinate on the face's own axis.
type face struct {
	m      int32
	a0, a1 uint32
	b0, b1 uint32
	c      uint32
}

// sixFaces holds a row's descriptors as [axis][side], side 0 is the
// negative face (plane at the box minimum), side 1 the positive face.
type sixFaces [3][2]face

type bucket = mapset.Set[geom.Loc]

// Index is the face-hash merge index. The zero value is not ready to use,
// call New.
type Index struct {
	// neg[ax] keys rows by their negative face on ax, pos[ax] by the
	// positive face. A fusible pair meets in exactly one of them.
	neg [3]map[face]bucket
	pos [3]map[face]bucket

	// side table for O(1) removal, (m,i) -> six-face tuple
	faces map[geom.Loc]sixFaces
}

// New returns an empty index with capacity for about capHint rows.
func New(capHint int) *Index {
	if capHint < 1 {
		capHint = 1
	}
	x := &Index{faces: make(map[geom.Loc]sixFaces, capHint)}
	for ax := range 3 {
		x.neg[ax] = make(map[face]bucket, capHint)
		x.pos[ax] = make(map[face]bucket, capHint)
	}
	return x
}

// Len returns the number of registered rows.
func (x *Index) Len() int {
	return len(x.faces)
}

// Has reports whether loc is registered.
func (x *Index) Has(loc geom.Loc) bool {
	_, ok := x.faces[loc]
	return ok
}

// facesOf computes the six descriptors for a row at loc with box b.
func facesOf(loc geom.Loc, b geom.Box) sixFaces {
	//nolint:gosec
	m := int32(loc.M)
	p0, p1 := b.P0, b.P1

	var f sixFaces
	f[geom.X][0] = face{m, p0.Y, p1.Y, p0.Z, p1.Z, p0.X}
	f[geom.X][1] = face{m, p0.Y, p1.Y, p0.Z, p1.Z, p1.X}
	f[geom.Y][0] = face{m, p0.X, p1.X, p0.Z, p1.Z, p0.Y}
	f[geom.Y][1] = face{m, p0.X, p1.X, p0.Z, p1.Z, p1.Y}
	f[geom.Z][0] = face{m, p0.X, p1.X, p0.Y, p1.Y, p0.Z}
	f[geom.Z][1] = face{m, p0.X, p1.X, p0.Y, p1.Y, p1.Z}
	return f
}

// Register adds the row at loc with box b to all six buckets.
// Registering an already present loc is a logic error and panics.
func (x *Index) Register(loc geom.Loc, b geom.Box) {
	if _, ok := x.faces[loc]; ok {
		panic("logic error, duplicate loc in fhx")
	}

	f := facesOf(loc, b)
	x.faces[loc] = f

	for ax := range 3 {
		x.add(x.neg[ax], f[ax][0], loc)
		x.add(x.pos[ax], f[ax][1], loc)
	}
}

// Unregister removes loc from all six buckets using the stored tuple and
// returns false if loc was not registered. Buckets that become empty are
// deleted to keep the maps compact.
func (x *Index) Unregister(loc geom.Loc) bool {
	f, ok := x.faces[loc]
	if !ok {
		return false
	}
	delete(x.faces, loc)

	for ax := range 3 {
		x.discard(x.neg[ax], f[ax][0], loc)
		x.discard(x.pos[ax], f[ax][1], loc)
	}
	return true
}

func (x *Index) add(m map[face]bucket, key face, loc geom.Loc) {
	s, ok := m[key]
	if !ok {
		s = mapset.NewThreadUnsafeSet[geom.Loc]()
		m[key] = s
	}
	s.Add(loc)
}

func (x *Index) discard(m map[face]bucket, key face, loc geom.Loc) {
	s, ok := m[key]
	if !ok {
		return
	}
	s.Remove(loc)
	if s.Cardinality() == 0 {
		delete(m, key)
	}
}

// Neighbor returns a row that can fuse with loc along ax: its positive
// face probed against the negative-side map first, then its negative face
// against the positive-side map. Any member other than loc itself is a
// valid candidate.
func (x *Index) Neighbor(loc geom.Loc, ax geom.Axis) (geom.Loc, bool) {
	f, ok := x.faces[loc]
	if !ok {
		return geom.Loc{}, false
	}

	if nb, ok := other(x.neg[ax][f[ax][1]], loc); ok {
		return nb, true
	}
	return other(x.pos[ax][f[ax][0]], loc)
}

// other returns any element of s different from self.
func other(s bucket, self geom.Loc) (nb geom.Loc, found bool) {
	if s == nil {
		return nb, false
	}
	s.Each(func(c geom.Loc) bool {
		if c == self {
			return false // keep going
		}
		nb, found = c, true
		return true // stop
	})
	return nb, found
}
