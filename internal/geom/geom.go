// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package geom provides the integer geometry vocabulary shared by the
// engine and its spatial indexes: points, half-open boxes and axis math.
//
// All boxes are half-open, [P0, P1) on every axis, with unsigned integer
// coordinates. Volumes are computed in uint64, the world limits
// (2^20 x 2^20 x 2^16) guarantee no overflow.
package geom

// Axis enumerates the three world axes.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

// Axes is the fixed iteration order used by merge passes.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "?"
}

// Point is an integer position in the world box.
type Point struct {
	X, Y, Z uint32
}

// Axis returns the coordinate on the given axis.
func (p Point) Axis(a Axis) uint32 {
	switch a {
	case X:
		return p.X
	case Y:
		return p.Y
	}
	return p.Z
}

// Min returns the componentwise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{min(p.X, q.X), min(p.Y, q.Y), min(p.Z, q.Z)}
}

// Max returns the componentwise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{max(p.X, q.X), max(p.Y, q.Y), max(p.Z, q.Z)}
}

// Size is an extent, the componentwise difference P1-P0 of a box.
type Size struct {
	DX, DY, DZ uint32
}

// Volume returns DX*DY*DZ in uint64.
func (s Size) Volume() uint64 {
	return uint64(s.DX) * uint64(s.DY) * uint64(s.DZ)
}

// Box is a half-open axis-aligned box [P0, P1).
type Box struct {
	P0, P1 Point
}

// MakeBox returns the box spanned by p and q with sorted corners,
// p0 <= p1 on every axis.
func MakeBox(p, q Point) Box {
	return Box{P0: p.Min(q), P1: p.Max(q)}
}

// Size returns the extent of b.
func (b Box) Size() Size {
	return Size{b.P1.X - b.P0.X, b.P1.Y - b.P0.Y, b.P1.Z - b.P0.Z}
}

// Volume returns the volume of b, 0 for empty boxes.
func (b Box) Volume() uint64 {
	if b.Empty() {
		return 0
	}
	return b.Size().Volume()
}

// Empty reports whether b covers no point, i.e. is degenerate on any axis.
func (b Box) Empty() bool {
	return b.P0.X >= b.P1.X || b.P0.Y >= b.P1.Y || b.P0.Z >= b.P1.Z
}

// Valid reports whether p0 < p1 holds componentwise.
func (b Box) Valid() bool {
	return !b.Empty()
}

// Contains reports whether p lies in the half-open box.
func (b Box) Contains(p Point) bool {
	return b.P0.X <= p.X && p.X < b.P1.X &&
		b.P0.Y <= p.Y && p.Y < b.P1.Y &&
		b.P0.Z <= p.Z && p.Z < b.P1.Z
}

// ContainsBox reports whether o lies entirely within b.
func (b Box) ContainsBox(o Box) bool {
	return b.P0.X <= o.P0.X && o.P1.X <= b.P1.X &&
		b.P0.Y <= o.P0.Y && o.P1.Y <= b.P1.Y &&
		b.P0.Z <= o.P0.Z && o.P1.Z <= b.P1.Z
}

// Union returns the bounding box of b and o.
func (b Box) Union(o Box) Box {
	return Box{P0: b.P0.Min(o.P0), P1: b.P1.Max(o.P1)}
}

// Intersect returns the intersection of b and o and whether it is non-empty.
func (b Box) Intersect(o Box) (Box, bool) {
	q := Box{P0: b.P0.Max(o.P0), P1: b.P1.Min(o.P1)}
	if q.Empty() {
		return Box{}, false
	}
	return q, true
}

// Overlaps reports whether b and o share at least one point.
func (b Box) Overlaps(o Box) bool {
	_, ok := b.Intersect(o)
	return ok
}

// Span returns the half-open interval of b on the given axis.
func (b Box) Span(a Axis) (lo, hi uint32) {
	return b.P0.Axis(a), b.P1.Axis(a)
}

// Loc identifies a row inside the store: material index and row index.
type Loc struct {
	M, I int
}
