// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/whoisthereitsme/voxels/internal/bvh"
	"github.com/whoisthereitsme/voxels/internal/fhx"
	"github.com/whoisthereitsme/voxels/internal/geom"
)

// Rows is the partition engine: an exact, dynamic partition of the world
// box into material-labeled rows. In a seeded world, Split and Merge keep
// the whole world covered with no holes and no overlaps; the Insert and
// Remove primitives do not keep that invariant on their own.
//
// Rows is a single-writer, multiple-reader structure. At most one
// goroutine may perform a write operation (Insert/Remove/Split/Merge) at
// a time; readers observe a consistent snapshot only between writes. Use
// [Queue] for an async facade that serializes all operations onto one
// worker.
//
// A Rows must not be copied after first use.
type Rows struct {
	// used by -copylocks checker from `go vet`.
	_ noCopy

	cat   *Catalog
	world geom.Box

	// per-material contiguous row arrays, indexed by dense material index
	array [][]Row
	total int

	bvh *bvh.Tree
	fhx *fhx.Index

	// active batch recorder, nil outside split/merge
	rec map[geom.Loc]struct{}

	log     *zap.Logger
	capHint int
	seed    string
}

// New constructs an engine, seeds the configured seed material over the
// whole world box and registers it with both indexes.
func New(opts ...Option) (*Rows, error) {
	r := &Rows{
		cat: DefaultCatalog(),
		world: geom.Box{
			P1: Point{X: XMaxDefault, Y: YMaxDefault, Z: ZMaxDefault},
		},
		log:     zap.NewNop(),
		capHint: CapacityDefault,
		seed:    "STONE",
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	nmat := r.cat.Len()
	r.array = make([][]Row, nmat)
	for m := range r.array {
		r.array[m] = make([]Row, 0, r.capHint)
	}
	r.bvh = bvh.New(r.capHint)
	r.fhx = fhx.New(r.capHint)

	if r.seed != "" {
		m, ok := r.cat.Index(r.seed)
		if !ok {
			return nil, fmt.Errorf("%w: seed %q", ErrUnknownMaterial, r.seed)
		}
		r.insert(m, r.world, FlagDirty|FlagAlive)
	}

	r.log.Info("world constructed",
		zap.Uint32("xmax", r.world.P1.X),
		zap.Uint32("ymax", r.world.P1.Y),
		zap.Uint32("zmax", r.world.P1.Z),
		zap.String("seed", r.seed),
	)
	return r, nil
}

// World returns the fixed outer extent [0,XMAX) x [0,YMAX) x [0,ZMAX).
func (r *Rows) World() (p0, p1 Point) {
	return r.world.P0, r.world.P1
}

// Size returns the world extent.
func (r *Rows) Size() Size {
	return r.world.Size()
}

// Catalog returns the material catalog.
func (r *Rows) Catalog() *Catalog {
	return r.cat
}

// Total returns the number of rows over all materials.
func (r *Rows) Total() int {
	return r.total
}

// NRows returns the row count for one material.
func (r *Rows) NRows(mat string) (int, error) {
	m, err := r.matIndex(mat)
	if err != nil {
		return 0, err
	}
	return len(r.array[m]), nil
}

// Volume returns the total volume over all rows. By the partition
// invariant it equals the world volume.
func (r *Rows) Volume() uint64 {
	var total uint64
	for m := range r.array {
		for i := range r.array[m] {
			total += r.array[m][i].Volume()
		}
	}
	return total
}

// VolumeOf returns the summed volume of one material's rows.
func (r *Rows) VolumeOf(mat string) (uint64, error) {
	m, err := r.matIndex(mat)
	if err != nil {
		return 0, err
	}
	var total uint64
	for i := range r.array[m] {
		total += r.array[m][i].Volume()
	}
	return total, nil
}

// Get returns the row at (mat, i) by direct array lookup.
func (r *Rows) Get(mat string, i int) (Row, error) {
	m, err := r.matIndex(mat)
	if err != nil {
		return Row{}, err
	}
	if i < 0 || i >= len(r.array[m]) {
		return Row{}, fmt.Errorf("%w: %s[%d], nrows %d", ErrIndexOutOfRange, mat, i, len(r.array[m]))
	}
	return r.array[m][i], nil
}

// Search returns the material name, row index and row owning point p.
//
// It fails with [ErrNotFound] iff p lies outside the world box. An
// in-bounds miss means the partition invariant is broken and surfaces as
// [ErrPartitionViolated].
func (r *Rows) Search(p Point) (string, int, Row, error) {
	row, err := r.search(p)
	if err != nil {
		return "", 0, Row{}, err
	}
	return r.cat.Name(row.MIdx), row.RID, row, nil
}

func (r *Rows) search(p Point) (Row, error) {
	if !r.world.Contains(p) {
		return Row{}, fmt.Errorf("%w: point (%d,%d,%d) outside world", ErrNotFound, p.X, p.Y, p.Z)
	}

	loc, ok := r.bvh.Search(p)
	if !ok {
		return Row{}, fmt.Errorf("%w: no row at (%d,%d,%d)", ErrPartitionViolated, p.X, p.Y, p.Z)
	}

	row := r.array[loc.M][loc.I]
	if !row.Contains(p) {
		return Row{}, fmt.Errorf("%w: stale leaf at (%d,%d,%d)", ErrPartitionViolated, p.X, p.Y, p.Z)
	}
	return row, nil
}

// Insert appends a new row covering [p0, p1) with the given material and
// registers it with both indexes. The box must satisfy p0 < p1
// componentwise and lie within the world.
//
// Insert and Remove are primitives: they do not preserve the partition
// invariant on their own, Split and Merge do.
func (r *Rows) Insert(p0, p1 Point, mat string) (Row, error) {
	return r.InsertFlagged(p0, p1, mat, true, true)
}

// InsertFlagged is Insert with explicit dirty/alive flag overrides.
func (r *Rows) InsertFlagged(p0, p1 Point, mat string, dirty, alive bool) (Row, error) {
	m, err := r.matIndex(mat)
	if err != nil {
		return Row{}, err
	}
	b := geom.Box{P0: p0, P1: p1}
	if err := r.validBox(b); err != nil {
		return Row{}, err
	}

	var flags Flags
	if dirty {
		flags |= FlagDirty
	}
	if alive {
		flags |= FlagAlive
	}
	return r.insert(m, b, flags), nil
}

// insert is the unchecked primitive: append to the store, then register
// with BVH and FHX. Store mutation precedes index mutation.
func (r *Rows) insert(m int, b geom.Box, flags Flags) Row {
	mat := r.cat.Material(m)
	row := Row{
		P0:    b.P0,
		P1:    b.P1,
		Size:  b.Size(),
		RID:   len(r.array[m]),
		MIdx:  m,
		MID:   mat.ID,
		Flags: flags | matFlags(mat.Type),
	}

	r.array[m] = append(r.array[m], row)
	r.total++

	loc := row.Loc()
	r.bvh.Insert(loc, b)
	r.fhx.Register(loc, b)

	if r.rec != nil {
		r.rec[loc] = struct{}{}
	}
	return row
}

// Remove deletes the row identified by row's (material, index) handle.
// The handle must match the stored row, otherwise [ErrUnknownRow].
func (r *Rows) Remove(row Row) error {
	m, i := row.MIdx, row.RID
	if m < 0 || m >= len(r.array) || i < 0 || i >= len(r.array[m]) {
		return fmt.Errorf("%w: (%d,%d)", ErrUnknownRow, m, i)
	}
	stored := r.array[m][i]
	if stored.P0 != row.P0 || stored.P1 != row.P1 || stored.MID != row.MID {
		return fmt.Errorf("%w: (%d,%d) does not match stored row", ErrUnknownRow, m, i)
	}
	r.removeAt(geom.Loc{M: m, I: i})
	return nil
}

// removeAt deletes the row at loc with swap-with-last, never leaving a
// hole. The order is mandatory: the target and the moved last entry are
// unregistered under their pre-move identities before the copy, so the
// indexes never see two entries with the same identity.
func (r *Rows) removeAt(loc geom.Loc) {
	m, i := loc.M, loc.I
	last := len(r.array[m]) - 1

	if !r.bvh.Remove(loc) {
		panic("logic error, row missing from bvh")
	}
	if !r.fhx.Unregister(loc) {
		panic("logic error, row missing from fhx")
	}

	lastLoc := geom.Loc{M: m, I: last}
	if i != last {
		// unregister the moved row under its pre-move identity
		if !r.bvh.Remove(lastLoc) {
			panic("logic error, moved row missing from bvh")
		}
		if !r.fhx.Unregister(lastLoc) {
			panic("logic error, moved row missing from fhx")
		}

		moved := r.array[m][last]
		moved.RID = i
		r.array[m][i] = moved

		r.bvh.Insert(loc, moved.Box())
		r.fhx.Register(loc, moved.Box())
	}

	r.array[m] = r.array[m][:last]
	r.total--

	if r.rec != nil {
		delete(r.rec, loc)
		if i != last {
			if _, ok := r.rec[lastLoc]; ok {
				delete(r.rec, lastLoc)
				r.rec[loc] = struct{}{}
			}
		}
	}
}

// beginBatch activates the batch recorder unless an outer operation
// already owns it.
func (r *Rows) beginBatch() (owner bool) {
	if r.rec != nil {
		return false
	}
	r.rec = make(map[geom.Loc]struct{}, 32)
	return true
}

// endBatch snapshots the recorded survivors into a batch and deactivates
// the recorder. Nested calls with owner=false return nil and leave the
// outer recorder running.
func (r *Rows) endBatch(owner bool) *Batch {
	if !owner {
		return nil
	}
	b := newBatch(r.cat.Len())
	for loc := range r.rec {
		b.add(r.array[loc.M][loc.I])
	}
	r.rec = nil
	return b
}

func (r *Rows) matIndex(mat string) (int, error) {
	m, ok := r.cat.Index(mat)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, mat)
	}
	return m, nil
}

// validBox rejects boxes that are not p0 < p1 componentwise or that
// escape the world.
func (r *Rows) validBox(b geom.Box) error {
	if !b.Valid() {
		return fmt.Errorf("%w: empty or unsorted box", ErrInvalidBox)
	}
	if !r.world.ContainsBox(b) {
		return fmt.Errorf("%w: box outside world", ErrInvalidBox)
	}
	return nil
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
