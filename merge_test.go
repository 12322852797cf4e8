// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeBackToSeed(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 1024, 1024, 1024)
	prng := rand.New(rand.NewSource(1))

	// 50 disjoint same-material carves in separate 20-cells
	for k := 0; k < 50; k++ {
		cx := uint32(prng.Intn(40)) * 25
		cy := uint32(prng.Intn(40)) * 25
		cz := uint32(prng.Intn(40)) * 25
		p0 := Point{X: cx + 2, Y: cy + 2, Z: cz + 2}
		p1 := Point{
			X: p0.X + uint32(prng.Intn(20)) + 1,
			Y: p0.Y + uint32(prng.Intn(20)) + 1,
			Z: p0.Z + uint32(prng.Intn(20)) + 1,
		}
		_, err := rows.Split(p0, p1, "STONE")
		require.NoError(t, err)
	}

	_, err := rows.Merge(nil)
	require.NoError(t, err)

	nstone, err := rows.NRows("STONE")
	require.NoError(t, err)
	require.Equal(t, 1, nstone)

	nair, err := rows.NRows("AIR")
	require.NoError(t, err)
	require.Zero(t, nair)

	require.Equal(t, uint64(1024*1024*1024), rows.Volume())
}

func TestMergeIdempotence(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 512, 512, 512)
	prng := rand.New(rand.NewSource(2))

	for k := 0; k < 12; k++ {
		x := uint32(prng.Intn(400))
		y := uint32(prng.Intn(400))
		z := uint32(prng.Intn(400))
		_, err := rows.Split(
			Point{X: x, Y: y, Z: z},
			Point{X: x + uint32(prng.Intn(50)) + 1, Y: y + uint32(prng.Intn(50)) + 1, Z: z + uint32(prng.Intn(50)) + 1},
			"AIR",
		)
		require.NoError(t, err)
	}

	_, err := rows.Merge(nil)
	require.NoError(t, err)
	fp1 := rows.Fingerprint()
	total1 := rows.Total()

	_, err = rows.Merge(nil)
	require.NoError(t, err)
	require.Equal(t, fp1, rows.Fingerprint())
	require.Equal(t, total1, rows.Total())
}

func TestMergeVolumeMonotone(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 256, 256, 256)

	for _, p := range []Point{{X: 10, Y: 10, Z: 10}, {X: 50, Y: 50, Z: 50}, {X: 90, Y: 90, Z: 90}} {
		_, err := rows.Split(p, Point{X: p.X + 20, Y: p.Y + 20, Z: p.Z + 20}, "WATER")
		require.NoError(t, err)
	}

	before := rows.Volume()
	_, err := rows.Merge(nil)
	require.NoError(t, err)
	require.Equal(t, before, rows.Volume())
}

func TestMergePairSemantics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b [2]Point // p0, p1
		want bool
	}{
		{
			name: "touch x, identical y z",
			a:    [2]Point{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 8, Z: 8}},
			b:    [2]Point{{X: 4, Y: 0, Z: 0}, {X: 9, Y: 8, Z: 8}},
			want: true,
		},
		{
			name: "touch x, differing y span",
			a:    [2]Point{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 8, Z: 8}},
			b:    [2]Point{{X: 4, Y: 0, Z: 0}, {X: 9, Y: 6, Z: 8}},
			want: false,
		},
		{
			name: "separated on x",
			a:    [2]Point{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 8, Z: 8}},
			b:    [2]Point{{X: 5, Y: 0, Z: 0}, {X: 9, Y: 8, Z: 8}},
			want: false,
		},
		{
			name: "touch z, identical x y",
			a:    [2]Point{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 8, Z: 2}},
			b:    [2]Point{{X: 0, Y: 0, Z: 2}, {X: 4, Y: 8, Z: 5}},
			want: true,
		},
		{
			name: "touch on two axes",
			a:    [2]Point{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 8, Z: 8}},
			b:    [2]Point{{X: 4, Y: 8, Z: 0}, {X: 9, Y: 16, Z: 8}},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := Row{P0: tc.a[0], P1: tc.a[1], MIdx: 4}
			b := Row{P0: tc.b[0], P1: tc.b[1], MIdx: 4}
			_, got := mergeable(a, b)
			require.Equal(t, tc.want, got)

			// different materials never fuse
			b.MIdx = 0
			_, got = mergeable(a, b)
			require.False(t, got)
		})
	}
}

func TestMergeBatchRestriction(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 256, 256, 256, WithSeed(""), WithCapacity(64))

	// two fusible STONE rows and two fusible WATER rows
	mk := func(mat string, p0, p1 Point) Row {
		row, err := rows.Insert(p0, p1, mat)
		require.NoError(t, err)
		return row
	}
	mk("STONE", Point{}, Point{X: 8, Y: 8, Z: 8})
	mk("STONE", Point{X: 8}, Point{X: 16, Y: 8, Z: 8})
	w := mk("WATER", Point{Y: 16}, Point{X: 8, Y: 24, Z: 8})
	mk("WATER", Point{X: 8, Y: 16}, Point{X: 16, Y: 24, Z: 8})

	// a batch containing only WATER limits the merge to WATER
	batch := newBatch(rows.cat.Len())
	batch.add(w)

	_, err := rows.Merge(batch)
	require.NoError(t, err)

	nwater, err := rows.NRows("WATER")
	require.NoError(t, err)
	require.Equal(t, 1, nwater)

	nstone, err := rows.NRows("STONE")
	require.NoError(t, err)
	require.Equal(t, 2, nstone, "restricted merge must not touch STONE")

	// a full merge then collapses STONE too
	_, err = rows.Merge(nil)
	require.NoError(t, err)
	nstone, err = rows.NRows("STONE")
	require.NoError(t, err)
	require.Equal(t, 1, nstone)
}

func TestMergeSurvivorBatch(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 256, 256, 256, WithSeed(""), WithCapacity(64))

	for i := uint32(0); i < 4; i++ {
		_, err := rows.Insert(Point{X: i * 8}, Point{X: i*8 + 8, Y: 8, Z: 8}, "STONE")
		require.NoError(t, err)
	}

	out, err := rows.Merge(nil)
	require.NoError(t, err)

	// the four bars collapse into one survivor, reported in the batch
	require.Equal(t, 1, out.Len())
	got := out.All()[0]
	require.Equal(t, Point{}, got.P0)
	require.Equal(t, Point{X: 32, Y: 8, Z: 8}, got.P1)

	stored, err := rows.Get("STONE", got.RID)
	require.NoError(t, err)
	require.Equal(t, got, stored)
}
