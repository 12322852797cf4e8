// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxCarveInside(t *testing.T) {
	t.Parallel()

	// full-size world, the carve stays fully inside the seed row
	rows := testWorld(t, 1<<20, 1<<20, 1<<16)

	_, err := rows.Split(Point{X: 100, Y: 100, Z: 100}, Point{X: 200, Y: 150, Z: 130}, "AIR")
	require.NoError(t, err)

	air, err := rows.VolumeOf("AIR")
	require.NoError(t, err)
	require.Equal(t, uint64(100*50*30), air)
	require.Equal(t, uint64(150_000), air)

	_, err = rows.Merge(nil)
	require.NoError(t, err)

	nair, err := rows.NRows("AIR")
	require.NoError(t, err)
	require.Equal(t, 1, nair)

	// the border rows stay bounded, no fragmentation blow-up
	require.Less(t, rows.Total(), 16)

	require.Equal(t, rows.world.Volume(), rows.Volume())
	require.NoError(t, rows.CheckIntegrity())
}

func TestSpanningCarveOnGrid(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 2048, 2048, 512, WithSeed(""), WithCapacity(4096))
	buildGrid(t, rows, 20, 20, 8, 64)

	// optional collapse of the grid before carving
	_, err := rows.Merge(nil)
	require.NoError(t, err)

	p0 := Point{X: 13, Y: 13, Z: 13}
	p1 := Point{X: 200, Y: 140, Z: 70}
	_, err = rows.Split(p0, p1, "AIR")
	require.NoError(t, err)

	air, err := rows.VolumeOf("AIR")
	require.NoError(t, err)
	require.Equal(t, uint64(200-13)*uint64(140-13)*uint64(70-13), air)

	// the covered region keeps its volume
	require.Equal(t, uint64(20*64)*uint64(20*64)*uint64(8*64), rows.Volume())

	prng := rand.New(rand.NewSource(7))
	for k := 0; k < 500; k++ {
		p := Point{
			X: p0.X + uint32(prng.Intn(int(p1.X-p0.X))),
			Y: p0.Y + uint32(prng.Intn(int(p1.Y-p0.Y))),
			Z: p0.Z + uint32(prng.Intn(int(p1.Z-p0.Z))),
		}
		mat, _, row, err := rows.Search(p)
		require.NoError(t, err)
		require.Equal(t, "AIR", mat)
		require.True(t, row.Contains(p))
	}
}

func TestSpanningCarveUnmergedGrid(t *testing.T) {
	t.Parallel()

	// same carve but across the raw 64-cube grid, exercising the
	// axis-priority remainder recursion over many owner rows
	rows := testWorld(t, 512, 512, 512, WithSeed(""), WithCapacity(2048))
	buildGrid(t, rows, 4, 4, 4, 64)

	_, err := rows.Split(Point{X: 13, Y: 13, Z: 13}, Point{X: 200, Y: 140, Z: 70}, "AIR")
	require.NoError(t, err)

	air, err := rows.VolumeOf("AIR")
	require.NoError(t, err)
	require.Equal(t, uint64(187*127*57), air)

	require.Equal(t, uint64(256)*256*256, rows.Volume())
	require.NoError(t, rows.CheckIntegrity())
}

func TestSameMaterialSplitKeepsContent(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 1024, 1024, 1024)
	before := rows.Fingerprint()

	// carving STONE into STONE re-fuses to the identical row set,
	// only row ids may churn
	_, err := rows.Split(Point{X: 50, Y: 60, Z: 70}, Point{X: 180, Y: 190, Z: 200}, "STONE")
	require.NoError(t, err)

	require.Equal(t, before, rows.Fingerprint())

	n, err := rows.NRows("STONE")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSplitBatchSurvivors(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 1024, 1024, 1024)

	batch, err := rows.Split(Point{X: 10, Y: 10, Z: 10}, Point{X: 20, Y: 20, Z: 20}, "AIR")
	require.NoError(t, err)

	// every batch row must still be present in the store, verbatim
	for _, row := range batch.All() {
		got, err := rows.Get(rows.cat.Name(row.MIdx), row.RID)
		require.NoError(t, err)
		require.Equal(t, row, got)
	}

	// and the batch materials feed straight into a bounded merge
	mats := batch.Materials()
	require.NotEmpty(t, mats)

	_, err = rows.Merge(batch)
	require.NoError(t, err)
	require.NoError(t, rows.CheckIntegrity())
}

func TestSplitAgainstWorldEdge(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 64, 64, 64)

	// carve touching the world boundary on all max faces
	_, err := rows.Split(Point{X: 32, Y: 32, Z: 32}, Point{X: 64, Y: 64, Z: 64}, "AIR")
	require.NoError(t, err)

	air, err := rows.VolumeOf("AIR")
	require.NoError(t, err)
	require.Equal(t, uint64(32*32*32), air)
	require.NoError(t, rows.CheckIntegrity())

	// out of world carve is rejected untouched
	fp := rows.Fingerprint()
	_, err = rows.Split(Point{X: 32, Y: 32, Z: 32}, Point{X: 65, Y: 64, Z: 64}, "AIR")
	require.ErrorIs(t, err, ErrInvalidBox)
	require.Equal(t, fp, rows.Fingerprint())
}

func TestCarveWholeWorld(t *testing.T) {
	t.Parallel()

	rows := testWorld(t, 128, 128, 128)

	_, err := rows.Split(Point{}, Point{X: 128, Y: 128, Z: 128}, "AIR")
	require.NoError(t, err)

	nair, err := rows.NRows("AIR")
	require.NoError(t, err)
	require.Equal(t, 1, nair)

	nstone, err := rows.NRows("STONE")
	require.NoError(t, err)
	require.Zero(t, nstone)

	require.Equal(t, uint64(128*128*128), rows.Volume())
	require.NoError(t, rows.CheckIntegrity())
}
