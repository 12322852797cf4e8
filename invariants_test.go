// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPartitionProperties drives random split/merge sequences against a
// seeded world and validates the externally checkable invariants:
// coverage, disjointness, volume conservation, search-is-contain and
// merge idempotence.
func TestPartitionProperties(t *testing.T) {
	t.Parallel()

	const worldX, worldY, worldZ = 256, 256, 64

	rapid.Check(t, func(t *rapid.T) {
		rows, err := New(
			WithWorld(worldX, worldY, worldZ),
			WithCapacity(256),
		)
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		worldVolume := uint64(worldX) * worldY * worldZ

		mats := rows.Catalog().Names()
		nops := rapid.IntRange(1, 25).Draw(t, "nops")

		for op := 0; op < nops; op++ {
			if rapid.Float64Range(0, 1).Draw(t, "kind") < 0.85 {
				p0 := drawPoint(t, worldX, worldY, worldZ)
				p1 := drawPoint(t, worldX, worldY, worldZ)
				mat := rapid.SampledFrom(mats).Draw(t, "mat")

				if _, err := rows.Split(p0, p1, mat); err != nil {
					t.Fatalf("split: %v", err)
				}
			} else {
				if _, err := rows.Merge(nil); err != nil {
					t.Fatalf("merge: %v", err)
				}
			}
		}

		// volume conservation
		if got := rows.Volume(); got != worldVolume {
			t.Fatalf("volume not conserved: got %d, want %d", got, worldVolume)
		}

		// structural invariants: identities, cross-registration,
		// pairwise disjointness
		if err := rows.CheckIntegrity(); err != nil {
			t.Fatalf("integrity: %v", err)
		}

		// partition coverage and search-is-contain at random points
		for range 50 {
			p := drawPoint(t, worldX, worldY, worldZ)
			mat, rid, row, err := rows.Search(p)
			if err != nil {
				t.Fatalf("search %v: %v", p, err)
			}
			if !row.Contains(p) {
				t.Fatalf("search %v returned non-containing row %v", p, row)
			}
			if got := rows.Catalog().Name(row.MIdx); got != mat {
				t.Fatalf("search %v material mismatch: %s vs %s", p, mat, got)
			}
			if row.RID != rid {
				t.Fatalf("search %v index mismatch: %d vs %d", p, rid, row.RID)
			}
		}

		// merge is idempotent on content
		if _, err := rows.Merge(nil); err != nil {
			t.Fatalf("merge: %v", err)
		}
		fp := rows.Fingerprint()
		if _, err := rows.Merge(nil); err != nil {
			t.Fatalf("merge: %v", err)
		}
		if rows.Fingerprint() != fp {
			t.Fatal("second merge changed the row content")
		}
	})
}

// TestDisjointCarveVolumes carves disjoint random boxes of one material
// and checks that the per-material volume sums up exactly.
func TestDisjointCarveVolumes(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		rows, err := New(WithWorld(512, 512, 64), WithCapacity(256))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}

		// disjoint by construction: at most one box per 32-cell
		ncells := rapid.IntRange(1, 30).Draw(t, "ncells")
		used := make(map[[3]int]struct{})

		var want uint64
		for k := 0; k < ncells; k++ {
			cell := [3]int{
				rapid.IntRange(0, 15).Draw(t, "cx"),
				rapid.IntRange(0, 15).Draw(t, "cy"),
				rapid.IntRange(0, 1).Draw(t, "cz"),
			}
			if _, dup := used[cell]; dup {
				continue
			}
			used[cell] = struct{}{}

			p0 := Point{
				X: uint32(cell[0]*32 + rapid.IntRange(0, 8).Draw(t, "ox")),
				Y: uint32(cell[1]*32 + rapid.IntRange(0, 8).Draw(t, "oy")),
				Z: uint32(cell[2]*32 + rapid.IntRange(0, 8).Draw(t, "oz")),
			}
			size := Size{
				DX: uint32(rapid.IntRange(1, 20).Draw(t, "dx")),
				DY: uint32(rapid.IntRange(1, 20).Draw(t, "dy")),
				DZ: uint32(rapid.IntRange(1, 20).Draw(t, "dz")),
			}
			p1 := Point{X: p0.X + size.DX, Y: p0.Y + size.DY, Z: p0.Z + size.DZ}

			if _, err := rows.Split(p0, p1, "AIR"); err != nil {
				t.Fatalf("split: %v", err)
			}
			want += size.Volume()
		}

		got, err := rows.VolumeOf("AIR")
		if err != nil {
			t.Fatalf("volume: %v", err)
		}
		if got != want {
			t.Fatalf("AIR volume %d, want %d", got, want)
		}
	})
}

func drawPoint(t *rapid.T, xmax, ymax, zmax uint32) Point {
	return Point{
		X: uint32(rapid.IntRange(0, int(xmax)-1).Draw(t, "x")),
		Y: uint32(rapid.IntRange(0, int(ymax)-1).Draw(t, "y")),
		Z: uint32(rapid.IntRange(0, int(zmax)-1).Draw(t, "z")),
	}
}
