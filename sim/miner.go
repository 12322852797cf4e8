// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sim

import (
	"fmt"

	"github.com/whoisthereitsme/voxels"
)

// Miner carves a fixed box of the world to AIR, either one voxel per
// step or one whole floor slab per step, and reports the mined yield.
type Miner struct {
	world World

	p0, p1 voxels.Point // half-open mining box
	floor  bool         // slab mode: one z-layer per step

	cur voxels.Point // next position to mine
}

// NewMiner returns a miner over the half-open box [p0, p1).
// With floor=true every step mines a full z-slab instead of one voxel.
func NewMiner(world World, p0, p1 voxels.Point, floor bool) (*Miner, error) {
	if p0.X >= p1.X || p0.Y >= p1.Y || p0.Z >= p1.Z {
		return nil, fmt.Errorf("degenerate mining box")
	}
	return &Miner{world: world, p0: p0, p1: p1, floor: floor, cur: p0}, nil
}

// Step mines the next voxel or slab: it looks up the material about to
// be removed, carves it to AIR and returns the yield per material.
// Stepping past the end of the box wraps around to the start.
func (mn *Miner) Step() ([]Resource, error) {
	q0, q1 := mn.next()

	yield, err := mn.survey(q0, q1)
	if err != nil {
		return nil, err
	}

	if _, err := mn.world.Split(q0, q1, "AIR"); err != nil {
		return nil, fmt.Errorf("mine [%v,%v): %w", q0, q1, err)
	}
	return yield, nil
}

// next returns the box to mine this step and advances the cursor.
func (mn *Miner) next() (q0, q1 voxels.Point) {
	if mn.floor {
		q0 = voxels.Point{X: mn.p0.X, Y: mn.p0.Y, Z: mn.cur.Z}
		q1 = voxels.Point{X: mn.p1.X, Y: mn.p1.Y, Z: mn.cur.Z + 1}

		mn.cur.Z++
		if mn.cur.Z >= mn.p1.Z {
			mn.cur.Z = mn.p0.Z
		}
		return q0, q1
	}

	q0 = mn.cur
	q1 = voxels.Point{X: q0.X + 1, Y: q0.Y + 1, Z: q0.Z + 1}

	mn.cur.X++
	if mn.cur.X >= mn.p1.X {
		mn.cur.X = mn.p0.X
		mn.cur.Y++
		if mn.cur.Y >= mn.p1.Y {
			mn.cur.Y = mn.p0.Y
			mn.cur.Z++
			if mn.cur.Z >= mn.p1.Z {
				mn.cur.Z = mn.p0.Z
			}
		}
	}
	return q0, q1
}

// survey looks up the material at q0 only and attributes the whole box
// volume to it. A box spanning several rows is
// attributed approximately; mining single voxels or slabs of a
// homogeneous region is exact.
func (mn *Miner) survey(q0, q1 voxels.Point) ([]Resource, error) {
	mat, _, _, err := mn.world.Search(q0)
	if err != nil {
		return nil, fmt.Errorf("survey %v: %w", q0, err)
	}
	if mat == "AIR" {
		return nil, nil // already mined
	}

	vol := uint64(q1.X-q0.X) * uint64(q1.Y-q0.Y) * uint64(q1.Z-q0.Z)
	return []Resource{{Mat: mat, Amount: vol}}, nil
}
