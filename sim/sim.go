// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sim is the simulation layer on top of the partition engine:
// miners that carve the world, warehouses that hold the yield and
// factories that convert it. The layer talks to the engine through Split
// and Search only and treats rows as opaque values.
package sim

import "github.com/whoisthereitsme/voxels"

// World is the slice of the engine the simulation layer is allowed to
// touch. Both *voxels.Rows and *voxels.Queue satisfy it.
type World interface {
	Split(p0, p1 voxels.Point, mat string) (*voxels.Batch, error)
	Search(p voxels.Point) (string, int, voxels.Row, error)
}
