// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package voxels maintains a dynamic, exact partition of a large integer
// 3D volume into axis-aligned, material-labeled boxes called rows. The
// world box is fully covered with no holes and no overlaps at all times,
// and a single row can stand for an arbitrarily large homogeneous
// region, so cost scales with the number of rows, not the volume.
//
// Three tightly coupled subsystems carry the engine:
//
//   - the row store: per-material contiguous arrays of row records with
//     stable (material, index) handles and swap-with-last removal
//   - the BVH: a dynamic bounding-volume hierarchy resolving points to
//     the unique owning row in expected O(log n)
//   - the FHX merge index: per-axis face-hash maps that find an adjacent
//     same-material row with identical orthogonal extents in O(1)
//
// The public operations (Insert, Remove, Split, Merge, Search, Get,
// Volume) are thin orchestrators over these three and preserve the
// partition invariant across all error paths. Split carves a sub-box to
// a new material through a 27-cell cut plus axis-priority recursion;
// Merge fuses fusible neighbor pairs to fixed-point.
//
// The engine is single-writer, multiple-reader; [Queue] provides an
// async facade that serializes all operations onto one worker.
package voxels
