// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns an order-independent content hash of the
// partition: the XOR of per-row xxhash sums over extent, material id and
// flags. Row indices are excluded, so the fingerprint is stable under
// the id churn of swap-remove; two partitions with the same row set hash
// equal regardless of storage order.
func (r *Rows) Fingerprint() uint64 {
	var sum uint64
	var buf [33]byte

	for m := range r.array {
		for i := range r.array[m] {
			row := &r.array[m][i]

			binary.LittleEndian.PutUint32(buf[0:], row.P0.X)
			binary.LittleEndian.PutUint32(buf[4:], row.P0.Y)
			binary.LittleEndian.PutUint32(buf[8:], row.P0.Z)
			binary.LittleEndian.PutUint32(buf[12:], row.P1.X)
			binary.LittleEndian.PutUint32(buf[16:], row.P1.Y)
			binary.LittleEndian.PutUint32(buf[20:], row.P1.Z)
			binary.LittleEndian.PutUint64(buf[24:], row.MID)
			buf[32] = byte(row.Flags)

			// XOR combine: the partition is duplicate-free by the
			// disjointness invariant, so cancellation cannot occur
			sum ^= xxhash.Sum64(buf[:])
		}
	}
	return sum
}
