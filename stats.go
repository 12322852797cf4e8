// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
)

// MatStats describes one material's share of the partition.
type MatStats struct {
	Name   string
	Rows   int
	Volume uint64
	Perc   float64
}

// Stats is a point-in-time summary of the store.
type Stats struct {
	Total     int
	Volume    uint64
	Bytes     datasize.ByteSize
	Materials []MatStats
}

// ReadStats summarizes the current partition: per-material row counts,
// volumes and percent of the summed row volume, plus the reserved store
// size.
func (r *Rows) ReadStats() Stats {
	s := Stats{
		Total:     r.total,
		Volume:    r.Volume(),
		Materials: make([]MatStats, 0, r.cat.Len()),
	}

	rowBytes := uint64(unsafe.Sizeof(Row{}))
	for m := range r.array {
		s.Bytes += datasize.ByteSize(uint64(cap(r.array[m])) * rowBytes)

		var vol uint64
		for i := range r.array[m] {
			vol += r.array[m][i].Volume()
		}
		perc := 0.0
		if s.Volume > 0 {
			perc = float64(vol) / float64(s.Volume) * 100
		}
		s.Materials = append(s.Materials, MatStats{
			Name:   r.cat.Name(m),
			Rows:   len(r.array[m]),
			Volume: vol,
			Perc:   perc,
		})
	}
	return s
}

// String renders the stats as a table.
func (s Stats) String() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "ROWS STATS:\n")
	fmt.Fprintf(b, "  TOTAL ROWS:   %d\n", s.Total)
	fmt.Fprintf(b, "  TOTAL VOLUME: %d\n", s.Volume)
	fmt.Fprintf(b, "  STORE BYTES:  %s\n", s.Bytes.HumanReadable())
	for _, m := range s.Materials {
		fmt.Fprintf(b, "  MAT=%-10s ROWS=%6d VOL=%12d PERC=%6.2f%%\n",
			m.Name, m.Rows, m.Volume, m.Perc)
	}
	return b.String()
}

func (r *Rows) String() string {
	return r.ReadStats().String()
}
