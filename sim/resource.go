// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sim

import "fmt"

// Resource is an amount of one material.
type Resource struct {
	Mat    string
	Amount uint64
}

// Split divides r into a part of at most value and the remainder.
func (r Resource) Split(value uint64) (part, rest Resource) {
	take := min(r.Amount, value)
	return Resource{Mat: r.Mat, Amount: take}, Resource{Mat: r.Mat, Amount: r.Amount - take}
}

func (r Resource) String() string {
	return fmt.Sprintf("%s x%d", r.Mat, r.Amount)
}

// Resources is a per-material amount ledger.
type Resources struct {
	rez map[string]uint64
}

// NewResources returns an empty ledger.
func NewResources() *Resources {
	return &Resources{rez: make(map[string]uint64)}
}

// Get returns the stored amount of mat.
func (rs *Resources) Get(mat string) uint64 {
	return rs.rez[mat]
}

// Add ingests a resource.
func (rs *Resources) Add(r Resource) {
	if r.Amount > 0 {
		rs.rez[r.Mat] += r.Amount
	}
}

// Take removes up to r.Amount of r.Mat and returns what was taken.
func (rs *Resources) Take(r Resource) Resource {
	got := min(rs.rez[r.Mat], r.Amount)
	rs.rez[r.Mat] -= got
	if rs.rez[r.Mat] == 0 {
		delete(rs.rez, r.Mat)
	}
	return Resource{Mat: r.Mat, Amount: got}
}

// Total returns the summed amount over all materials.
func (rs *Resources) Total() uint64 {
	var total uint64
	for _, n := range rs.rez {
		total += n
	}
	return total
}
