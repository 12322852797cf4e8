// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sim

// Warehouse is a capacity-bounded resource store. Capacity is 64 units
// per voxel of the warehouse footprint.
type Warehouse struct {
	cap uint64
	rez *Resources
}

// NewWarehouse returns a warehouse with the given footprint volume.
func NewWarehouse(volume uint64) *Warehouse {
	return &Warehouse{cap: volume * 64, rez: NewResources()}
}

// Cap returns the total capacity.
func (w *Warehouse) Cap() uint64 {
	return w.cap
}

// Free returns the remaining capacity.
func (w *Warehouse) Free() uint64 {
	return w.cap - w.rez.Total()
}

// Stock returns the stored amount of mat.
func (w *Warehouse) Stock(mat string) uint64 {
	return w.rez.Get(mat)
}

// Give stores as much of incoming as fits and returns the overflow.
func (w *Warehouse) Give(incoming Resource) (overflow Resource) {
	take, rest := incoming.Split(w.Free())
	w.rez.Add(take)
	return rest
}

// Take removes up to request.Amount of request.Mat from stock.
func (w *Warehouse) Take(request Resource) Resource {
	return w.rez.Take(request)
}
