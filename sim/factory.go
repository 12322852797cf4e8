// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sim

// Recipe converts input materials into output materials every Ticks
// ticks, provided the warehouse can supply the inputs.
type Recipe struct {
	Ins   map[string]uint64
	Outs  map[string]uint64
	Ticks int

	tick int
}

// ready advances the recipe clock and reports whether a production
// cycle is due.
func (rc *Recipe) ready() bool {
	rc.tick++
	if rc.tick >= rc.Ticks {
		rc.tick = 0
		return true
	}
	return false
}

// Factory runs one recipe against one warehouse.
type Factory struct {
	recipe    *Recipe
	warehouse *Warehouse

	produced uint64
}

// NewFactory returns a factory producing recipe out of warehouse stock.
func NewFactory(recipe *Recipe, warehouse *Warehouse) *Factory {
	return &Factory{recipe: recipe, warehouse: warehouse}
}

// Produced returns the number of completed production cycles.
func (f *Factory) Produced() uint64 {
	return f.produced
}

// Update advances one tick and produces when the recipe is due and the
// warehouse stock suffices. Inputs are consumed before outputs are
// stored; output overflow beyond warehouse capacity is discarded.
func (f *Factory) Update() bool {
	if !f.recipe.ready() || !f.enough() {
		return false
	}

	for mat, amount := range f.recipe.Ins {
		f.warehouse.Take(Resource{Mat: mat, Amount: amount})
	}
	for mat, amount := range f.recipe.Outs {
		f.warehouse.Give(Resource{Mat: mat, Amount: amount})
	}
	f.produced++
	return true
}

func (f *Factory) enough() bool {
	for mat, amount := range f.recipe.Ins {
		if f.warehouse.Stock(mat) < amount {
			return false
		}
	}
	return true
}
