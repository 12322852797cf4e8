// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"

	"go.uber.org/zap"
)

// World limits: extents are powers of two so coordinates pack into
// 20/20/16 bits of a 64-bit word.
const (
	XMaxDefault = 1 << 20
	YMaxDefault = 1 << 20
	ZMaxDefault = 1 << 16

	XMaxLimit = 1 << 20
	YMaxLimit = 1 << 20
	ZMaxLimit = 1 << 16

	// CapacityDefault is the initial per-material array reserve.
	// Strictly performance, not correctness.
	CapacityDefault = 65536
)

// Option configures a [Rows] engine during [New].
type Option func(*Rows) error

// WithWorld sets the world extents. Each extent must be a power of two,
// X and Y at most 2^20, Z at most 2^16.
func WithWorld(xmax, ymax, zmax uint32) Option {
	return func(r *Rows) error {
		if !pow2(xmax) || !pow2(ymax) || !pow2(zmax) {
			return fmt.Errorf("%w: world extents must be powers of two", ErrInvalidBox)
		}
		if xmax > XMaxLimit || ymax > YMaxLimit || zmax > ZMaxLimit {
			return fmt.Errorf("%w: world extents exceed %d/%d/%d", ErrInvalidBox, XMaxLimit, YMaxLimit, ZMaxLimit)
		}
		r.world.P1 = Point{X: xmax, Y: ymax, Z: zmax}
		return nil
	}
}

// WithCatalog replaces the default material catalog.
func WithCatalog(c *Catalog) Option {
	return func(r *Rows) error {
		if c == nil || c.Len() == 0 {
			return fmt.Errorf("%w: nil catalog", ErrUnknownMaterial)
		}
		r.cat = c
		return nil
	}
}

// WithSeed sets the material assigned to the whole world box at
// construction. The empty string leaves the world unseeded; the engine
// then does not uphold the partition invariant until the caller has
// covered the world with Insert.
func WithSeed(mat string) Option {
	return func(r *Rows) error {
		r.seed = mat
		return nil
	}
}

// WithCapacity sets the initial per-material array reserve.
func WithCapacity(n int) Option {
	return func(r *Rows) error {
		if n < 1 {
			return fmt.Errorf("capacity hint must be positive, got %d", n)
		}
		r.capHint = n
		return nil
	}
}

// WithLogger sets the engine logger, default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Rows) error {
		if log == nil {
			log = zap.NewNop()
		}
		r.log = log
		return nil
	}
}

func pow2(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}
