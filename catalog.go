// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package voxels

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// MaterialType classifies a material and determines the derived row flags.
type MaterialType uint8

const (
	Invisible MaterialType = iota
	Transparent
	Solid
	Indestructible
)

var typeNames = map[MaterialType]string{
	Invisible:      "invisible",
	Transparent:    "transparent",
	Solid:          "solid",
	Indestructible: "indestructible",
}

func (t MaterialType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MaterialType(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler for TOML round trips.
func (t MaterialType) MarshalText() ([]byte, error) {
	s, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: type %d", ErrUnknownMaterial, uint8(t))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MaterialType) UnmarshalText(text []byte) error {
	for typ, name := range typeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("%w: type %q", ErrUnknownMaterial, string(text))
}

// Material is one catalog entry. ID is opaque and stable across catalog
// versions, the dense index used for storage routing is the position in
// the catalog.
type Material struct {
	Name string       `toml:"name"`
	ID   uint64       `toml:"id"`
	Type MaterialType `toml:"type"`
}

// Catalog is a static bijection name <-> id <-> dense material index.
// It is immutable after construction and safe for concurrent readers.
type Catalog struct {
	mats   []Material
	byName map[string]int
	byID   map[uint64]int
}

// NewCatalog builds a catalog from an ordered list of materials.
// The list order defines the dense material indices 0..len-1.
func NewCatalog(mats ...Material) (*Catalog, error) {
	if len(mats) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrUnknownMaterial)
	}

	c := &Catalog{
		mats:   append([]Material(nil), mats...),
		byName: make(map[string]int, len(mats)),
		byID:   make(map[uint64]int, len(mats)),
	}
	for i, m := range c.mats {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: empty name at index %d", ErrUnknownMaterial, i)
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrUnknownMaterial, m.Name)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrUnknownMaterial, m.ID)
		}
		c.byName[m.Name] = i
		c.byID[m.ID] = i
	}
	return c, nil
}

// DefaultCatalog returns the built-in material set with its stable ids.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Material{Name: "AIR", ID: 16384 + 0, Type: Invisible},
		Material{Name: "WATER", ID: 32768 + 0, Type: Transparent},
		Material{Name: "LAVA", ID: 32768 + 1, Type: Transparent},
		Material{Name: "GLASS", ID: 32768 + 2, Type: Transparent},
		Material{Name: "STONE", ID: 65536 + 0, Type: Solid},
		Material{Name: "OBSIDIAN", ID: 65536 + 1, Type: Solid},
		Material{Name: "BEDROCK", ID: 4294967296 + 0, Type: Indestructible},
	)
	if err != nil {
		panic("logic error, default catalog invalid")
	}
	return c
}

// catalogFile is the TOML shape, an ordered array of material tables.
type catalogFile struct {
	Materials []Material `toml:"materials"`
}

// LoadCatalog reads a catalog from TOML:
//
//	[[materials]]
//	name = "STONE"
//	id = 65536
//	type = "solid"
//
// The array order defines the dense material indices.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(f.Materials...)
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.mats)
}

// Index returns the dense index for a material name.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.byName[name]
	return i, ok
}

// IndexByID returns the dense index for a stable material id.
func (c *Catalog) IndexByID(id uint64) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Material returns the entry at dense index i.
// It panics if i is out of range.
func (c *Catalog) Material(i int) Material {
	return c.mats[i]
}

// Name returns the material name at dense index i.
// It panics if i is out of range.
func (c *Catalog) Name(i int) string {
	return c.mats[i].Name
}

// Names returns all material names in dense index order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.mats))
	for i, m := range c.mats {
		names[i] = m.Name
	}
	return names
}
