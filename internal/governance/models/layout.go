package models

import (
	"fmt"

	id "github.com/pewpola/dao-condominium/pkg/domain"
)

// Layout describes the physical shape of the community. A residence exists iff
// its block, floor and unit components all fall inside the layout.
//
// Invariants:
//   - Blocks >= 1, Floors in [1, 9], UnitsPerFloor in [1, 99]
//   - A Layout is fixed for the lifetime of an engine
type Layout struct {
	Blocks        int `json:"blocks"`
	Floors        int `json:"floors"`
	UnitsPerFloor int `json:"units_per_floor"`
}

// DefaultLayout is two blocks of five floors with five units each.
func DefaultLayout() Layout {
	return Layout{Blocks: 2, Floors: 5, UnitsPerFloor: 5}
}

// NewLayout validates layout dimensions.
func NewLayout(blocks, floors, units int) (Layout, error) {
	if blocks < 1 {
		return Layout{}, fmt.Errorf("layout needs at least one block, got %d", blocks)
	}
	if floors < 1 || floors > 9 {
		return Layout{}, fmt.Errorf("floors must be between 1 and 9, got %d", floors)
	}
	if units < 1 || units > 99 {
		return Layout{}, fmt.Errorf("units per floor must be between 1 and 99, got %d", units)
	}
	return Layout{Blocks: blocks, Floors: floors, UnitsPerFloor: units}, nil
}

// Contains reports whether the residence exists in this layout.
func (l Layout) Contains(r id.ResidenceID) bool {
	if r <= 0 {
		return false
	}
	block, floor, unit := r.Block(), r.Floor(), r.Unit()
	return block >= 1 && block <= l.Blocks &&
		floor >= 1 && floor <= l.Floors &&
		unit >= 1 && unit <= l.UnitsPerFloor
}

// Size returns the number of residences in the layout.
func (l Layout) Size() int {
	return l.Blocks * l.Floors * l.UnitsPerFloor
}
