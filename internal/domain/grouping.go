package domain

import "fmt"

// GroupID identifies a user-defined cluster of bands. Zero means the band is
// unassigned; assigned bands carry 1..MaxGroups.
type GroupID int

// Unassigned is the zero GroupID.
const Unassigned GroupID = 0

// MaxGroups is the number of concurrent groups a user can maintain.
const MaxGroups = 3

// Grouping assigns each band to a group. The array representation keeps the
// one-group-per-band invariant structural: there is nowhere to record a
// second membership. Grouping is a value type; mutating operations return a
// new value so callers (and tests) never share state by accident.
type Grouping [NumBands]GroupID

// EmptyGrouping returns a grouping with every band unassigned.
func EmptyGrouping() Grouping {
	return Grouping{}
}

// DefaultGrouping returns the symmetric preset: poles in group 1,
// mid-latitudes in group 2, tropics in group 3.
func DefaultGrouping() Grouping {
	return Grouping{1, 2, 3, 3, 2, 1}
}

// Cycle advances one band through the fixed click cycle
// 1 → 2 → 3 → unassigned → 1 and returns the resulting grouping.
func (g Grouping) Cycle(band int) (Grouping, error) {
	if band < 0 || band >= NumBands {
		return g, fmt.Errorf("cycle band: id %d out of range [0,%d)", band, NumBands)
	}
	g[band] = (g[band] + 1) % (MaxGroups + 1)
	return g, nil
}

// Group returns the group a band currently belongs to.
func (g Grouping) Group(band int) GroupID {
	if band < 0 || band >= NumBands {
		return Unassigned
	}
	return g[band]
}

// BandsIn returns the ascending band ids owned by a group. Nil for
// Unassigned or a group with no members.
func (g Grouping) BandsIn(id GroupID) []int {
	if id == Unassigned {
		return nil
	}
	var bands []int
	for b, owner := range g {
		if owner == id {
			bands = append(bands, b)
		}
	}
	return bands
}

// NonEmptyGroups returns the ascending group ids that own at least one band.
func (g Grouping) NonEmptyGroups() []GroupID {
	var ids []GroupID
	for id := GroupID(1); id <= MaxGroups; id++ {
		if len(g.BandsIn(id)) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsDefault reports whether the grouping matches the default preset.
func (g Grouping) IsDefault() bool {
	return g == DefaultGrouping()
}
