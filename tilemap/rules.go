package tilemap

import (
	"slices"
	"strings"
)

// Direction is one cardinal neighbour. Up is -y, Down is +y.
type Direction uint8

const (
	Right Direction = 1 << iota
	Left
	Up
	Down
)

var directionOffsets = []struct {
	dir Direction
	off Point
}{
	{Right, Point{X: 1, Y: 0}},
	{Left, Point{X: -1, Y: 0}},
	{Up, Point{X: 0, Y: -1}},
	{Down, Point{X: 0, Y: 1}},
}

// Signature is the set of cardinal directions holding a same-type neighbour.
// It is a bitmask, so the order neighbours are discovered in never matters.
type Signature uint8

func SignatureOf(dirs ...Direction) Signature {
	var s Signature
	for _, d := range dirs {
		s |= Signature(d)
	}
	return s
}

func (s Signature) Has(d Direction) bool { return s&Signature(d) != 0 }

func (s Signature) String() string {
	var parts []string
	if s.Has(Right) {
		parts = append(parts, "+x")
	}
	if s.Has(Left) {
		parts = append(parts, "-x")
	}
	if s.Has(Up) {
		parts = append(parts, "-y")
	}
	if s.Has(Down) {
		parts = append(parts, "+y")
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RuleTable maps neighbour signatures to variants. It is immutable once built.
type RuleTable struct {
	rules map[Signature]int
}

func NewRuleTable(rules map[Signature]int) RuleTable {
	copied := make(map[Signature]int, len(rules))
	for k, v := range rules {
		copied[k] = v
	}
	return RuleTable{rules: copied}
}

// DefaultRules is the nine-entry table: corners, edges and the fully
// enclosed centre.
func DefaultRules() RuleTable {
	return NewRuleTable(map[Signature]int{
		SignatureOf(Right, Down):           0,
		SignatureOf(Right, Down, Left):     1,
		SignatureOf(Left, Down):            2,
		SignatureOf(Left, Up, Down):        3,
		SignatureOf(Left, Up):              4,
		SignatureOf(Left, Up, Right):       5,
		SignatureOf(Right, Up):             6,
		SignatureOf(Right, Up, Down):       7,
		SignatureOf(Right, Down, Left, Up): 8,
	})
}

func (r RuleTable) Lookup(s Signature) (int, bool) {
	v, ok := r.rules[s]
	return v, ok
}

func (r RuleTable) Len() int { return len(r.rules) }

// TypeSet is an immutable set of tile types.
type TypeSet struct {
	types map[string]struct{}
}

func NewTypeSet(types ...string) TypeSet {
	m := make(map[string]struct{}, len(types))
	for _, t := range types {
		m[t] = struct{}{}
	}
	return TypeSet{types: m}
}

func (s TypeSet) Has(t string) bool {
	_, ok := s.types[t]
	return ok
}

// Types returns the members in sorted order.
func (s TypeSet) Types() []string {
	out := make([]string, 0, len(s.types))
	for t := range s.types {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Config is the per-map configuration: tile size and which types collide or
// autotile.
type Config struct {
	TileSize      int
	PhysicsTypes  TypeSet
	AutotileTypes TypeSet
	Rules         RuleTable
}

func DefaultConfig() Config {
	return Config{
		TileSize:      16,
		PhysicsTypes:  NewTypeSet("grass", "stone"),
		AutotileTypes: NewTypeSet("grass", "stone"),
		Rules:         DefaultRules(),
	}
}
