// Package combo finds sets of unit combos whose summed effect strength
// reaches a target while needing as few distinct units as possible.
package combo

import (
	"slices"
)

// MaxUnitsPerCombo is the number of positional unit slots in a combo record.
const MaxUnitsPerCombo = 5

// Row is one raw combo record as ingested. Empty unit slots are allowed.
type Row struct {
	Name   string
	Effect string
	Units  [MaxUnitsPerCombo]string
}

// Combo is a catalog entry with its effect label already parsed.
type Combo struct {
	Name       string   `json:"name"`
	RawEffect  string   `json:"effect"`
	EffectType string   `json:"effectType,omitempty"` // "" when the label is empty
	Strength   int      `json:"strength"`
	Units      []string `json:"units"`
}

// Catalog is the immutable, ordered set of combos a search runs against.
// It is safe for concurrent readers.
type Catalog struct {
	combos      []Combo
	effectTypes []string
}

// BuildCatalog normalizes raw rows into a Catalog. No row is rejected: missing
// fields produce degenerate combos with zero strength or no units.
func BuildCatalog(rows []Row) *Catalog {
	type parsed struct {
		effectType string
		strength   int
	}
	labels := make(map[string]parsed)
	seenTypes := make(map[string]bool)

	c := &Catalog{combos: make([]Combo, 0, len(rows))}
	for _, r := range rows {
		p, ok := labels[r.Effect]
		if !ok {
			p.effectType, p.strength = ParseEffect(r.Effect)
			labels[r.Effect] = p
		}

		units := make([]string, 0, MaxUnitsPerCombo)
		for _, u := range r.Units {
			if u != "" {
				units = append(units, u)
			}
		}

		c.combos = append(c.combos, Combo{
			Name:       r.Name,
			RawEffect:  r.Effect,
			EffectType: p.effectType,
			Strength:   p.strength,
			Units:      units,
		})

		if p.effectType != "" && !seenTypes[p.effectType] {
			seenTypes[p.effectType] = true
			c.effectTypes = append(c.effectTypes, p.effectType)
		}
	}
	slices.Sort(c.effectTypes)
	return c
}

// Len returns the number of combos in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.combos)
}

// Combos returns the catalog entries in ingestion order. Callers must not
// modify the returned slice.
func (c *Catalog) Combos() []Combo {
	if c == nil {
		return nil
	}
	return c.combos
}

// EffectTypes returns the sorted vocabulary of distinct, non-empty effect types.
func (c *Catalog) EffectTypes() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.effectTypes)
}

// HasEffectType reports whether t is in the catalog's vocabulary.
func (c *Catalog) HasEffectType(t string) bool {
	if c == nil {
		return false
	}
	_, found := slices.BinarySearch(c.effectTypes, t)
	return found
}
