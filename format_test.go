package main

import (
	"strings"
	"testing"

	"bc-combo-solver/internal/combo"
)

func sampleResult(effectType string) SearchResult {
	s := combo.Solution{
		Combos: []combo.ComboRef{
			{Name: "Lone Wolf", Effect: "Attack Up (S)", EffectType: "Attack Up", Strength: 1},
			{Name: "Flying Dragon", Effect: "Movement Speed Up (Sm)", EffectType: "Movement Speed Up", Strength: 1},
		},
		TotalStrength: 2,
		Units:         []string{"Axe Cat", "Cat"},
		UnitCount:     2,
		EffectTypes:   []string{"Attack Up", "Movement Speed Up"},
		ComboCount:    2,
	}
	return SearchResult{EffectType: effectType, Strength: 2, MaxUnits: 3, Count: 1, Solutions: []combo.Solution{s}}
}

func TestFormatResult(t *testing.T) {
	forms := combo.BuildHierarchy([]combo.FormRow{{First: "Cat", Evolved: "Macho Cat", True: "Macho Legs Cat"}})
	out := FormatResult(sampleResult(""), forms, false)

	for _, want := range []string{
		"Found 1 combination for all effect types (mixed combos allowed)",
		"Option 1",
		"Total Strength: 2 | Cats: 2 | Combos: 2 | Attack Up: 1 | Movement Speed Up: 1",
		"Active Combos:",
		"- Lone Wolf [Attack Up (S)]",
		"- Cat (or Macho Cat, Macho Legs Cat)",
		"- Axe Cat\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResultFiltered(t *testing.T) {
	out := FormatResult(sampleResult("Attack Up"), nil, false)
	if !strings.Contains(out, `Found 1 combination for "Attack Up"`) {
		t.Fatalf("missing status line:\n%s", out)
	}
	if strings.Contains(out, "Attack Up: 1") {
		t.Fatalf("breakdown should only show for unfiltered searches:\n%s", out)
	}
}

func TestFormatResultEmpty(t *testing.T) {
	res := SearchResult{EffectType: "Atack Up", Suggestions: []string{"Attack Up"}}
	out := FormatResult(res, nil, false)
	for _, want := range []string{
		`Found 0 combinations for "Atack Up"`,
		"No combinations found",
		"Did you mean: Attack Up?",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
