package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bc-combo-solver/internal/combo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// statusLine summarizes a result the way the result page header does.
func statusLine(res SearchResult) string {
	scope := "for all effect types (mixed combos allowed)"
	if res.EffectType != "" {
		scope = fmt.Sprintf("for %q", res.EffectType)
	}
	line := fmt.Sprintf("Found %d %s %s", res.Count, plural(res.Count, "combination"), scope)
	if res.Partial {
		line += " (search timed out, results incomplete)"
	}
	return line
}

// formHint lists the higher forms that also satisfy unit, if any are known.
func formHint(forms *combo.Hierarchy, unit string) string {
	f := forms.Forms(unit)
	if len(f) < 2 {
		return ""
	}
	return " (or " + strings.Join(f[1:], ", ") + ")"
}

// FormatResult renders a search result as text cards, one per solution.
// Effect breakdowns are shown only for unfiltered searches.
func FormatResult(res SearchResult, forms *combo.Hierarchy, styled bool) string {
	header := func(s string) string {
		if styled {
			return headerStyle.Render(s)
		}
		return s
	}
	stats := func(s string) string {
		if styled {
			return statStyle.Render(s)
		}
		return s
	}

	var b strings.Builder
	b.WriteString(statusLine(res))
	b.WriteString("\n")

	if res.Count == 0 {
		b.WriteString("No combinations found for the selected criteria. Try adjusting your parameters.\n")
		if len(res.Suggestions) > 0 {
			fmt.Fprintf(&b, "Did you mean: %s?\n", strings.Join(res.Suggestions, ", "))
		}
		return b.String()
	}

	for i, s := range res.Solutions {
		b.WriteString("\n")
		b.WriteString(header(fmt.Sprintf("Option %d", i+1)))
		b.WriteString("\n")

		parts := []string{
			fmt.Sprintf("Total Strength: %d", s.TotalStrength),
			fmt.Sprintf("Cats: %d", s.UnitCount),
			fmt.Sprintf("Combos: %d", s.ComboCount),
		}
		if res.EffectType == "" {
			for _, share := range s.Breakdown() {
				parts = append(parts, fmt.Sprintf("%s: %d", share.EffectType, share.Strength))
			}
		}
		fmt.Fprintf(&b, "  %s\n", stats(strings.Join(parts, " | ")))

		fmt.Fprintf(&b, "  Active %s:\n", plural(s.ComboCount, "Combo"))
		for _, c := range s.Combos {
			fmt.Fprintf(&b, "    - %s [%s]\n", c.Name, c.Effect)
		}

		b.WriteString("  Required Cats:\n")
		if len(s.Units) == 0 {
			b.WriteString("    (none)\n")
		}
		for _, u := range s.Units {
			fmt.Fprintf(&b, "    - %s%s\n", u, formHint(forms, u))
		}
	}
	return b.String()
}
