package combo

import (
	"cmp"
	"context"
	"slices"
)

// Rank orders solutions by fewest units, then fewest combos, then highest
// total strength, keeping discovery order among full ties, and returns at
// most limit of them. The input slice is left untouched.
func Rank(solutions []Solution, limit int) []Solution {
	ranked := slices.Clone(solutions)
	slices.SortStableFunc(ranked, func(a, b Solution) int {
		if c := cmp.Compare(a.UnitCount, b.UnitCount); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ComboCount, b.ComboCount); c != 0 {
			return c
		}
		return cmp.Compare(b.TotalStrength, a.TotalStrength)
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FindSolutions runs Search and ranks its output. On cancellation the
// partial result is still ranked and returned alongside the error.
func FindSolutions(ctx context.Context, cat *Catalog, req Request, opts Options) ([]Solution, error) {
	opts = opts.normalized()
	found, err := Search(ctx, cat, req, opts)
	return Rank(found, opts.RankLimit), err
}
