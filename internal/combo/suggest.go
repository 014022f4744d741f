package combo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// SuggestEffectTypes returns up to three vocabulary entries close to query,
// best first. An exact (case-insensitive) match returns just that entry;
// substring matches rank ahead of edit-distance matches.
func SuggestEffectTypes(vocabulary []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, v := range vocabulary {
		lv := strings.ToLower(v)
		if lv == q {
			return []string{v}
		}
		if strings.Contains(lv, q) || strings.Contains(q, lv) {
			cands = append(cands, candidate{name: v, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(q, lv)
		if dist > distanceLimit(len(lv)) {
			continue
		}
		cands = append(cands, candidate{name: v, dist: dist})
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	out := make([]string, 0, maxSuggestions)
	for _, c := range cands {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
