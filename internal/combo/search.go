package combo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Search limits. Adjust Options to trade completeness for latency.
const (
	// HardMaxComboSize bounds how many combos one solution may stack.
	HardMaxComboSize = 5
	// DefaultSearchCap is the number of distinct solutions after which
	// enumeration stops. Results beyond it are never discovered.
	DefaultSearchCap = 100
	// DefaultRankLimit is how many ranked solutions are handed back.
	DefaultRankLimit = 50
)

// Options tunes a search. Zero fields take their defaults.
type Options struct {
	MaxComboSize int `yaml:"max_combo_size" json:"maxComboSize"`
	SearchCap    int `yaml:"search_cap" json:"searchCap"`
	RankLimit    int `yaml:"rank_limit" json:"rankLimit"`
}

// DefaultOptions returns the stock search limits.
func DefaultOptions() Options {
	return Options{
		MaxComboSize: HardMaxComboSize,
		SearchCap:    DefaultSearchCap,
		RankLimit:    DefaultRankLimit,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxComboSize <= 0 || o.MaxComboSize > HardMaxComboSize {
		o.MaxComboSize = d.MaxComboSize
	}
	if o.SearchCap <= 0 {
		o.SearchCap = d.SearchCap
	}
	if o.RankLimit <= 0 {
		o.RankLimit = d.RankLimit
	}
	return o
}

// ── Request / Solution ──────────────────────────────────────────────

// Request describes what a caller wants: an optional effect type, the total
// strength to reach and the largest number of distinct units allowed.
type Request struct {
	EffectType     string `json:"effectType"`
	TargetStrength int    `json:"strength"`
	MaxUnits       int    `json:"maxUnits"`
}

// Validate rejects budgets a search cannot interpret. Search itself never
// calls it; boundary layers do before handing a request over.
func (r Request) Validate() error {
	if r.TargetStrength < 0 {
		return fmt.Errorf("strength must be 0 or more, got %d", r.TargetStrength)
	}
	if r.MaxUnits < 1 {
		return fmt.Errorf("max units must be at least 1, got %d", r.MaxUnits)
	}
	return nil
}

// ComboRef is the part of a Combo a solution reports.
type ComboRef struct {
	Name       string `json:"name"`
	Effect     string `json:"effect"`
	EffectType string `json:"effectType,omitempty"`
	Strength   int    `json:"strength"`
}

// Solution is a feasible set of combos together with the units it needs.
type Solution struct {
	Combos        []ComboRef `json:"combos"`
	TotalStrength int        `json:"totalStrength"`
	Units         []string   `json:"units"`
	UnitCount     int        `json:"unitCount"`
	EffectTypes   []string   `json:"effectTypes"`
	ComboCount    int        `json:"comboCount"`
}

// EffectShare is the strength one effect type contributes to a solution.
type EffectShare struct {
	EffectType string `json:"effectType"`
	Strength   int    `json:"strength"`
}

// Breakdown sums strength per effect type, sorted by type. Combos without
// an effect type are left out.
func (s Solution) Breakdown() []EffectShare {
	sums := make(map[string]int, len(s.EffectTypes))
	for _, c := range s.Combos {
		if c.EffectType != "" {
			sums[c.EffectType] += c.Strength
		}
	}
	out := make([]EffectShare, 0, len(sums))
	for t, v := range sums {
		out = append(out, EffectShare{EffectType: t, Strength: v})
	}
	slices.SortFunc(out, func(a, b EffectShare) int { return strings.Compare(a.EffectType, b.EffectType) })
	return out
}

// ── Searcher ────────────────────────────────────────────────────────

type searcher struct {
	req  Request
	opts Options
	log  *zerolog.Logger

	seen    map[string]bool // sorted unit sets already accepted
	results []Solution
}

// Search enumerates combinations of matching combos, smallest first, and
// returns up to opts.SearchCap solutions whose units are pairwise distinct
// sets. The order is discovery order; use Rank for presentation order.
//
// The only error is ctx.Err(), returned together with whatever was found
// before the context ended.
func Search(ctx context.Context, cat *Catalog, req Request, opts Options) ([]Solution, error) {
	s := &searcher{
		req:  req,
		opts: opts.normalized(),
		log:  zerolog.Ctx(ctx),
		seen: make(map[string]bool),
	}
	return s.run(ctx, s.candidates(cat))
}

// candidates filters the catalog by effect type and orders it strongest first.
func (s *searcher) candidates(cat *Catalog) []Combo {
	var pool []Combo
	for _, c := range cat.Combos() {
		if s.req.EffectType == "" || c.EffectType == s.req.EffectType {
			pool = append(pool, c)
		}
	}
	slices.SortStableFunc(pool, func(a, b Combo) int { return b.Strength - a.Strength })
	return pool
}

func (s *searcher) run(ctx context.Context, pool []Combo) ([]Solution, error) {
	start := time.Now()
	maxK := min(s.opts.MaxComboSize, len(pool))

	for k := 1; k <= maxK; k++ {
		visited := 0
		stop := false
		for combos := range Combinations(pool, k) {
			if err := ctx.Err(); err != nil {
				s.log.Debug().Int("k", k).Int("found", len(s.results)).Msg("search interrupted")
				return s.results, err
			}
			visited++
			if s.visit(combos) {
				stop = true
				break
			}
		}
		s.log.Debug().
			Int("k", k).
			Int("visited", visited).
			Int("found", len(s.results)).
			Msg("combo size searched")
		if stop {
			s.log.Info().
				Int("cap", s.opts.SearchCap).
				Int("k", k).
				Dur("elapsed", time.Since(start)).
				Msg("search cap reached")
			break
		}
	}
	return s.results, nil
}

// visit tests one combination and records it when feasible and new. It
// reports true once the search cap is reached.
func (s *searcher) visit(combos []Combo) bool {
	total := 0
	for _, c := range combos {
		total += c.Strength
	}
	if total < s.req.TargetStrength {
		return false
	}

	unitSet := make(map[string]struct{})
	typeSet := make(map[string]struct{})
	for _, c := range combos {
		for _, u := range c.Units {
			unitSet[u] = struct{}{}
		}
		if c.EffectType != "" {
			typeSet[c.EffectType] = struct{}{}
		}
	}
	if len(unitSet) > s.req.MaxUnits {
		return false
	}

	units := sortedKeys(unitSet)
	key := strings.Join(units, "\x00")
	if s.seen[key] {
		return false
	}
	s.seen[key] = true

	refs := make([]ComboRef, len(combos))
	for i, c := range combos {
		refs[i] = ComboRef{Name: c.Name, Effect: c.RawEffect, EffectType: c.EffectType, Strength: c.Strength}
	}
	s.results = append(s.results, Solution{
		Combos:        refs,
		TotalStrength: total,
		Units:         units,
		UnitCount:     len(units),
		EffectTypes:   sortedKeys(typeSet),
		ComboCount:    len(combos),
	})
	return len(s.results) >= s.opts.SearchCap
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
