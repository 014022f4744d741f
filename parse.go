package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bc-combo-solver/internal/catalogio"
	"bc-combo-solver/internal/combo"
)

// Dataset is one loaded combos table plus the optional evolution forms.
// It is never modified after loading; reloads build a new Dataset.
type Dataset struct {
	Catalog  *combo.Catalog
	Forms    *combo.Hierarchy
	Sources  []string
	LoadedAt time.Time
}

// LoadDataset reads the combos table and, when catsPath is set, the cats table.
func LoadDataset(combosPath, catsPath string) (*Dataset, error) {
	if combosPath == "" {
		return nil, errors.New("no combos file configured")
	}
	cat, err := catalogio.LoadCombos(combosPath)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{Catalog: cat, Sources: []string{combosPath}, LoadedAt: time.Now()}

	if catsPath != "" {
		forms, err := catalogio.LoadCats(catsPath)
		if err != nil {
			return nil, err
		}
		ds.Forms = forms
		ds.Sources = append(ds.Sources, catsPath)
	}

	log.Info().
		Int("cats", ds.Forms.Len()).
		Int("combos", cat.Len()).
		Int("effectTypes", len(cat.EffectTypes())).
		Strs("sources", ds.Sources).
		Msg("Loaded data")
	return ds, nil
}

// datasetFromTables builds a Dataset from already parsed tables; cats may be nil.
func datasetFromTables(combos, cats *catalogio.Table) *Dataset {
	ds := &Dataset{
		Catalog:  combo.BuildCatalog(catalogio.ComboRows(combos)),
		LoadedAt: time.Now(),
	}
	if cats != nil {
		ds.Forms = combo.BuildHierarchy(catalogio.FormRows(cats))
	}
	return ds
}

// SearchResult is the outcome of one search, shared by every front end.
type SearchResult struct {
	EffectType  string           `json:"effectType,omitempty"`
	Strength    int              `json:"strength"`
	MaxUnits    int              `json:"maxUnits"`
	Count       int              `json:"count"`
	Solutions   []combo.Solution `json:"solutions"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Partial     bool             `json:"partial,omitempty"`
	TimeMs      int64            `json:"timeMs"`
}

// runSearch validates req, runs the ranked search and packages the result.
// A search that runs out of time returns what it found with Partial set.
func runSearch(ctx context.Context, ds *Dataset, req combo.Request, opts combo.Options, timeout time.Duration) (SearchResult, error) {
	res := SearchResult{EffectType: req.EffectType, Strength: req.TargetStrength, MaxUnits: req.MaxUnits}
	if err := req.Validate(); err != nil {
		return res, err
	}
	if req.EffectType != "" && !ds.Catalog.HasEffectType(req.EffectType) {
		res.Suggestions = combo.SuggestEffectTypes(ds.Catalog.EffectTypes(), req.EffectType)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx = log.Logger.WithContext(ctx)

	start := time.Now()
	solutions, err := combo.FindSolutions(ctx, ds.Catalog, req, opts)
	res.TimeMs = time.Since(start).Milliseconds()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		res.Partial = true
		log.Warn().Dur("timeout", timeout).Int("found", len(solutions)).Msg("search timed out, returning partial results")
	case err != nil:
		return res, fmt.Errorf("search: %w", err)
	}

	res.Solutions = solutions
	if res.Solutions == nil {
		res.Solutions = []combo.Solution{}
	}
	res.Count = len(res.Solutions)

	log.Info().
		Str("effectType", req.EffectType).
		Int("strength", req.TargetStrength).
		Int("maxUnits", req.MaxUnits).
		Int("found", res.Count).
		Int64("ms", res.TimeMs).
		Msg("search finished")
	return res, nil
}
