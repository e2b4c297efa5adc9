package binder

import (
	"sort"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// BoundFactor is the capacity-factor statistic actually used for one
// technology in one run, after year selection and profile alignment.
type BoundFactor struct {
	Technology   string
	SourceYear   model.ModelYear
	Scalar       float64
	Profile      []model.Observation
	IsProfile    bool
	UsedFallback bool
	Provenance   string
}

// FallbackNote is the warning-level diagnostic recorded whenever the binder
// substitutes a different year's statistic. Never swallowed: the caller
// decides how loudly to surface it.
type FallbackNote struct {
	Technology    string
	RequestedYear model.ModelYear
	UsedYear      model.ModelYear
	Provenance    string
}

// BindResult maps technology ids to bound values plus the per-technology
// failures and fallback diagnostics accumulated along the way. A failure for
// one technology never blocks the others.
type BindResult struct {
	Factors   map[string]BoundFactor
	Fallbacks []FallbackNote
	Failures  []error
}

// Bind associates each required technology with the capacity-factor entry
// valid for the resolved window's year. An exact-year entry wins; otherwise
// the entry with the closest year is used and flagged as a fallback,
// carrying its original provenance note forward. Profile-valued entries are
// aligned to the window's timestamps.
//
// required is the technology set the run must cover (typically the
// archive's); a required technology with no entry for any year yields a
// MissingCapacityFactorError. Entries for technologies outside the required
// set still bind.
//
// Bind is stateless and never mutates its inputs.
func Bind(w *model.ResolvedWindow, year model.ModelYear, required []string, entries []model.CapacityFactorEntry) *BindResult {
	res := &BindResult{Factors: map[string]BoundFactor{}}

	byTech := map[string][]model.CapacityFactorEntry{}
	seen := map[string]bool{}
	techs := make([]string, 0)
	for _, tech := range required {
		if !seen[tech] {
			seen[tech] = true
			techs = append(techs, tech)
		}
	}
	for _, e := range entries {
		if !seen[e.Technology] {
			seen[e.Technology] = true
			techs = append(techs, e.Technology)
		}
		byTech[e.Technology] = append(byTech[e.Technology], e)
	}
	sort.Strings(techs)

	for _, tech := range techs {
		entry, ok := selectEntry(byTech[tech], year)
		if !ok {
			res.Failures = append(res.Failures, &model.MissingCapacityFactorError{Technology: tech, Year: year})
			continue
		}
		bound := BoundFactor{
			Technology: tech,
			SourceYear: entry.Year,
			Provenance: entry.Provenance,
		}
		if entry.Year != year {
			bound.UsedFallback = true
			res.Fallbacks = append(res.Fallbacks, FallbackNote{
				Technology:    tech,
				RequestedYear: year,
				UsedYear:      entry.Year,
				Provenance:    entry.Provenance,
			})
		}
		if entry.IsProfile() {
			aligned, err := alignProfile(tech, entry, w)
			if err != nil {
				res.Failures = append(res.Failures, err)
				continue
			}
			bound.IsProfile = true
			bound.Profile = aligned
		} else {
			bound.Scalar = entry.Value
		}
		res.Factors[tech] = bound
	}
	return res
}

// selectEntry picks the entry for year, or the closest available year.
// Ties between an earlier and a later year break toward the earlier one.
func selectEntry(entries []model.CapacityFactorEntry, year model.ModelYear) (model.CapacityFactorEntry, bool) {
	if len(entries) == 0 {
		return model.CapacityFactorEntry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		bd, ed := yearDistance(best.Year, year), yearDistance(e.Year, year)
		if ed < bd || (ed == bd && e.Year < best.Year) {
			best = e
		}
	}
	return best, true
}

func yearDistance(a, b model.ModelYear) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}
