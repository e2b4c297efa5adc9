package binder

import (
	"sort"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// alignProfile resamples a profile-valued entry onto the window's timestamp
// index. Exact timestamp matches pass through; timestamps between two
// profile rows are linearly interpolated. There is no extrapolation: any
// window timestamp outside the profile's own coverage fails the technology
// with a ProfileCoverageError.
func alignProfile(tech string, entry model.CapacityFactorEntry, w *model.ResolvedWindow) ([]model.Observation, error) {
	profile := make([]model.Observation, len(entry.Profile))
	copy(profile, entry.Profile)
	sort.Slice(profile, func(i, j int) bool {
		return profile[i].Timestamp.Before(profile[j].Timestamp)
	})

	out := make([]model.Observation, 0, len(w.Timestamps))
	uncovered := 0
	for _, t := range w.Timestamps {
		v, ok := sampleAt(profile, t)
		if !ok {
			uncovered++
			continue
		}
		out = append(out, model.Observation{Timestamp: t, Value: v})
	}
	if uncovered > 0 {
		return nil, &model.ProfileCoverageError{Technology: tech, Year: entry.Year, Uncovered: uncovered}
	}
	return out, nil
}

// sampleAt evaluates the profile at t. Returns false when t lies outside
// [first, last] of the profile.
func sampleAt(profile []model.Observation, t time.Time) (float64, bool) {
	n := len(profile)
	if n == 0 {
		return 0, false
	}
	if t.Before(profile[0].Timestamp) || t.After(profile[n-1].Timestamp) {
		return 0, false
	}
	i := sort.Search(n, func(i int) bool {
		return !profile[i].Timestamp.Before(t)
	})
	if i < n && profile[i].Timestamp.Equal(t) {
		return profile[i].Value, true
	}
	// t is strictly between profile[i-1] and profile[i].
	lo, hi := profile[i-1], profile[i]
	span := hi.Timestamp.Sub(lo.Timestamp).Seconds()
	if span <= 0 {
		return lo.Value, true
	}
	frac := t.Sub(lo.Timestamp).Seconds() / span
	return lo.Value*(1-frac) + hi.Value*frac, true
}
