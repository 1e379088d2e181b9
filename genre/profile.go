// Package genre is the static calibration table the Mix Doctor scores
// against: per-genre spectral balance, dynamics, and loudness targets.
// Pure data; the analysis core only reads it.
package genre

import "sort"

// BandTarget is the calibrated level window for one spectral band.
type BandTarget struct {
	MinDb     float64 `json:"min_db"`
	MaxDb     float64 `json:"max_db"`
	OptimalDb float64 `json:"optimal_db"`
}

// Range is an inclusive [Min, Max] target interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Profile is one genre's calibration record. Immutable after package init.
type Profile struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	CrestFactor Range                 `json:"crest_factor"` // dB
	PLR         Range                 `json:"plr"`          // peak-to-loudness ratio, dB
	LUFS        Range                 `json:"lufs"`         // integrated loudness
	Bands       map[string]BandTarget `json:"bands"`        // keyed by standard band name
}

// DefaultID is the profile used when a genre id is unknown.
const DefaultID = "techno"

// Lookup returns the profile for a case-sensitive genre id.
func Lookup(id string) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}

// LookupOrDefault returns the profile for id, falling back to the default
// profile for unknown ids.
func LookupOrDefault(id string) Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles[DefaultID]
}

// Default returns the fallback profile.
func Default() Profile {
	return profiles[DefaultID]
}

// IDs returns all known genre ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of calibrated genres.
func Count() int {
	return len(profiles)
}
