package chord

// Quality identifies a chord quality template.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDom7
	QualityMaj7
	QualityMin7
	QualityDiminished
	QualityAugmented
	QualitySus4
	QualitySus2
)

// Template is one chord-quality chroma pattern. Templates are ordered by
// priority: on near-tie scores the simpler quality wins via a small
// per-index penalty.
type Template struct {
	Quality Quality   `json:"quality"`
	Name    string    `json:"name"`   // human-readable quality name
	Suffix  string    `json:"suffix"` // symbol suffix, e.g. "m7"
	Pattern []float64 `json:"pattern"`
}

// qualityTemplates lists the nine supported qualities in priority order.
var qualityTemplates = []Template{
	{
		Quality: QualityMajor, Name: "major", Suffix: "",
		Pattern: []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
	},
	{
		Quality: QualityMinor, Name: "minor", Suffix: "m",
		Pattern: []float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0},
	},
	{
		Quality: QualityDom7, Name: "dominant7", Suffix: "7",
		Pattern: []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0},
	},
	{
		Quality: QualityMaj7, Name: "major7", Suffix: "maj7",
		Pattern: []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1},
	},
	{
		Quality: QualityMin7, Name: "minor7", Suffix: "m7",
		Pattern: []float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 0},
	},
	{
		Quality: QualityDiminished, Name: "diminished", Suffix: "dim",
		Pattern: []float64{1, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0},
	},
	{
		Quality: QualityAugmented, Name: "augmented", Suffix: "aug",
		Pattern: []float64{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	},
	{
		Quality: QualitySus4, Name: "sus4", Suffix: "sus4",
		Pattern: []float64{1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0},
	},
	{
		Quality: QualitySus2, Name: "sus2", Suffix: "sus2",
		Pattern: []float64{1, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	},
}

// priorityPenalty nudges near-tie scores toward simpler qualities.
const priorityPenalty = 0.01

// QualityName returns the human-readable name for a quality.
func QualityName(q Quality) string {
	for _, t := range qualityTemplates {
		if t.Quality == q {
			return t.Name
		}
	}
	return "unknown"
}
