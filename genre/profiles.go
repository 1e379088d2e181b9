package genre

// Band names match dsp/spectral.StandardBands.
const (
	bandSubBass    = "Sub Bass"
	bandLowBass    = "Low Bass"
	bandLowMids    = "Low Mids"
	bandMids       = "Mids"
	bandUpperMids  = "Upper Mids"
	bandHighs      = "Highs"
	bandBrilliance = "Brilliance"
)

// bands builds the per-band target map from seven optimal levels with a
// -6/+4 dB tolerance window, the width most full-mix references tolerate
// before a band reads as missing or piled-on.
func bands(sub, lowBass, lowMids, mids, upperMids, highs, brilliance float64) map[string]BandTarget {
	target := func(optimal float64) BandTarget {
		return BandTarget{MinDb: optimal - 6, MaxDb: optimal + 4, OptimalDb: optimal}
	}
	return map[string]BandTarget{
		bandSubBass:    target(sub),
		bandLowBass:    target(lowBass),
		bandLowMids:    target(lowMids),
		bandMids:       target(mids),
		bandUpperMids:  target(upperMids),
		bandHighs:      target(highs),
		bandBrilliance: target(brilliance),
	}
}

// profiles is the calibration table. Levels are frame-averaged band dB as
// produced by dsp/spectral.BandAnalyzer; loudness in LUFS; crest and PLR
// in dB.
var profiles = map[string]Profile{
	"techno": {
		ID: "techno", Name: "Techno",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-14, -12, -20, -18, -22, -26, -32),
	},
	"minimal-techno": {
		ID: "minimal-techno", Name: "Minimal Techno",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -12, Max: -8},
		Bands: bands(-15, -13, -22, -20, -24, -28, -34),
	},
	"dub-techno": {
		ID: "dub-techno", Name: "Dub Techno",
		CrestFactor: Range{Min: 10, Max: 14}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -13, Max: -9},
		Bands: bands(-13, -12, -18, -20, -26, -30, -36),
	},
	"industrial-techno": {
		ID: "industrial-techno", Name: "Industrial Techno",
		CrestFactor: Range{Min: 6, Max: 10}, PLR: Range{Min: 5, Max: 9}, LUFS: Range{Min: -8, Max: -6},
		Bands: bands(-13, -11, -17, -15, -18, -22, -28),
	},
	"melodic-techno": {
		ID: "melodic-techno", Name: "Melodic Techno",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-15, -13, -19, -16, -20, -24, -30),
	},
	"acid-techno": {
		ID: "acid-techno", Name: "Acid Techno",
		CrestFactor: Range{Min: 7, Max: 11}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -9, Max: -7},
		Bands: bands(-14, -11, -16, -15, -18, -24, -30),
	},
	"house": {
		ID: "house", Name: "House",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-15, -12, -18, -16, -20, -24, -30),
	},
	"deep-house": {
		ID: "deep-house", Name: "Deep House",
		CrestFactor: Range{Min: 10, Max: 14}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -12, Max: -9},
		Bands: bands(-13, -11, -18, -18, -23, -27, -33),
	},
	"tech-house": {
		ID: "tech-house", Name: "Tech House",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 7, Max: 10}, LUFS: Range{Min: -10, Max: -8},
		Bands: bands(-14, -12, -19, -17, -20, -24, -31),
	},
	"progressive-house": {
		ID: "progressive-house", Name: "Progressive House",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-15, -13, -18, -15, -19, -23, -29),
	},
	"acid-house": {
		ID: "acid-house", Name: "Acid House",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-14, -11, -16, -15, -19, -24, -31),
	},
	"uk-garage": {
		ID: "uk-garage", Name: "UK Garage",
		CrestFactor: Range{Min: 9, Max: 14}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-14, -12, -19, -16, -19, -23, -29),
	},
	"trance": {
		ID: "trance", Name: "Trance",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-15, -13, -18, -15, -18, -22, -28),
	},
	"psytrance": {
		ID: "psytrance", Name: "Psytrance",
		CrestFactor: Range{Min: 7, Max: 11}, PLR: Range{Min: 6, Max: 9}, LUFS: Range{Min: -9, Max: -7},
		Bands: bands(-13, -11, -18, -16, -19, -22, -27),
	},
	"dubstep": {
		ID: "dubstep", Name: "Dubstep",
		CrestFactor: Range{Min: 8, Max: 13}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-11, -11, -19, -17, -20, -24, -30),
	},
	"drum-and-bass": {
		ID: "drum-and-bass", Name: "Drum and Bass",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-12, -11, -19, -16, -19, -22, -28),
	},
	"jungle": {
		ID: "jungle", Name: "Jungle",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-12, -11, -18, -16, -19, -23, -29),
	},
	"breakbeat": {
		ID: "breakbeat", Name: "Breakbeat",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-13, -12, -18, -16, -19, -23, -29),
	},
	"hardcore": {
		ID: "hardcore", Name: "Hardcore",
		CrestFactor: Range{Min: 5, Max: 9}, PLR: Range{Min: 4, Max: 8}, LUFS: Range{Min: -8, Max: -5},
		Bands: bands(-12, -10, -16, -14, -17, -21, -27),
	},
	"hardstyle": {
		ID: "hardstyle", Name: "Hardstyle",
		CrestFactor: Range{Min: 6, Max: 10}, PLR: Range{Min: 5, Max: 9}, LUFS: Range{Min: -8, Max: -6},
		Bands: bands(-12, -10, -17, -15, -18, -22, -28),
	},
	"gabber": {
		ID: "gabber", Name: "Gabber",
		CrestFactor: Range{Min: 4, Max: 8}, PLR: Range{Min: 4, Max: 7}, LUFS: Range{Min: -7, Max: -5},
		Bands: bands(-11, -9, -15, -13, -16, -20, -26),
	},
	"electro": {
		ID: "electro", Name: "Electro",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 7, Max: 10}, LUFS: Range{Min: -10, Max: -8},
		Bands: bands(-13, -11, -18, -16, -19, -23, -29),
	},
	"idm": {
		ID: "idm", Name: "IDM",
		CrestFactor: Range{Min: 10, Max: 15}, PLR: Range{Min: 8, Max: 13}, LUFS: Range{Min: -14, Max: -9},
		Bands: bands(-15, -13, -19, -16, -19, -23, -28),
	},
	"big-room": {
		ID: "big-room", Name: "Big Room",
		CrestFactor: Range{Min: 6, Max: 10}, PLR: Range{Min: 5, Max: 9}, LUFS: Range{Min: -8, Max: -6},
		Bands: bands(-13, -11, -17, -15, -18, -22, -27),
	},
	"future-bass": {
		ID: "future-bass", Name: "Future Bass",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 7, Max: 10}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-13, -12, -18, -15, -18, -22, -27),
	},
	"synthwave": {
		ID: "synthwave", Name: "Synthwave",
		CrestFactor: Range{Min: 9, Max: 14}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -12, Max: -9},
		Bands: bands(-15, -13, -18, -15, -19, -23, -29),
	},
	"ambient": {
		ID: "ambient", Name: "Ambient",
		CrestFactor: Range{Min: 12, Max: 18}, PLR: Range{Min: 10, Max: 16}, LUFS: Range{Min: -18, Max: -12},
		Bands: bands(-18, -16, -19, -17, -22, -26, -31),
	},
	"downtempo": {
		ID: "downtempo", Name: "Downtempo",
		CrestFactor: Range{Min: 11, Max: 16}, PLR: Range{Min: 9, Max: 14}, LUFS: Range{Min: -15, Max: -10},
		Bands: bands(-15, -13, -18, -17, -21, -25, -31),
	},
	"trip-hop": {
		ID: "trip-hop", Name: "Trip Hop",
		CrestFactor: Range{Min: 10, Max: 15}, PLR: Range{Min: 9, Max: 13}, LUFS: Range{Min: -13, Max: -9},
		Bands: bands(-13, -12, -17, -16, -21, -25, -31),
	},
	"hip-hop": {
		ID: "hip-hop", Name: "Hip Hop",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-12, -11, -17, -15, -19, -23, -29),
	},
	"trap": {
		ID: "trap", Name: "Trap",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -10, Max: -7},
		Bands: bands(-11, -11, -18, -15, -18, -22, -27),
	},
	"lofi-hiphop": {
		ID: "lofi-hiphop", Name: "Lo-Fi Hip Hop",
		CrestFactor: Range{Min: 10, Max: 15}, PLR: Range{Min: 9, Max: 13}, LUFS: Range{Min: -15, Max: -11},
		Bands: bands(-14, -12, -16, -16, -22, -28, -36),
	},
	"rnb": {
		ID: "rnb", Name: "R&B",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -11, Max: -8},
		Bands: bands(-13, -12, -17, -15, -19, -23, -29),
	},
	"pop": {
		ID: "pop", Name: "Pop",
		CrestFactor: Range{Min: 8, Max: 12}, PLR: Range{Min: 7, Max: 11}, LUFS: Range{Min: -10, Max: -8},
		Bands: bands(-15, -13, -17, -14, -17, -21, -27),
	},
	"disco": {
		ID: "disco", Name: "Disco",
		CrestFactor: Range{Min: 10, Max: 15}, PLR: Range{Min: 9, Max: 13}, LUFS: Range{Min: -13, Max: -10},
		Bands: bands(-15, -12, -17, -15, -18, -22, -28),
	},
	"nu-disco": {
		ID: "nu-disco", Name: "Nu Disco",
		CrestFactor: Range{Min: 9, Max: 13}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -11, Max: -9},
		Bands: bands(-14, -12, -17, -15, -18, -22, -28),
	},
	"funk": {
		ID: "funk", Name: "Funk",
		CrestFactor: Range{Min: 11, Max: 16}, PLR: Range{Min: 9, Max: 14}, LUFS: Range{Min: -14, Max: -10},
		Bands: bands(-16, -12, -16, -14, -18, -22, -28),
	},
	"rock": {
		ID: "rock", Name: "Rock",
		CrestFactor: Range{Min: 9, Max: 14}, PLR: Range{Min: 8, Max: 12}, LUFS: Range{Min: -11, Max: -9},
		Bands: bands(-17, -13, -16, -13, -16, -21, -27),
	},
	"metal": {
		ID: "metal", Name: "Metal",
		CrestFactor: Range{Min: 7, Max: 11}, PLR: Range{Min: 6, Max: 10}, LUFS: Range{Min: -9, Max: -7},
		Bands: bands(-16, -12, -15, -12, -15, -20, -26),
	},
	"jazz": {
		ID: "jazz", Name: "Jazz",
		CrestFactor: Range{Min: 13, Max: 20}, PLR: Range{Min: 12, Max: 18}, LUFS: Range{Min: -20, Max: -14},
		Bands: bands(-19, -14, -16, -14, -18, -23, -29),
	},
	"classical": {
		ID: "classical", Name: "Classical",
		CrestFactor: Range{Min: 15, Max: 24}, PLR: Range{Min: 14, Max: 22}, LUFS: Range{Min: -26, Max: -18},
		Bands: bands(-22, -16, -16, -14, -19, -24, -30),
	},
	"chillout": {
		ID: "chillout", Name: "Chillout",
		CrestFactor: Range{Min: 11, Max: 16}, PLR: Range{Min: 10, Max: 14}, LUFS: Range{Min: -16, Max: -11},
		Bands: bands(-16, -14, -18, -16, -21, -25, -31),
	},
}
