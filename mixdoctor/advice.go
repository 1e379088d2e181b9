package mixdoctor

import "fmt"

// bandHints maps each standard band name to qualitative advice for the
// too-loud and too-quiet cases. The wording is band-specific because the
// fix differs per region (a bloated low end calls for different moves than
// harsh upper mids).
var bandHints = map[string][2]string{
	"Sub Bass": {
		"sub bass is overpowering; high-pass non-bass elements and tame the region below 80 Hz",
		"sub bass is thin; layer a sine sub or boost the kick fundamental",
	},
	"Low Bass": {
		"low bass is crowding the mix; carve space around the kick with sidechain or EQ",
		"low bass lacks weight; reinforce the bassline between 80 and 250 Hz",
	},
	"Low Mids": {
		"low mids sound muddy; cut around 250-500 Hz on pads and sustained elements",
		"low mids are hollow; restore body around 300-400 Hz",
	},
	"Mids": {
		"mids are congested; thin out competing elements between 500 Hz and 2 kHz",
		"mids are recessed; bring lead and vocal presence forward",
	},
	"Upper Mids": {
		"upper mids are harsh; soften 2-4 kHz on percussive and distorted sources",
		"upper mids lack bite; add attack or saturation around 3 kHz",
	},
	"Highs": {
		"highs are piercing; de-ess and shelve down above 4 kHz",
		"highs are dull; open the top with a gentle shelf or brighter hats",
	},
	"Brilliance": {
		"air band is sizzly; reduce exciter or shelf gain above 10 kHz",
		"air band is missing; a subtle high shelf adds sheen and space",
	},
}

func bandMessage(band string, issue Issue, deviation float64) string {
	hints, ok := bandHints[band]
	switch issue {
	case IssueTooLoud:
		if ok {
			return fmt.Sprintf("%s (%.1f dB over optimal)", hints[0], deviation)
		}
		return fmt.Sprintf("%s is %.1f dB over optimal; reduce its level", band, deviation)
	case IssueTooQuiet:
		if ok {
			return fmt.Sprintf("%s (%.1f dB under optimal)", hints[1], -deviation)
		}
		return fmt.Sprintf("%s is %.1f dB under optimal; raise its level", band, -deviation)
	default:
		return fmt.Sprintf("%s sits within the genre target", band)
	}
}
