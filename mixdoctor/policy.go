package mixdoctor

// Scoring policy. These constants are calibration choices tuned against
// reference mixes, not derived quantities; change them together or not at
// all, since reports are compared across versions.
const (
	// Per-band score slope: points lost per dB of deviation from the
	// profile optimum.
	bandScoreSlope = 6.66

	// Dynamics penalty: points per dB of crest factor outside the target
	// range, capped.
	dynamicsPenaltyPerDb = 2.5
	dynamicsPenaltyCap   = 15.0

	// Loudness penalty: points per dB of LUFS outside the target range,
	// capped, plus a fixed penalty when true peak clips the -1 dBTP
	// ceiling.
	loudnessPenaltyPerDb = 2.5
	loudnessPenaltyCap   = 10.0
	truePeakCeilingDb    = -1.0
	truePeakPenalty      = 5.0

	// Stereo penalties: phase-cancellation risk, excessive width,
	// near-mono narrowness.
	phaseRiskCorrelation = 0.2
	phaseRiskPenalty     = 5.0
	excessiveWidth       = 0.9
	excessiveWidthPenalty = 3.0
	narrowWidth          = 0.1
	narrowWidthPenalty   = 2.0
)
