package blueprint

import "fmt"

// InstrumentEnhancement carries replacement prose for one instrumentation
// entry, matched on Element.
type InstrumentEnhancement struct {
	Element string `json:"element"`
	Timbre  string `json:"timbre,omitempty"`
	Device  string `json:"device,omitempty"`
}

// FXEnhancement carries replacement prose for one FX entry, matched on
// Artifact.
type FXEnhancement struct {
	Artifact       string `json:"artifact"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Enhancement is the partial payload an enrichment provider may return.
// Only prose fields and the explicit correction fields exist here; there is
// no way to express a change to any other measured value.
type Enhancement struct {
	GrooveDescription string                  `json:"groove_description,omitempty"`
	Instruments       []InstrumentEnhancement `json:"instruments,omitempty"`
	FXChain           []FXEnhancement         `json:"fx_chain,omitempty"`
	SecretSauce       string                  `json:"secret_sauce,omitempty"`

	// CorrectedBPM and CorrectedKey override the measured values only
	// when set, and the override is recorded in the correction flags.
	CorrectedBPM *float64 `json:"corrected_bpm,omitempty"`
	CorrectedKey *Key     `json:"corrected_key,omitempty"`
}

// MergeEnhancement applies an enhancement to a blueprint non-destructively
// and returns the merged copy plus the list of enhancement keys that
// matched nothing. The input blueprint is never mutated. Matching is by
// exact Element / Artifact string: the provider can only reference entries
// it was shown, and unmatched entries are reported rather than inserted. A
// nil enhancement returns an unmodified copy.
func MergeEnhancement(bp *ReconstructionBlueprint, enh *Enhancement) (*ReconstructionBlueprint, []string) {
	out := bp.Clone()
	if enh == nil {
		return out, nil
	}

	var unmatched []string

	if enh.GrooveDescription != "" {
		out.GrooveDescription = enh.GrooveDescription
	}
	if enh.SecretSauce != "" {
		out.SecretSauce = enh.SecretSauce
	}

	for _, ie := range enh.Instruments {
		idx := -1
		for i := range out.Instrumentation {
			if out.Instrumentation[i].Element == ie.Element {
				idx = i
				break
			}
		}
		if idx < 0 {
			unmatched = append(unmatched, fmt.Sprintf("instrument:%s", ie.Element))
			continue
		}
		if ie.Timbre != "" {
			out.Instrumentation[idx].Timbre = ie.Timbre
		}
		if ie.Device != "" {
			out.Instrumentation[idx].Device = ie.Device
		}
	}

	for _, fe := range enh.FXChain {
		idx := -1
		for i := range out.FXChain {
			if out.FXChain[i].Artifact == fe.Artifact {
				idx = i
				break
			}
		}
		if idx < 0 {
			unmatched = append(unmatched, fmt.Sprintf("fx:%s", fe.Artifact))
			continue
		}
		if fe.Recommendation != "" {
			out.FXChain[idx].Recommendation = fe.Recommendation
		}
	}

	if enh.CorrectedBPM != nil && *enh.CorrectedBPM > 0 {
		out.Telemetry.BPM = *enh.CorrectedBPM
		out.Telemetry.Corrections.BPMCorrected = true
	}
	if enh.CorrectedKey != nil && enh.CorrectedKey.Root != "" {
		out.Telemetry.Key = *enh.CorrectedKey
		out.Telemetry.Corrections.KeyCorrected = true
	}
	return out, unmatched
}
