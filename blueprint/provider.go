package blueprint

import (
	"context"
	"time"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/logging"
)

// Provider is the closed set of analysis backends. Capabilities are
// explicit queries, never inferred from which methods happen to exist.
type Provider interface {
	// Name identifies the provider in Meta and correction flags.
	Name() string

	// Available reports whether the provider can currently serve
	// requests (model loaded, credentials present).
	Available() bool

	// SupportsBufferAnalysis reports whether Analyze works on raw
	// decoded buffers, as opposed to enriching an existing blueprint.
	SupportsBufferAnalysis() bool

	// Analyze produces a blueprint for the buffer.
	Analyze(ctx context.Context, buf *audio.Buffer, opts Options) (*ReconstructionBlueprint, error)
}

// LocalProvider runs the in-process DSP pipeline. It is always available
// and performs no I/O.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider { return &LocalProvider{} }

func (p *LocalProvider) Name() string                 { return "local" }
func (p *LocalProvider) Available() bool              { return true }
func (p *LocalProvider) SupportsBufferAnalysis() bool { return true }

func (p *LocalProvider) Analyze(ctx context.Context, buf *audio.Buffer, opts Options) (*ReconstructionBlueprint, error) {
	return Assemble(ctx, buf, opts)
}

// EnrichFunc calls an external service with a locally measured blueprint
// and returns prose enhancements. Implementations live outside this module;
// the core only defines the contract.
type EnrichFunc func(ctx context.Context, bp *ReconstructionBlueprint) (*Enhancement, error)

// DefaultEnrichTimeout bounds one enrichment round trip. Past it the
// provider fails closed to the local-only blueprint.
const DefaultEnrichTimeout = 120 * time.Second

// CloudProvider layers text enrichment over the local pipeline. Every
// measured number still comes from the local analysis; the cloud call can
// only replace prose and set explicit corrections, and any failure
// (timeout, transport error, nil response) degrades silently to the local
// result.
type CloudProvider struct {
	name    string
	enrich  EnrichFunc
	timeout time.Duration
	local   *LocalProvider
}

// NewCloudProvider wraps an enrichment call under the given provider name.
// A zero timeout uses DefaultEnrichTimeout.
func NewCloudProvider(name string, enrich EnrichFunc, timeout time.Duration) *CloudProvider {
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	return &CloudProvider{name: name, enrich: enrich, timeout: timeout, local: NewLocalProvider()}
}

func (p *CloudProvider) Name() string                 { return p.name }
func (p *CloudProvider) Available() bool              { return p.enrich != nil }
func (p *CloudProvider) SupportsBufferAnalysis() bool { return false }

func (p *CloudProvider) Analyze(ctx context.Context, buf *audio.Buffer, opts Options) (*ReconstructionBlueprint, error) {
	bp, err := p.local.Analyze(ctx, buf, opts)
	if err != nil {
		return nil, err
	}
	if p.enrich == nil {
		return bp, nil
	}

	enrichCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	enh, err := p.enrich(enrichCtx, bp)
	if err != nil {
		logging.Warn("enrichment failed, returning local-only blueprint", logging.Fields{
			"provider": p.name,
			"error":    err.Error(),
		})
		return bp, nil
	}

	merged, unmatched := MergeEnhancement(bp, enh)
	if len(unmatched) > 0 {
		logging.Debug("enrichment referenced unknown keys", logging.Fields{
			"provider":  p.name,
			"unmatched": unmatched,
		})
	}
	if merged.Telemetry.Corrections.BPMCorrected || merged.Telemetry.Corrections.KeyCorrected {
		merged.Telemetry.Corrections.Source = p.name
	}
	merged.Meta.Provider = p.name
	return merged, nil
}
