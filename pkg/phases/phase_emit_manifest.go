package phases

import (
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// EmitManifestPhase serializes the manifest and writes it out for submission
type EmitManifestPhase struct {
	generation *Generation
	emitter    topology.ManifestEmitter
	out        io.Writer
	logger     log.Logger
}

// NewEmitManifestPhase returns an instance of *EmitManifestPhase
func NewEmitManifestPhase(generation *Generation, emitter topology.ManifestEmitter, out io.Writer, logger log.Logger) Phase {
	return &EmitManifestPhase{
		generation: generation,
		emitter:    emitter,
		out:        out,
		logger:     logger,
	}
}

// ShouldRun returns if this phase should run
func (phase *EmitManifestPhase) ShouldRun() bool {
	return phase.emitter != nil
}

// Run runs the phase
func (phase *EmitManifestPhase) Run() error {
	if phase.generation.Manifest == nil {
		return errors.New("no manifest to emit, the topology was not built")
	}

	data, err := phase.emitter.Emit(*phase.generation.Manifest)
	if err != nil {
		return err
	}

	if _, err := phase.out.Write(data); err != nil {
		return errors.Wrap(err, "unable to write manifest")
	}
	level.Debug(phase.logger).Log("msg", "manifest written", "bytes", len(data))

	return nil
}
