package phases

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// BuildTopologyPhase turns the bound parameters into a manifest
type BuildTopologyPhase struct {
	generation *Generation
	logger     log.Logger
}

// NewBuildTopologyPhase returns an instance of *BuildTopologyPhase
func NewBuildTopologyPhase(generation *Generation, logger log.Logger) Phase {
	return &BuildTopologyPhase{
		generation: generation,
		logger:     logger,
	}
}

// ShouldRun returns if this phase should run
func (phase *BuildTopologyPhase) ShouldRun() bool {
	return phase.generation.Manifest == nil
}

// Run runs the phase
func (phase *BuildTopologyPhase) Run() error {
	manifest := topology.Build(phase.generation.Spec)
	phase.generation.Manifest = &manifest

	level.Info(phase.logger).Log(
		"msg", "cluster topology built",
		"nodes", len(manifest.Nodes),
		"workers", len(manifest.WorkerNodes()),
		"network", manifest.Network.Name,
	)

	return nil
}
