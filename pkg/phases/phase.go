package phases

import (
	"fmt"
	"io"
	"os"

	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

var (
	fatalOut io.Writer = os.Stderr
	exit               = os.Exit
)

// Phase defines an interface for a generic phase
type Phase interface {
	ShouldRun() bool
	Run() error
}

// Generation carries the state the phases of one manifest generation share
type Generation struct {
	Spec     topology.ClusterSpec
	Manifest *topology.ClusterManifest
}

// PhaseChain is a holder of several phases and a after run step
type PhaseChain struct {
	phases   []Phase
	afterRun func()
}

// NewPhaseChain creates a new instance of *PhaseChain
func NewPhaseChain() *PhaseChain {
	return &PhaseChain{
		phases: []Phase{},
	}
}

// AddPhase adds a new phase to the chain
func (chain *PhaseChain) AddPhase(phase Phase) {
	chain.phases = append(chain.phases, phase)
}

// SetAfterRun configures the function called after each phase that ran
func (chain *PhaseChain) SetAfterRun(fun func()) {
	chain.afterRun = fun
}

// Run runs the phases in order and stops at the first error
func (chain *PhaseChain) Run() error {
	for _, phase := range chain.phases {
		if !phase.ShouldRun() {
			continue
		}

		if err := phase.Run(); err != nil {
			return err
		}

		if chain.afterRun != nil {
			chain.afterRun()
		}
	}

	return nil
}

// FatalOnError is an helper function to print out an error and exit
func FatalOnError(err error) {
	if err != nil {
		fmt.Fprintln(fatalOut, err)
		exit(1)
	}
}
