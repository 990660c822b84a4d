package phases

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// PrintSummaryPhase prints one line per node of the manifest
type PrintSummaryPhase struct {
	generation *Generation
	out        io.Writer
	enabled    bool
}

// NewPrintSummaryPhase returns an instance of *PrintSummaryPhase
func NewPrintSummaryPhase(generation *Generation, out io.Writer, enabled bool) Phase {
	return &PrintSummaryPhase{
		generation: generation,
		out:        out,
		enabled:    enabled,
	}
}

// ShouldRun returns if this phase should run
func (phase *PrintSummaryPhase) ShouldRun() bool {
	return phase.enabled
}

// Run runs the phase
func (phase *PrintSummaryPhase) Run() error {
	if phase.generation.Manifest == nil {
		return errors.New("no manifest to summarize, the topology was not built")
	}

	tw := new(tabwriter.Writer)
	tw.Init(phase.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROLE\tHARDWARE\tIMAGE\tVOLUMES")

	for _, node := range phase.generation.Manifest.Nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s", node.Hostname, node.Role, node.HardwareType, node.DiskImage, formatVolumes(node.Volumes))
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func formatVolumes(volumes []topology.StorageVolume) string {
	if len(volumes) == 0 {
		return "-"
	}

	var parts []string
	for _, volume := range volumes {
		parts = append(parts, fmt.Sprintf("%dGiB@%s", volume.SizeGiB, volume.MountPoint))
	}

	return strings.Join(parts, ",")
}
