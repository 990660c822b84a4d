package cloudlab

import (
	"fmt"
	"strings"

	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// Aggregate is a testbed site requests can be bound to
type Aggregate struct {
	Name      string
	Authority string
}

// Known CloudLab aggregates
var (
	Utah      = Aggregate{Name: "utah", Authority: "utah.cloudlab.us"}
	Wisconsin = Aggregate{Name: "wisconsin", Authority: "wisc.cloudlab.us"}
	Clemson   = Aggregate{Name: "clemson", Authority: "clemson.cloudlab.us"}
	APT       = Aggregate{Name: "apt", Authority: "apt.emulab.net"}
)

// Aggregates lists all known sites, Utah first as it hosts the m510 machines
var Aggregates = []Aggregate{Utah, Wisconsin, Clemson, APT}

// Choice is a legal value of a parameter together with its label in the portal
type Choice struct {
	Value string
	Label string
}

// HardwareTypes are the node types a cluster can be built from. Currently only m510 machines are supported.
var HardwareTypes = []Choice{
	{Value: "m510", Label: "m510 (CloudLab Utah, Intel Xeon-D)"},
}

// DiskImages are the base images all nodes of a cluster can be booted with
var DiskImages = []Choice{
	{Value: "UBUNTU16-64-STD", Label: "Ubuntu 16.04 (64-bit)"},
}

const imageProject = "emulab-ops"

// LookupAggregate finds an aggregate by name
func LookupAggregate(name string) (Aggregate, error) {
	for _, aggregate := range Aggregates {
		if strings.EqualFold(aggregate.Name, name) {
			return aggregate, nil
		}
	}

	return Aggregate{}, fmt.Errorf("aggregate '%s' not found", name)
}

// ImageURN returns the URN a disk image is published under on the aggregate
func ImageURN(aggregate Aggregate, image topology.DiskImage) string {
	return fmt.Sprintf("urn:publicid:IDN+%s+image+%s:%s", aggregate.Authority, imageProject, image)
}

// IsHardwareType reports whether value is a supported hardware type
func IsHardwareType(value string) bool {
	return hasChoice(HardwareTypes, value)
}

// IsDiskImage reports whether value is a supported disk image
func IsDiskImage(value string) bool {
	return hasChoice(DiskImages, value)
}

// Values returns the raw values of choices
func Values(choices []Choice) []string {
	values := make([]string, 0, len(choices))
	for _, choice := range choices {
		values = append(values, choice.Value)
	}

	return values
}

func hasChoice(choices []Choice, value string) bool {
	for _, choice := range choices {
		if choice.Value == value {
			return true
		}
	}

	return false
}
