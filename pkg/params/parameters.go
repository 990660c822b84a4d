package params

import (
	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
)

// ParameterType mirrors the parameter kinds offered by the portal dialog
type ParameterType string

const (
	TypeImage    ParameterType = "IMAGE"
	TypeNodeType ParameterType = "NODETYPE"
	TypeInteger  ParameterType = "INTEGER"
)

const (
	ImageKey        = "image"
	HardwareTypeKey = "hardware_type"
	ClusterSizeKey  = "num_rcnodes"
)

// ReplicatedClusterSize is the smallest number of servers holding one in-memory copy plus
// three on-disk replicas. It is advice only; smaller clusters are generated as requested.
const ReplicatedClusterSize = 4

// Parameter describes one input of the profile
type Parameter struct {
	Name        string
	Prompt      string
	Type        ParameterType
	Default     interface{}
	Legal       []cloudlab.Choice
	Description string
}

// Parameters are the inputs of the profile in dialog order
var Parameters = []Parameter{
	{
		Name:        ImageKey,
		Prompt:      "Disk Image",
		Type:        TypeImage,
		Default:     cloudlab.DiskImages[0].Value,
		Legal:       cloudlab.DiskImages,
		Description: "Specify the base disk image that all the nodes of the cluster should be booted with.",
	},
	{
		Name:    HardwareTypeKey,
		Prompt:  "Hardware Type",
		Type:    TypeNodeType,
		Default: cloudlab.HardwareTypes[0].Value,
		Legal:   cloudlab.HardwareTypes,
	},
	{
		Name:    ClusterSizeKey,
		Prompt:  "Cluster Size",
		Type:    TypeInteger,
		Default: 4,
		Description: "Specify the number of RAMCloud servers. For a replication factor of 3 the minimum number " +
			"of RAMCloud servers is 4 (1 in-memory copy + 3 on-disk replicas). Note that the total number of " +
			"servers in the experiment will be this number + 2 (one additional server for rcmaster, and one for rcnfs).",
	},
}

// DefaultSetter is implemented by configuration stores such as viper
type DefaultSetter interface {
	SetDefault(key string, value interface{})
}

// RegisterDefaults installs the dialog defaults into the store
func RegisterDefaults(store DefaultSetter) {
	for _, parameter := range Parameters {
		store.SetDefault(parameter.Name, parameter.Default)
	}
}
