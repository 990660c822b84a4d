package topology

import (
	"fmt"
)

// HardwareType names a testbed node type, e.g. "m510"
type HardwareType string

// DiskImage names a base disk image, e.g. "UBUNTU16-64-STD"
type DiskImage string

// NodeRole is the role a node plays in the cluster
type NodeRole int

const (
	// RoleMaster is the coordination node all experiments are driven from
	RoleMaster NodeRole = iota
	// RoleStorageGateway exports the shared file system
	RoleStorageGateway
	// RoleWorker runs a storage server with a local backup volume
	RoleWorker
)

var roleNames = map[NodeRole]string{
	RoleMaster:         "master",
	RoleStorageGateway: "storage-gateway",
	RoleWorker:         "worker",
}

func (role NodeRole) String() string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	return fmt.Sprintf("NodeRole(%d)", int(role))
}

// MarshalText renders the role by name, so JSON and YAML dumps stay readable
func (role NodeRole) MarshalText() ([]byte, error) {
	if _, ok := roleNames[role]; !ok {
		return nil, fmt.Errorf("unknown node role %d", int(role))
	}
	return []byte(role.String()), nil
}

// UnmarshalText parses a role name produced by MarshalText
func (role *NodeRole) UnmarshalText(text []byte) error {
	for r, name := range roleNames {
		if name == string(text) {
			*role = r
			return nil
		}
	}
	return fmt.Errorf("unknown node role %q", string(text))
}

// ClusterSpec holds the bound parameters a manifest is built from
type ClusterSpec struct {
	WorkerCount  int          `json:"worker_count" yaml:"worker_count"`
	HardwareType HardwareType `json:"hardware_type" yaml:"hardware_type"`
	DiskImage    DiskImage    `json:"disk_image" yaml:"disk_image"`
}

// StorageVolume is a block store requested for a node
type StorageVolume struct {
	Name       string `json:"name" yaml:"name"`
	MountPoint string `json:"mount_point" yaml:"mount_point"`
	SizeGiB    int    `json:"size_gib" yaml:"size_gib"`
}

// NodeDescriptor is one node of the cluster, its role is assigned by the builder
type NodeDescriptor struct {
	Hostname         string          `json:"hostname" yaml:"hostname"`
	Role             NodeRole        `json:"role" yaml:"role"`
	HardwareType     HardwareType    `json:"hardware_type" yaml:"hardware_type"`
	DiskImage        DiskImage       `json:"disk_image" yaml:"disk_image"`
	BootstrapCommand string          `json:"bootstrap_command" yaml:"bootstrap_command"`
	Volumes          []StorageVolume `json:"volumes" yaml:"volumes"`
	Interface        string          `json:"interface" yaml:"interface"`
}

// NetworkSegment is the single LAN every node attaches to
type NetworkSegment struct {
	Name             string   `json:"name" yaml:"name"`
	BestEffort       bool     `json:"best_effort" yaml:"best_effort"`
	VLANTagging      bool     `json:"vlan_tagging" yaml:"vlan_tagging"`
	LinkMultiplexing bool     `json:"link_multiplexing" yaml:"link_multiplexing"`
	Interfaces       []string `json:"interfaces" yaml:"interfaces"`
}

// ClusterManifest is everything requested from the testbed for one cluster
type ClusterManifest struct {
	Nodes   []NodeDescriptor `json:"nodes" yaml:"nodes"`
	Network NetworkSegment   `json:"network" yaml:"network"`
}
