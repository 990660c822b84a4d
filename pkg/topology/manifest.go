package topology

import (
	"errors"
	"fmt"
)

// NodesByRole returns the nodes having the given role, in manifest order
func (manifest ClusterManifest) NodesByRole(role NodeRole) []NodeDescriptor {
	nodes := []NodeDescriptor{}
	for _, node := range manifest.Nodes {
		if node.Role == role {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

// MasterNode returns the coordination node
func (manifest ClusterManifest) MasterNode() (*NodeDescriptor, error) {
	for _, node := range manifest.Nodes {
		if node.Role == RoleMaster {
			return &node, nil
		}
	}

	return nil, errors.New("no master node found")
}

// StorageGateway returns the node exporting the shared file system
func (manifest ClusterManifest) StorageGateway() (*NodeDescriptor, error) {
	for _, node := range manifest.Nodes {
		if node.Role == RoleStorageGateway {
			return &node, nil
		}
	}

	return nil, errors.New("no storage gateway node found")
}

// WorkerNodes returns all worker nodes
func (manifest ClusterManifest) WorkerNodes() []NodeDescriptor {
	return manifest.NodesByRole(RoleWorker)
}

// Hostnames lists the hostnames in manifest order
func (manifest ClusterManifest) Hostnames() []string {
	names := make([]string, 0, len(manifest.Nodes))
	for _, node := range manifest.Nodes {
		names = append(names, node.Hostname)
	}

	return names
}

// Verify checks the manifest is consistent: one master, one storage gateway, workers named
// rc01 upwards, role specific volumes, unique hostnames and a LAN referencing every node once.
func (manifest ClusterManifest) Verify() error {
	return manifest.verify(len(manifest.Nodes) - 2)
}

func (manifest ClusterManifest) verify(workerCount int) error {
	if workerCount < 0 || len(manifest.Nodes) != workerCount+2 {
		return fmt.Errorf("expected %d nodes, found %d", workerCount+2, len(manifest.Nodes))
	}

	hostnames := make(map[string]bool, len(manifest.Nodes))
	interfaces := make(map[string]string, len(manifest.Nodes))
	masters, gateways, workers := 0, 0, 0

	for _, node := range manifest.Nodes {
		if hostnames[node.Hostname] {
			return fmt.Errorf("hostname %q is used more than once", node.Hostname)
		}
		hostnames[node.Hostname] = true

		if node.Interface == "" {
			return fmt.Errorf("node %q has no interface", node.Hostname)
		}
		if other, ok := interfaces[node.Interface]; ok {
			return fmt.Errorf("nodes %q and %q share interface %q", other, node.Hostname, node.Interface)
		}
		interfaces[node.Interface] = node.Hostname

		var err error
		switch node.Role {
		case RoleMaster:
			masters++
			err = expectNode(node, MasterHostname, "", 0)
		case RoleStorageGateway:
			gateways++
			err = expectNode(node, StorageGatewayHostname, ExportDir, ExportVolumeSizeGiB)
		case RoleWorker:
			workers++
			err = expectNode(node, WorkerHostname(workers), BackupDir, BackupVolumeSizeGiB)
		default:
			err = fmt.Errorf("node %q has unknown role %s", node.Hostname, node.Role)
		}
		if err != nil {
			return err
		}
	}

	if masters != 1 {
		return fmt.Errorf("expected exactly one master node, found %d", masters)
	}
	if gateways != 1 {
		return fmt.Errorf("expected exactly one storage gateway node, found %d", gateways)
	}
	if workers != workerCount {
		return fmt.Errorf("expected %d worker nodes, found %d", workerCount, workers)
	}

	return manifest.Network.verify(interfaces)
}

func expectNode(node NodeDescriptor, hostname string, mountPoint string, sizeGiB int) error {
	if node.Hostname != hostname {
		return fmt.Errorf("%s node is named %q, expected %q", node.Role, node.Hostname, hostname)
	}

	if mountPoint == "" {
		if len(node.Volumes) != 0 {
			return fmt.Errorf("%s node %q must not have volumes", node.Role, node.Hostname)
		}
		return nil
	}

	if len(node.Volumes) != 1 {
		return fmt.Errorf("%s node %q must have exactly one volume, found %d", node.Role, node.Hostname, len(node.Volumes))
	}
	volume := node.Volumes[0]
	if volume.MountPoint != mountPoint || volume.SizeGiB != sizeGiB {
		return fmt.Errorf("%s node %q has volume %dGiB at %s, expected %dGiB at %s",
			node.Role, node.Hostname, volume.SizeGiB, volume.MountPoint, sizeGiB, mountPoint)
	}

	return nil
}

func (segment NetworkSegment) verify(interfaces map[string]string) error {
	if !segment.BestEffort || !segment.VLANTagging || !segment.LinkMultiplexing {
		return fmt.Errorf("network %q must be best effort with vlan tagging and link multiplexing", segment.Name)
	}

	seen := make(map[string]bool, len(segment.Interfaces))
	for _, iface := range segment.Interfaces {
		if _, ok := interfaces[iface]; !ok {
			return fmt.Errorf("network %q references unknown interface %q", segment.Name, iface)
		}
		if seen[iface] {
			return fmt.Errorf("network %q references interface %q more than once", segment.Name, iface)
		}
		seen[iface] = true
	}

	if len(seen) != len(interfaces) {
		return fmt.Errorf("network %q attaches %d of %d nodes", segment.Name, len(seen), len(interfaces))
	}

	return nil
}
