package topology

import (
	"fmt"
)

const (
	// MasterHostname is the node all experiment management runs on
	MasterHostname = "rcmaster"
	// StorageGatewayHostname is the node exporting the shared NFS file system
	StorageGatewayHostname = "rcnfs"
	// WorkerHostnamePrefix is followed by the zero padded worker index
	WorkerHostnamePrefix = "rc"
	// WorkerHostnameWidth is the number of digits of the worker index
	WorkerHostnameWidth = 2

	// ExportDir is the mount point of the NFS export on the storage gateway
	ExportDir = "/local/nfs"
	// BackupDir is the mount point of the backup volume on every worker
	BackupDir = "/local/rcbackup"

	// ExportVolumeSizeGiB is the size of the block store behind ExportDir
	ExportVolumeSizeGiB = 200
	// BackupVolumeSizeGiB is the size of the block store behind BackupDir
	BackupVolumeSizeGiB = 200

	// NetworkName is the client id of the cluster LAN
	NetworkName   = "rclan"
	interfaceName = "if1"

	setupScript = "/local/repository/setup.sh"
)

// BootstrapCommand is executed by every node once it is provisioned.
// ExportDir and BackupDir are passed verbatim so the script mounts what the manifest requests.
var BootstrapCommand = fmt.Sprintf("sudo %s %s %s", setupScript, ExportDir, BackupDir)

type hostSlot struct {
	hostname string
	role     NodeRole
}

// WorkerHostname returns the hostname of the worker with the given 1-based index
func WorkerHostname(index int) string {
	return fmt.Sprintf("%s%0*d", WorkerHostnamePrefix, WorkerHostnameWidth, index)
}

// hostSlots lays out the cluster in manifest order. The role is fixed here and carried on the
// node from then on; nothing downstream looks at the hostname to find out what a node is.
func hostSlots(workerCount int) []hostSlot {
	slots := make([]hostSlot, 0, workerCount+2)
	slots = append(slots,
		hostSlot{hostname: MasterHostname, role: RoleMaster},
		hostSlot{hostname: StorageGatewayHostname, role: RoleStorageGateway},
	)
	for i := 1; i <= workerCount; i++ {
		slots = append(slots, hostSlot{hostname: WorkerHostname(i), role: RoleWorker})
	}

	return slots
}

func volumesFor(slot hostSlot) []StorageVolume {
	switch slot.role {
	case RoleStorageGateway:
		return []StorageVolume{
			{Name: slot.hostname + "nfs_bs", MountPoint: ExportDir, SizeGiB: ExportVolumeSizeGiB},
		}
	case RoleWorker:
		return []StorageVolume{
			{Name: slot.hostname + "backup_bs", MountPoint: BackupDir, SizeGiB: BackupVolumeSizeGiB},
		}
	default:
		return []StorageVolume{}
	}
}

func newNode(spec ClusterSpec, slot hostSlot) NodeDescriptor {
	return NodeDescriptor{
		Hostname:         slot.hostname,
		Role:             slot.role,
		HardwareType:     spec.HardwareType,
		DiskImage:        spec.DiskImage,
		BootstrapCommand: BootstrapCommand,
		Volumes:          volumesFor(slot),
		Interface:        fmt.Sprintf("%s:%s", slot.hostname, interfaceName),
	}
}

// Build turns the cluster parameters into a complete manifest.
// spec must come from the parameter binder; a negative worker count is a caller bug.
func Build(spec ClusterSpec) ClusterManifest {
	if spec.WorkerCount < 0 {
		panic(fmt.Sprintf("topology: negative worker count %d", spec.WorkerCount))
	}

	slots := hostSlots(spec.WorkerCount)

	manifest := ClusterManifest{
		Nodes: make([]NodeDescriptor, 0, len(slots)),
		Network: NetworkSegment{
			Name:             NetworkName,
			BestEffort:       true,
			VLANTagging:      true,
			LinkMultiplexing: true,
			Interfaces:       make([]string, 0, len(slots)),
		},
	}

	for _, slot := range slots {
		node := newNode(spec, slot)
		manifest.Nodes = append(manifest.Nodes, node)
		manifest.Network.Interfaces = append(manifest.Network.Interfaces, node.Interface)
	}

	if err := manifest.verify(spec.WorkerCount); err != nil {
		panic(fmt.Sprintf("topology: generated manifest is inconsistent: %v", err))
	}

	return manifest
}
