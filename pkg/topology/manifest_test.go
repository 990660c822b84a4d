package topology

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/magiconair/properties/assert"
)

func TestClusterManifest_Verify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(manifest *ClusterManifest)
		message string
	}{
		{
			name:    "duplicate hostname",
			mutate:  func(m *ClusterManifest) { m.Nodes[3].Hostname = "rc01" },
			message: "used more than once",
		},
		{
			name:    "worker named like a reserved host",
			mutate:  func(m *ClusterManifest) { m.Nodes[2].Hostname = "rcmaster2" },
			message: "expected \"rc01\"",
		},
		{
			name:    "master with a volume",
			mutate:  func(m *ClusterManifest) { m.Nodes[0].Volumes = []StorageVolume{{MountPoint: BackupDir, SizeGiB: 200}} },
			message: "must not have volumes",
		},
		{
			name:    "gateway volume too small",
			mutate:  func(m *ClusterManifest) { m.Nodes[1].Volumes[0].SizeGiB = 100 },
			message: "expected 200GiB at /local/nfs",
		},
		{
			name:    "second master",
			mutate:  func(m *ClusterManifest) { m.Nodes[3].Role = RoleMaster },
			message: "master node is named",
		},
		{
			name:    "network flag cleared",
			mutate:  func(m *ClusterManifest) { m.Network.VLANTagging = false },
			message: "vlan tagging",
		},
		{
			name:    "node missing from network",
			mutate:  func(m *ClusterManifest) { m.Network.Interfaces = m.Network.Interfaces[1:] },
			message: "attaches 3 of 4 nodes",
		},
		{
			name:    "node attached twice",
			mutate:  func(m *ClusterManifest) { m.Network.Interfaces[1] = m.Network.Interfaces[0] },
			message: "more than once",
		},
		{
			name:    "unknown role",
			mutate:  func(m *ClusterManifest) { m.Nodes[2].Role = NodeRole(7) },
			message: "unknown role NodeRole(7)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			manifest := Build(defaultSpec(2))
			test.mutate(&manifest)

			err := manifest.Verify()
			if err == nil {
				t.Fatal("no error returned for an inconsistent manifest")
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("error %q does not mention %q", err, test.message)
			}
		})
	}
}

func TestClusterManifest_RoleQueries(t *testing.T) {
	manifest := Build(defaultSpec(2))

	master, err := manifest.MasterNode()
	if err != nil {
		t.Error(err)
	}
	assert.Equal(t, master.Hostname, "rcmaster")

	assert.Equal(t, len(manifest.NodesByRole(RoleStorageGateway)), 1)
	assert.Equal(t, len(manifest.WorkerNodes()), 2)

	empty := ClusterManifest{}
	if _, err := empty.MasterNode(); err == nil {
		t.Error("no error with no master")
	}
	if _, err := empty.StorageGateway(); err == nil {
		t.Error("no error with no storage gateway")
	}
}

func TestNodeRole_Text(t *testing.T) {
	data, err := json.Marshal([]NodeRole{RoleMaster, RoleStorageGateway, RoleWorker})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(data), `["master","storage-gateway","worker"]`)

	var roles []NodeRole
	if err := json.Unmarshal(data, &roles); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, roles, []NodeRole{RoleMaster, RoleStorageGateway, RoleWorker})

	var role NodeRole
	if err := role.UnmarshalText([]byte("coordinator")); err == nil {
		t.Error("no error for an unknown role name")
	}
}
