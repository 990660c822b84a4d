package topology

// ManifestEmitter serializes a manifest into the format submitted to the testbed
type ManifestEmitter interface {
	Emit(manifest ClusterManifest) ([]byte, error)
}
