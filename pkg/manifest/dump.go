package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
	"gopkg.in/yaml.v3"
)

// JSONEmitter dumps the manifest as indented JSON
type JSONEmitter struct{}

// Emit renders the manifest
func (JSONEmitter) Emit(manifest topology.ClusterManifest) ([]byte, error) {
	data, err := json.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "unable to render json manifest")
	}

	return append(data, '\n'), nil
}

// YAMLEmitter dumps the manifest as YAML
type YAMLEmitter struct{}

// Emit renders the manifest
func (YAMLEmitter) Emit(manifest topology.ClusterManifest) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(manifest); err != nil {
		return nil, errors.Wrap(err, "unable to render yaml manifest")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "unable to render yaml manifest")
	}

	return buf.Bytes(), nil
}
