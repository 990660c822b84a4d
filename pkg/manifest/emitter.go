package manifest

import (
	"fmt"
	"strings"

	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

const (
	FormatRSpec = "rspec"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats, the default first
var Formats = []string{FormatRSpec, FormatJSON, FormatYAML}

// NewEmitter returns the emitter for the given output format
func NewEmitter(format string, aggregate cloudlab.Aggregate) (topology.ManifestEmitter, error) {
	switch strings.ToLower(format) {
	case FormatRSpec, "xml", "":
		return NewRSpecEmitter(aggregate), nil
	case FormatJSON:
		return JSONEmitter{}, nil
	case FormatYAML, "yml":
		return YAMLEmitter{}, nil
	}

	return nil, fmt.Errorf("unknown format '%s', use one of %s", format, strings.Join(Formats, ", "))
}
