package manifest

import (
	"encoding/xml"
	"fmt"

	"github.com/pkg/errors"
	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

const (
	emulabNamespace = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	xsiNamespace    = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation  = "http://www.geni.net/resources/rspec/3 http://www.geni.net/resources/rspec/3/request.xsd"

	sliverTypeRawPC     = "raw-pc"
	executeShell        = "sh"
	blockstoreClass     = "local"
	blockstorePlacement = "any"
	linkTypeLAN         = "lan"
)

type rspecDocument struct {
	XMLName        xml.Name    `xml:"http://www.geni.net/resources/rspec/3 rspec"`
	EmulabNS       string      `xml:"xmlns:emulab,attr"`
	XsiNS          string      `xml:"xmlns:xsi,attr"`
	SchemaLocation string      `xml:"xsi:schemaLocation,attr"`
	Type           string      `xml:"type,attr"`
	Nodes          []rspecNode `xml:"node"`
	Links          []rspecLink `xml:"link"`
}

type rspecNode struct {
	ClientID     string            `xml:"client_id,attr"`
	Exclusive    bool              `xml:"exclusive,attr"`
	SliverType   rspecSliverType   `xml:"sliver_type"`
	HardwareType rspecNamed        `xml:"hardware_type"`
	Services     rspecServices     `xml:"services"`
	Interfaces   []rspecInterface  `xml:"interface"`
	Blockstores  []rspecBlockstore `xml:"emulab:blockstore"`
}

type rspecSliverType struct {
	Name      string     `xml:"name,attr"`
	DiskImage rspecNamed `xml:"disk_image"`
}

type rspecNamed struct {
	Name string `xml:"name,attr"`
}

type rspecServices struct {
	Execute []rspecExecute `xml:"execute"`
}

type rspecExecute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type rspecInterface struct {
	ClientID string `xml:"client_id,attr"`
}

type rspecBlockstore struct {
	Name       string `xml:"name,attr"`
	MountPoint string `xml:"mountpoint,attr"`
	Class      string `xml:"class,attr"`
	Size       string `xml:"size,attr"`
	Placement  string `xml:"placement,attr"`
}

type rspecLink struct {
	ClientID         string           `xml:"client_id,attr"`
	InterfaceRefs    []rspecInterface `xml:"interface_ref"`
	BestEffort       *rspecEnabled    `xml:"emulab:best_effort,omitempty"`
	VLANTagging      *rspecEnabled    `xml:"emulab:vlan_tagging,omitempty"`
	LinkMultiplexing *rspecEnabled    `xml:"emulab:link_multiplexing,omitempty"`
	LinkType         rspecNamed       `xml:"link_type"`
}

type rspecEnabled struct {
	Enabled bool `xml:"enabled,attr"`
}

// RSpecEmitter renders a GENI RSpec v3 request bound to one aggregate
type RSpecEmitter struct {
	aggregate cloudlab.Aggregate
}

var _ topology.ManifestEmitter = &RSpecEmitter{}

// NewRSpecEmitter creates an RSpecEmitter resolving disk images on the given aggregate
func NewRSpecEmitter(aggregate cloudlab.Aggregate) *RSpecEmitter {
	return &RSpecEmitter{aggregate: aggregate}
}

// Emit renders the request document
func (emitter *RSpecEmitter) Emit(manifest topology.ClusterManifest) ([]byte, error) {
	document := rspecDocument{
		EmulabNS:       emulabNamespace,
		XsiNS:          xsiNamespace,
		SchemaLocation: schemaLocation,
		Type:           "request",
	}

	for _, node := range manifest.Nodes {
		document.Nodes = append(document.Nodes, emitter.renderNode(node))
	}
	document.Links = append(document.Links, renderLink(manifest.Network))

	body, err := xml.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "unable to render rspec")
	}

	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}

func (emitter *RSpecEmitter) renderNode(node topology.NodeDescriptor) rspecNode {
	rendered := rspecNode{
		ClientID:  node.Hostname,
		Exclusive: true,
		SliverType: rspecSliverType{
			Name:      sliverTypeRawPC,
			DiskImage: rspecNamed{Name: cloudlab.ImageURN(emitter.aggregate, node.DiskImage)},
		},
		HardwareType: rspecNamed{Name: string(node.HardwareType)},
		Services: rspecServices{
			Execute: []rspecExecute{{Shell: executeShell, Command: node.BootstrapCommand}},
		},
		Interfaces: []rspecInterface{{ClientID: node.Interface}},
	}

	for _, volume := range node.Volumes {
		rendered.Blockstores = append(rendered.Blockstores, rspecBlockstore{
			Name:       volume.Name,
			MountPoint: volume.MountPoint,
			Class:      blockstoreClass,
			Size:       fmt.Sprintf("%dGB", volume.SizeGiB),
			Placement:  blockstorePlacement,
		})
	}

	return rendered
}

func renderLink(segment topology.NetworkSegment) rspecLink {
	link := rspecLink{
		ClientID: segment.Name,
		LinkType: rspecNamed{Name: linkTypeLAN},
	}

	for _, iface := range segment.Interfaces {
		link.InterfaceRefs = append(link.InterfaceRefs, rspecInterface{ClientID: iface})
	}
	if segment.BestEffort {
		link.BestEffort = &rspecEnabled{Enabled: true}
	}
	if segment.VLANTagging {
		link.VLANTagging = &rspecEnabled{Enabled: true}
	}
	if segment.LinkMultiplexing {
		link.LinkMultiplexing = &rspecEnabled{Enabled: true}
	}

	return link
}
