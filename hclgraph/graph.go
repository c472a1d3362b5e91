package hclgraph

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Graph is the decoded form of a graph file.
type Graph struct {
	Sources []*Source `hcl:"source,block"`
	Cells   []*Cell   `hcl:"cell,block"`
	Delays  []*Delay  `hcl:"delay,block"`
	Sinks   []*Sink   `hcl:"sink,block"`
	Writes  []*Write  `hcl:"write,block"`
}

type Source struct {
	Name string `hcl:"name,label"`
}

type Cell struct {
	Name    string         `hcl:"name,label"`
	Inputs  []string       `hcl:"inputs"`
	Value   hcl.Expression `hcl:"value"`
	Persist bool           `hcl:"persist,optional"`
}

// Delay re-emits its input on a new source once After has elapsed.
type Delay struct {
	Name  string `hcl:"name,label"`
	Input string `hcl:"input"`
	After string `hcl:"after"`
}

type Sink struct {
	Name   string   `hcl:"name,label"`
	Inputs []string `hcl:"inputs"`
}

type Write struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// Parse decodes a graph from src. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file, filename)
}

// Load reads and decodes the graph file at path.
func Load(path string) (*Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(file, path)
}

func decode(file *hcl.File, filename string) (*Graph, error) {
	var g Graph
	if diags := gohcl.DecodeBody(file.Body, nil, &g); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &g, nil
}
