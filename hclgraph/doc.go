// Package hclgraph describes a cell graph in HCL and wires it into a
// cell.System.
//
// A graph file declares sources, computed cells, sinks, delays and the
// writes to perform once everything is wired:
//
//	source "a" {}
//
//	cell "b" {
//	  inputs = ["a"]
//	  value  = a + 1
//	}
//
//	cell "total" {
//	  inputs  = ["b"]
//	  value   = (prev == null ? 0 : prev) + b
//	  persist = true
//	}
//
//	delay "late" {
//	  input = "b"
//	  after = "50ms"
//	}
//
//	sink "log" { inputs = ["b", "total"] }
//
//	write "a" { value = 3 }
//
// Inside a value expression every input is bound by name and prev holds the
// previous output of the cell, or null before the first one. Blocks are wired
// kind by kind (sources, cells, delays, sinks) in file order and an input must
// already be wired when it is referenced, so graph files are acyclic.
package hclgraph
