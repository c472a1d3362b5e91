package cell

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
)

// Downstream returns every cell transitively depending on c, excluding c
// itself unless the graph is cyclic.
func Downstream(c *Cell) mapset.Set[*Cell] {
	seen := mapset.NewThreadUnsafeSet[*Cell]()
	stack := c.Dependents()
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Add(next) {
			continue
		}
		stack = append(stack, next.Dependents()...)
	}
	return seen
}

// Upstream returns every cell c transitively depends on.
func Upstream(c *Cell) mapset.Set[*Cell] {
	seen := mapset.NewThreadUnsafeSet[*Cell]()
	stack := slices.Clone(c.inputs)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Add(next) {
			continue
		}
		stack = append(stack, next.inputs...)
	}
	return seen
}

// WriteDOT writes the part of the graph connected to roots as a Graphviz
// digraph. Sources are drawn as boxes, edges are labelled with the input slot
// they feed.
func WriteDOT(w io.Writer, roots ...*Cell) error {
	all := mapset.NewThreadUnsafeSet[*Cell]()
	for _, r := range roots {
		all.Add(r)
		all = all.Union(Upstream(r)).Union(Downstream(r))
	}
	// Pick up side branches hanging off shared upstream cells.
	for _, c := range all.ToSlice() {
		all = all.Union(Downstream(c))
	}

	cells := all.ToSlice()
	slices.SortFunc(cells, func(a, b *Cell) int {
		return cmp.Compare(a.serial, b.serial)
	})

	if _, err := io.WriteString(w, "digraph crosslink {\n"); err != nil {
		return err
	}
	for _, c := range cells {
		shape := "ellipse"
		if c.isSource {
			shape = "box"
		}
		peripheries := 1
		if c.persist {
			peripheries = 2
		}
		if _, err := fmt.Fprintf(w, "  n%x [label=%s shape=%s peripheries=%d];\n", c.ID(), strconv.Quote(c.label), shape, peripheries); err != nil {
			return err
		}
	}
	for _, c := range cells {
		for slot, in := range c.inputs {
			if _, err := fmt.Fprintf(w, "  n%x -> n%x [label=\"%d\"];\n", in.ID(), c.ID(), slot); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
