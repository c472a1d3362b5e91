// Package cell is a push based incremental dataflow graph.
//
// Cells are wired into a DAG at construction time. Putting a value into a
// source cell recomputes exactly the cells downstream of it, each once, in
// dependency order, and never with a mix of fresh and stale inputs. Writes
// issued while a propagation is running are queued and executed afterwards as
// separate transactions.
//
//	sys := cell.NewSystem()
//	a := sys.Source("a")
//	b, _ := sys.New("b", []*cell.Cell{a}, func(_ *cell.Cell, args []any) (any, error) {
//		return args[0].(int) + 1, nil
//	}, false)
//	_ = sys.Put(a, 1) // b.Value() == 2
package cell
