package sched

import "github.com/emirpasic/gods/trees/redblacktree"

// testingPoints collects the candidate "L" values Processor Demand
// Analysis must check, deduplicated and kept in ascending tick order,
// using a red-black tree keyed by raw tick value: O(log n) insert with
// dedup, O(n) in-order walk, no separate sort pass per admission call.
type testingPoints struct {
	tree *redblacktree.Tree
}

func newTestingPoints() *testingPoints {
	return &testingPoints{tree: redblacktree.NewWith(int64Comparator)}
}

func int64Comparator(a, b any) int {
	x, y := a.(int64), b.(int64)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func (tp *testingPoints) add(l int64) {
	tp.tree.Put(l, struct{}{})
}

// ascending returns every distinct point added so far, in increasing
// order. It does not filter by horizon; callers add only points <= H.
func (tp *testingPoints) ascending() []int64 {
	out := make([]int64, 0, tp.tree.Size())
	it := tp.tree.Iterator()
	for it.Next() {
		out = append(out, it.Key().(int64))
	}
	return out
}
