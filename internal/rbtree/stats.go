package rbtree

// Stats counts the work a tree has done since it was created.
type Stats struct {
	Inserts       uint64 // keys added
	Duplicates    uint64 // inserts of a key already present
	Removes       uint64 // keys removed
	RemoveMisses  uint64 // removes of an absent key
	AllocFailures uint64 // inserts refused by the node limit

	LeftRotations  uint64
	RightRotations uint64

	// Indexed by InsertCase and DeleteCase.
	InsertFixups [numInsertCases]uint64
	DeleteFixups [numDeleteCases]uint64
}

// Stats returns a copy of the tree's operation counters.
func (t *Tree) Stats() Stats {
	return t.stats
}

// InsertCases lists every InsertCase in index order.
func InsertCases() []InsertCase {
	cases := make([]InsertCase, numInsertCases)
	for i := range cases {
		cases[i] = InsertCase(i)
	}
	return cases
}

// DeleteCases lists every DeleteCase in index order.
func DeleteCases() []DeleteCase {
	cases := make([]DeleteCase, numDeleteCases)
	for i := range cases {
		cases[i] = DeleteCase(i)
	}
	return cases
}
