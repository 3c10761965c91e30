package rbtree_test

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonMell/ordtree/internal/rbtree"
)

const (
	BENCH_SIZE = 10_000
	SIZE       = 10_000
	SOURCE     = 42
)

type entry struct {
	Key   int
	Color rbtree.Color
}

func collect(t *testing.T, tree *rbtree.Tree, order rbtree.Order) []entry {
	t.Helper()
	var out []entry
	for k, c := range tree.Traverse(order) {
		out = append(out, entry{k, c})
	}
	return out
}

func build(t *testing.T, keys ...int) *rbtree.Tree {
	t.Helper()
	tree := rbtree.New()
	for _, k := range keys {
		require.NoError(t, tree.Insert(k))
	}
	require.NoError(t, tree.Verify())
	return tree
}

func TestRBInsert(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	random := generateRandomInts(r, SIZE)
	sorted := slices.Clone(random)
	slices.Sort(sorted)
	reversed := slices.Clone(sorted)
	slices.Reverse(reversed)

	tests := []struct {
		name  string
		input []int
	}{
		{"Empty", []int{}},
		{"Single", []int{1}},
		{"Sorted", sorted},
		{"Reversed", reversed},
		{"LargeRandom", random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := rbtree.New()
			for _, v := range tt.input {
				require.NoError(t, rb.Insert(v))
			}

			require.NoError(t, rb.Verify(), "RBTree properties violated for input %v", tt.name)
			assert.Equal(t, len(tt.input), rb.Len())
			want := slices.Sorted(slices.Values(tt.input))
			assert.True(t, slices.Equal(want, rb.Keys()), "in-order keys differ from sorted input")

			bound := 2 * math.Log2(float64(rb.Len())+1)
			assert.LessOrEqual(t, float64(rb.Height()), bound)
		})
	}
}

func TestInsertRotatesAtRoot(t *testing.T) {
	tree := build(t, 10, 20, 30)

	assert.Equal(t, []int{10, 20, 30}, tree.Keys())

	root, ok := tree.Root()
	require.True(t, ok)
	assert.Equal(t, 20, root.Key())
	assert.Equal(t, rbtree.Black, root.Color())

	l, ok := root.Left()
	require.True(t, ok)
	assert.Equal(t, entry{10, rbtree.Red}, entry{l.Key(), l.Color()})

	r, ok := root.Right()
	require.True(t, ok)
	assert.Equal(t, entry{30, rbtree.Red}, entry{r.Key(), r.Color()})

	stats := tree.Stats()
	assert.EqualValues(t, 1, stats.LeftRotations)
	assert.EqualValues(t, 0, stats.RightRotations)
	assert.EqualValues(t, 1, stats.InsertFixups[rbtree.OuterGrandchild])
}

func TestInsertMirrorCases(t *testing.T) {
	t.Run("RightRotationAtRoot", func(t *testing.T) {
		tree := build(t, 30, 20, 10)
		root, _ := tree.Root()
		assert.Equal(t, 20, root.Key())
		assert.EqualValues(t, 1, tree.Stats().RightRotations)
	})

	t.Run("ZigZagLeft", func(t *testing.T) {
		tree := build(t, 30, 10, 20)
		root, _ := tree.Root()
		assert.Equal(t, 20, root.Key())

		stats := tree.Stats()
		assert.EqualValues(t, 1, stats.InsertFixups[rbtree.InnerGrandchild])
		assert.EqualValues(t, 1, stats.InsertFixups[rbtree.OuterGrandchild])
		assert.EqualValues(t, 1, stats.LeftRotations)
		assert.EqualValues(t, 1, stats.RightRotations)
	})

	t.Run("ZigZagRight", func(t *testing.T) {
		tree := build(t, 10, 30, 20)
		root, _ := tree.Root()
		assert.Equal(t, 20, root.Key())
		assert.EqualValues(t, 1, tree.Stats().InsertFixups[rbtree.InnerGrandchild])
	})

	t.Run("UncleRedRecolors", func(t *testing.T) {
		tree := build(t, 20, 10, 30, 5)
		stats := tree.Stats()
		assert.EqualValues(t, 1, stats.InsertFixups[rbtree.UncleRed])
		assert.EqualValues(t, 0, stats.LeftRotations+stats.RightRotations)
		assert.Equal(t, []entry{
			{20, rbtree.Black}, {10, rbtree.Black}, {5, rbtree.Red}, {30, rbtree.Black},
		}, collect(t, tree, rbtree.PreOrder))
	})
}

func TestInsertDuplicate(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	keys := generateRandomInts(r, 500)

	once := build(t, keys...)
	twice := build(t, keys...)
	for _, k := range keys[:100] {
		require.NoError(t, twice.Insert(k))
	}

	assert.Equal(t, collect(t, once, rbtree.PreOrder), collect(t, twice, rbtree.PreOrder))
	assert.Equal(t, collect(t, once, rbtree.InOrder), collect(t, twice, rbtree.InOrder))
	assert.Equal(t, once.Len(), twice.Len())
	assert.EqualValues(t, 100, twice.Stats().Duplicates)
}

func TestInsertNodeLimit(t *testing.T) {
	tree := rbtree.NewWithConfig(&rbtree.Config{MaxNodes: 3})
	for _, k := range []int{1, 2, 3} {
		require.NoError(t, tree.Insert(k))
	}
	before := collect(t, tree, rbtree.PreOrder)

	err := tree.Insert(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rbtree.ErrAllocation))
	assert.Equal(t, before, collect(t, tree, rbtree.PreOrder))
	assert.Equal(t, 3, tree.Len())
	assert.False(t, tree.Contains(4))
	require.NoError(t, tree.Verify())

	// A duplicate is not an allocation.
	require.NoError(t, tree.Insert(2))

	require.True(t, tree.Remove(1))
	require.NoError(t, tree.Insert(4))
	assert.Equal(t, []int{2, 3, 4}, tree.Keys())
	assert.EqualValues(t, 1, tree.Stats().AllocFailures)
}

func TestRBDelete(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	t.Run("LargeDataset", func(t *testing.T) {
		rb := rbtree.New()
		keys := generateRandomInts(r, SIZE)

		for _, k := range keys {
			require.NoError(t, rb.Insert(k))
		}

		for _, k := range keys {
			require.True(t, rb.Contains(k), "Key %d should exist before deletion", k)
		}

		// Delete in random order
		r.Shuffle(len(keys), func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})

		for i, k := range keys {
			require.True(t, rb.Remove(k), "Error deleting key %d", k)
			require.False(t, rb.Contains(k), "Key %d still exists after deletion (iteration %d)", k, i)
			if i%97 == 0 {
				require.NoError(t, rb.Verify(), "after deleting %d (iteration %d)", k, i)
			}
		}

		assert.True(t, rb.Empty())
		assert.Equal(t, 0, rb.Len())
		require.NoError(t, rb.Verify())
		_, ok := rb.Root()
		assert.False(t, ok)
	})

	t.Run("KeyDoesntExist", func(t *testing.T) {
		rb := build(t, 1, 2, 3)
		before := collect(t, rb, rbtree.PreOrder)

		assert.False(t, rb.Remove(42))
		assert.Equal(t, before, collect(t, rb, rbtree.PreOrder))
		assert.EqualValues(t, 1, rb.Stats().RemoveMisses)

		assert.False(t, rbtree.New().Remove(1))
	})

	t.Run("SingleNode", func(t *testing.T) {
		rb := build(t, 7)
		require.True(t, rb.Remove(7))
		assert.True(t, rb.Empty())
		for _, k := range []int{7, 0, -1, 100} {
			assert.False(t, rb.Contains(k))
		}
		require.NoError(t, rb.Verify())
	})

	t.Run("InteriorNode", func(t *testing.T) {
		rb := build(t, 10, 20, 30, 40, 50, 25)
		require.True(t, rb.Remove(30))
		assert.Equal(t, []int{10, 20, 25, 40, 50}, rb.Keys())
		require.NoError(t, rb.Verify())
	})

	t.Run("TwoChildrenTakesSuccessorKey", func(t *testing.T) {
		rb := build(t, 10, 20, 30, 40, 50, 25)
		require.True(t, rb.Remove(30))
		require.True(t, rb.Remove(20))

		root, ok := rb.Root()
		require.True(t, ok)
		assert.Equal(t, 25, root.Key())
		assert.Equal(t, rbtree.Black, root.Color())
		assert.Equal(t, []int{10, 25, 40, 50}, rb.Keys())
		require.NoError(t, rb.Verify())
	})

	t.Run("RedLeaf", func(t *testing.T) {
		rb := build(t, 20, 10, 30)
		require.True(t, rb.Remove(10))
		stats := rb.Stats()
		for _, c := range rbtree.DeleteCases() {
			assert.EqualValues(t, 0, stats.DeleteFixups[c], c.String())
		}
		require.NoError(t, rb.Verify())
	})
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	for _, size := range []int{1, 2, 3, 10, 100, 1000} {
		t.Run("Size-"+strconv.Itoa(size), func(t *testing.T) {
			keys := generateRandomInts(r, size)
			rb := build(t, keys...)
			for _, k := range keys {
				require.True(t, rb.Remove(k))
			}
			assert.True(t, rb.Empty())
			assert.Empty(t, rb.Keys())
			assert.Equal(t, 0, rb.Height())
			require.NoError(t, rb.Verify())
		})
	}
}

// TestRandomOperations drives the tree and a map side by side and checks
// invariants, membership and order along the way.
func TestRandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	rb := rbtree.New()
	model := map[int]struct{}{}

	for i := 0; i < 20_000; i++ {
		k := r.Intn(2_000) - 1_000
		if r.Intn(3) == 0 {
			_, present := model[k]
			require.Equal(t, present, rb.Remove(k))
			delete(model, k)
		} else {
			require.NoError(t, rb.Insert(k))
			model[k] = struct{}{}
		}

		if i%500 == 0 {
			require.NoError(t, rb.Verify(), "iteration %d", i)
		}
	}

	require.NoError(t, rb.Verify())
	require.Equal(t, len(model), rb.Len())
	for k := -1_000; k < 1_000; k++ {
		_, present := model[k]
		require.Equal(t, present, rb.Contains(k), "key %d", k)
	}

	keys := rb.Keys()
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}

	stats := rb.Stats()
	for _, c := range rbtree.InsertCases() {
		assert.NotZero(t, stats.InsertFixups[c], c.String())
	}
	for _, c := range rbtree.DeleteCases() {
		assert.NotZero(t, stats.DeleteFixups[c], c.String())
	}
	assert.NotZero(t, stats.LeftRotations)
	assert.NotZero(t, stats.RightRotations)
}

func TestRBFind(t *testing.T) {
	r := rand.New(rand.NewSource(SOURCE))
	rb := rbtree.New()
	keys := generateRandomInts(r, SIZE)

	for _, k := range keys {
		require.NoError(t, rb.Insert(k*2))
	}

	t.Run("KeyExists", func(t *testing.T) {
		for _, k := range keys {
			assert.True(t, rb.Contains(k*2), "Key %d not found", k*2)
		}
	})

	t.Run("KeyDoesntExist", func(t *testing.T) {
		for _, k := range keys {
			assert.False(t, rb.Contains(k*2+1), "Key %d found but never inserted", k*2+1)
		}
	})
}

func TestQueries(t *testing.T) {
	empty := rbtree.New()
	_, ok := empty.Min()
	assert.False(t, ok)
	_, ok = empty.Max()
	assert.False(t, ok)
	_, ok = empty.Successor(1)
	assert.False(t, ok)
	assert.Equal(t, 0, empty.BlackHeight())

	rb := build(t, 50, 20, 80, 10, 30, 70, 90)

	lo, ok := rb.Min()
	assert.True(t, ok)
	assert.Equal(t, 10, lo)
	hi, ok := rb.Max()
	assert.True(t, ok)
	assert.Equal(t, 90, hi)

	tests := []struct {
		key        int
		succ, pred int
		hasSucc    bool
		hasPred    bool
	}{
		{key: 50, succ: 70, pred: 30, hasSucc: true, hasPred: true},
		{key: 55, succ: 70, pred: 50, hasSucc: true, hasPred: true},
		{key: 10, succ: 20, hasSucc: true},
		{key: 5, succ: 10, hasSucc: true},
		{key: 90, pred: 80, hasPred: true},
		{key: 100, pred: 90, hasPred: true},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.key), func(t *testing.T) {
			succ, ok := rb.Successor(tt.key)
			assert.Equal(t, tt.hasSucc, ok)
			if ok {
				assert.Equal(t, tt.succ, succ)
			}
			pred, ok := rb.Predecessor(tt.key)
			assert.Equal(t, tt.hasPred, ok)
			if ok {
				assert.Equal(t, tt.pred, pred)
			}
		})
	}

	assert.Equal(t, 2, rb.BlackHeight())
	assert.Equal(t, 3, rb.Height())

	rb.Clear()
	assert.True(t, rb.Empty())
	assert.Equal(t, 0, rb.Len())
	require.NoError(t, rb.Verify())
	require.NoError(t, rb.Insert(1))
	assert.Equal(t, []int{1}, rb.Keys())
}

// Helpers
func generateRandomInts(r *rand.Rand, size int) []int {
	arr := make([]int, size)
	for i := range arr {
		arr[i] = i
	}

	r.Shuffle(size, func(i, j int) {
		arr[i], arr[j] = arr[j], arr[i]
	})

	return arr
}

func BenchmarkInsert(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, size := range sizes {
		name := "Size-" + strconv.Itoa(size)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				rb := rbtree.New()
				for n := 0; n < size; n++ {
					_ = rb.Insert(n)
				}
			}
		})
	}
}

func BenchmarkRemove(b *testing.B) {
	rb := rbtree.New()
	for n := 0; n < BENCH_SIZE; n++ {
		_ = rb.Insert(n)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := i % BENCH_SIZE
		rb.Remove(k)
		_ = rb.Insert(k)
	}
}

func BenchmarkContains(b *testing.B) {
	rb := rbtree.New()
	for n := 0; n < BENCH_SIZE; n++ {
		_ = rb.Insert(n)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb.Contains(i % BENCH_SIZE)
	}
}
