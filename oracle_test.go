package bptree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	key, value int
}

func itemLess(a, b item) bool {
	return a.key < b.key
}

// TestAgainstReference replays random insert and remove sequences on a
// Tree and on google/btree and compares the results after every step.
func TestAgainstReference(t *testing.T) {
	t.Parallel()

	for _, order := range []int{4, 5, 6, 7, 8, 16} {
		order := order
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(int64(order)))
			tree, _ := setup(t, order)
			ref := btree.NewG[item](2, itemLess)

			const ops = 4000
			const keySpace = 400
			for i := 0; i < ops; i++ {
				key := rng.Intn(keySpace)

				// Bias towards inserts early and removes late so the tree
				// grows several levels and then shrinks back.
				if rng.Intn(ops) > i {
					value := rng.Int()
					res, err := tree.Insert(key, value)
					require.NoError(t, err)

					_, replaced := ref.ReplaceOrInsert(item{key, value})
					if replaced {
						require.Equal(t, Updated, res)
					} else {
						require.Equal(t, Inserted, res)
					}
				} else {
					err := tree.Remove(key)
					_, removed := ref.Delete(item{key: key})
					if removed {
						require.NoError(t, err, "remove %d", key)
					} else {
						require.ErrorIs(t, err, ErrKeyNotFound, "remove %d", key)
					}
				}

				require.NoError(t, tree.Verify(), "step %d", i)
				require.Equal(t, ref.Len(), tree.Len())
			}

			for key := -1; key <= keySpace; key++ {
				want, wantOK := ref.Get(item{key: key})
				got, ok := tree.Search(key)
				require.Equal(t, wantOK, ok, "key %d", key)
				if ok {
					assert.Equal(t, want.value, got, "key %d", key)
				}
			}

			var leaves []item
			for n := tree.firstLeaf(); n != nil; n = tree.node(n.Right) {
				for i, k := range n.Keys {
					leaves = append(leaves, item{k, n.Values[i]})
				}
			}
			var want []item
			ref.Ascend(func(it item) bool {
				want = append(want, it)
				return true
			})
			assert.Equal(t, want, leaves)
		})
	}
}
