package bptree

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/bptree/internal/base"
)

// setup creates a tree of the given order whose log is captured.
func setup(t *testing.T, order int) (*Tree, *recordLogger) {
	t.Helper()

	log := &recordLogger{}
	tree, err := New(WithOrder(order), WithLogger(log))
	require.NoError(t, err)
	return tree, log
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordLogger struct {
	entries []logEntry
}

func (l *recordLogger) Error(msg string, args ...any) { l.add("error", msg, args) }
func (l *recordLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }

func (l *recordLogger) add(level, msg string, args []any) {
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

// count returns how many entries have the given message.
func (l *recordLogger) count(msg string) int {
	n := 0
	for _, e := range l.entries {
		if e.msg == msg {
			n++
		}
	}
	return n
}

func insertAll(t *testing.T, tree *Tree, keys ...int) {
	t.Helper()
	for _, k := range keys {
		res, err := tree.Insert(k, k)
		require.NoError(t, err)
		require.Equal(t, Inserted, res, "insert %d", k)
	}
	require.NoError(t, tree.Verify())
}

func removeAll(t *testing.T, tree *Tree, keys ...int) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, tree.Remove(k), "remove %d", k)
		require.NoError(t, tree.Verify(), "after remove %d", k)
	}
}

// shape renders the tree level by level. Internal nodes print their
// separators as [a b], leaves their keys as {a b}.
func shape(tree *Tree) []string {
	var levels []string
	level := []*base.Node{tree.node(tree.root)}
	for len(level) > 0 {
		var next []*base.Node
		parts := make([]string, 0, len(level))
		for _, n := range level {
			keys := strings.Trim(fmt.Sprint(n.Keys), "[]")
			if n.IsLeaf() {
				parts = append(parts, "{"+keys+"}")
				continue
			}
			parts = append(parts, "["+keys+"]")
			for _, id := range n.Children {
				next = append(next, tree.node(id))
			}
		}
		levels = append(levels, strings.Join(parts, " "))
		level = next
	}
	return levels
}

// Basic Operations Tests

func TestNew(t *testing.T) {
	t.Parallel()

	tree, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultOrder, tree.Order())
	assert.Equal(t, 0, tree.Depth())
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.NodeCount())
	assert.Equal(t, []string{"{}"}, shape(tree))
	assert.NoError(t, tree.Verify())

	for _, order := range []int{-1, 0, 1, 2, 3} {
		_, err := New(WithOrder(order))
		assert.ErrorIs(t, err, ErrInvalidOrder, "order %d", order)
	}

	tree, err = New(WithOrder(7), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 7, tree.Order())
	assert.Equal(t, DiscardLogger{}, tree.log)
}

func TestBasicOps(t *testing.T) {
	t.Parallel()

	tree, _ := setup(t, 4)

	res, err := tree.Insert(1, 100)
	require.NoError(t, err)
	assert.Equal(t, Inserted, res)

	val, ok := tree.Search(1)
	assert.True(t, ok)
	assert.Equal(t, 100, val)

	res, err = tree.Insert(1, 200)
	require.NoError(t, err)
	assert.Equal(t, Updated, res)

	val, ok = tree.Search(1)
	assert.True(t, ok)
	assert.Equal(t, 200, val)

	_, ok = tree.Search(2)
	assert.False(t, ok)

	assert.ErrorIs(t, tree.Remove(2), ErrKeyNotFound)
	require.NoError(t, tree.Remove(1))
	_, ok = tree.Search(1)
	assert.False(t, ok)
	assert.Equal(t, 0, tree.Len())
}

func TestExtremeKeys(t *testing.T) {
	t.Parallel()

	tree, _ := setup(t, 4)
	keys := []int{math.MaxInt, math.MinInt, 0, -1, 1, math.MaxInt - 1, math.MinInt + 1}
	for i, k := range keys {
		_, err := tree.Insert(k, i)
		require.NoError(t, err)
	}
	require.NoError(t, tree.Verify())

	for i, k := range keys {
		val, ok := tree.Search(k)
		assert.True(t, ok, "key %d", k)
		assert.Equal(t, i, val)
	}

	removeAll(t, tree, keys...)
	assert.Equal(t, []string{"{}"}, shape(tree))
}

func TestPutResultString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "updated", Updated.String())
}

// Round trip against a map for every supported order.

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, order := range []int{4, 5, 6, 7, 8, 16, 64} {
		order := order
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			t.Parallel()

			tree, _ := setup(t, order)
			const n = 500

			// Interleave ascending and descending keys.
			for i := 0; i < n; i++ {
				k := i
				if i%2 == 1 {
					k = 2*n - i
				}
				_, err := tree.Insert(k, -k)
				require.NoError(t, err)
			}
			require.NoError(t, tree.Verify())
			assert.Equal(t, n, tree.Len())

			for leaf := tree.firstLeaf(); leaf != nil; leaf = tree.node(leaf.Right) {
				for i, k := range leaf.Keys {
					assert.Equal(t, -k, leaf.Values[i])
				}
			}

			for i := 0; i < n; i += 3 {
				k := i
				if i%2 == 1 {
					k = 2*n - i
				}
				require.NoError(t, tree.Remove(k))
				_, ok := tree.Search(k)
				assert.False(t, ok)
			}
			require.NoError(t, tree.Verify())
		})
	}
}

func TestAbortLogsError(t *testing.T) {
	t.Parallel()

	tree, log := setup(t, 4)
	err := tree.abort("insert", errors.AssertionFailedf("boom"))
	assert.True(t, errors.HasAssertionFailure(err))
	require.Len(t, log.entries, 1)
	assert.Equal(t, "error", log.entries[0].level)
	assert.Equal(t, []any{"op", "insert", "error", err}, log.entries[0].args)
}
