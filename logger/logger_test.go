package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexhholmes/bptree"
)

func TestLogrus(t *testing.T) {
	t.Parallel()

	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	log := NewLogrus(base)

	log.Warn("remove from an empty tree", "key", 7)
	log.Debug("split leaf", "node", "#1", "separator", 3, "dangling")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "remove from an empty tree", entries[0].Message)
	assert.Equal(t, logrus.Fields{"key": 7}, entries[0].Data)

	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
	assert.Equal(t, logrus.Fields{"node": "#1", "separator": 3}, entries[1].Data)
}

func TestZap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZap(zap.New(core))

	log.Error("tree operation aborted", "op", "remove")
	log.Info("ready", "order", 4)
	log.Debug("collapse root", "depth", 1)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "remove", entries[0].ContextMap()["op"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(4), entries[1].ContextMap()["order"])
	assert.Equal(t, "collapse root", entries[2].Message)
}

// The adapters must drive a real tree.
func TestTreeWithZap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	tree, err := bptree.New(bptree.WithLogger(NewZap(zap.New(core))))
	require.NoError(t, err)

	for k := 1; k <= 4; k++ {
		_, err := tree.Insert(k, k)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, logs.FilterMessage("split leaf").Len())
	assert.Equal(t, 1, logs.FilterMessage("grow root").Len())

	empty, err := bptree.New(bptree.WithLogger(NewZap(zap.New(core))))
	require.NoError(t, err)
	require.ErrorIs(t, empty.Remove(1), bptree.ErrEmptyTree)
	assert.Equal(t, 1, logs.FilterMessage("remove from an empty tree").Len())
}
