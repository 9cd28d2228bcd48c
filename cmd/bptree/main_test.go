package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("SET 1 10\nSET 2 20\nGET 2\nDEL 1\nCHECK\nEXIT\nGET 2\n")
	var out, errOut bytes.Buffer
	code := run([]string{"-script"}, in, &out, &errOut)

	require.Equal(t, 0, code, errOut.String())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "inserted 1", lines[0])
	assert.Equal(t, "20", lines[2])
	assert.Equal(t, "removed 1", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "ok keys=1 nodes=1 depth=0"))
}

func TestRunFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"order too small", []string{"-order", "3"}, 1},
		{"unknown logger", []string{"-log", "syslog"}, 2},
		{"unknown flag", []string{"-bogus"}, 2},
		{"logrus", []string{"-script", "-log", "logrus"}, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			code := run(tt.args, strings.NewReader("SET 1 1\n"), &out, &errOut)
			assert.Equal(t, tt.code, code)
		})
	}
}
