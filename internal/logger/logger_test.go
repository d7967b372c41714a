package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"QUIET", LevelOff, false},
		{"", LevelNormal, false},
		{"info", LevelNormal, false},
		{" verbose ", LevelVerbose, false},
		{"debug", LevelVerbose, false},
		{"loud", LevelOff, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLevelsFilterOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INF] shown 2")

	log.SetLevel(LevelOff)
	log.Error("silenced")
	assert.NotContains(t, buf.String(), "silenced")
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelVerbose, &buf)

	root.Named("engine").Named("tick").Debug("ping")
	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[DBG] [engine.tick] ping")
}

func TestOpenOutput(t *testing.T) {
	for _, p := range []string{"", "stderr", "STDERR"} {
		w, c := OpenOutput(p)
		assert.Equal(t, os.Stderr, w, p)
		assert.NoError(t, c.Close())
	}

	path := filepath.Join(t.TempDir(), "logs", "souschef.log")
	w, c := OpenOutput(path)
	log := New(LevelNormal, w)
	log.Info("hello %s", "file")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
