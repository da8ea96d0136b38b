package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    logrus.Level
		wantErr bool
	}{
		{name: "", want: logrus.InfoLevel},
		{name: "INFO", want: logrus.InfoLevel},
		{name: "debug", want: logrus.DebugLevel},
		{name: "WARNING", want: logrus.WarnLevel},
		{name: "warn", want: logrus.WarnLevel},
		{name: "ERROR", want: logrus.ErrorLevel},
		{name: "ERROR", verbose: true, want: logrus.DebugLevel},
		{name: "TRACE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name, tt.verbose)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWritesConsoleAndAppendsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	var console bytes.Buffer
	log, closeFn, err := New(Config{Level: "INFO", File: path, Console: &console})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("Found 2 accessible subscription(s)")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, console.String(), "Found 2 accessible subscription(s)")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, string(data), "previous run\n")
	assert.Contains(t, string(data), "Found 2 accessible subscription(s)")
}

func TestNewWithoutFile(t *testing.T) {
	var console bytes.Buffer
	log, closeFn, err := New(Config{Verbose: true, Console: &console})
	require.NoError(t, err)
	defer closeFn()

	log.Debug("lookup detail")
	assert.Contains(t, console.String(), "lookup detail")
}

func TestNewUnopenableFile(t *testing.T) {
	_, _, err := New(Config{File: filepath.Join(t.TempDir(), "missing", "run.log")})
	assert.Error(t, err)
}
