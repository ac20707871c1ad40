package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	require.Equal(t, slog.LevelInfo, parseLogLevel(""))
}

func TestLogFileWriterTrimsToNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ctxsnap.log")

	w, err := openLogFile(path, 20, 10)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = w.Write([]byte("abcdefghij"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdefghij", string(data))

	_, err = w.Write([]byte("XYZ"))
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "defghijXYZ", string(data))

	_, err = w.Write([]byte("!"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "defghijXYZ!", string(data))
}

func TestLogFileWriterTrimsOversizedFileOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctxsnap.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("a"), 30), 0o644))

	w, err := openLogFile(path, 20, 10)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(10), info.Size())
}
