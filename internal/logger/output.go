package logger

import (
	"io"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file output.
const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
)

// OpenOutput returns the writer logs should go to. "stderr" (or an empty
// path) logs to the console; anything else is a size-rotated file whose
// directory is created on first write. Close the returned closer on exit.
func OpenOutput(path string) (io.Writer, io.Closer) {
	if p := strings.TrimSpace(path); p == "" || strings.EqualFold(p, "stderr") {
		return os.Stderr, nopCloser{}
	}
	rl := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
	}
	return rl, rl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
