// Package logutils constructs the application logger. The TUI owns the
// terminal, so logs default to a file; the console writer is only used when
// no file is configured (plain CLI commands).
package logutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON to the given file, creating parent
// directories as needed. If file is empty, logs go to stderr through the
// human-readable console writer instead.
//
// The level parameter is one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == "" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr}
		l := zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
		return l, closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}

	osFile, err := os.Create(file)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = osFile.Close() }

	l := zerolog.New(osFile).With().Timestamp().Logger().Level(lvl)
	return l, closer, nil
}
