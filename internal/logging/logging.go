package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levelFilter forwards only events at or above min to the wrapped writer.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// ConsoleLevel maps the global flags to the console threshold.
func ConsoleLevel(verbose, debug bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// Setup points the global logger at the console (stderr) and, when logFile is set,
// a JSON log file that always receives DEBUG and above. The returned func closes the file.
func Setup(logFile string, console zerolog.Level) (func() error, error) {
	return setup(logFile, console, os.Stderr)
}

func setup(logFile string, console zerolog.Level, stderr io.Writer) (func() error, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	cw := zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	writers := []io.Writer{levelFilter{w: cw, min: console}}

	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", logFile, err)
		}
		writers = append(writers, levelFilter{w: f, min: zerolog.DebugLevel})
		closer = f.Close
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	return closer, nil
}
