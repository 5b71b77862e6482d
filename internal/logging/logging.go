package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init routes the global logger to path, or to the console when path is empty.
// The returned Closer releases the log file.
func Init(level zerolog.Level, path string) io.Closer {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	var closer io.Closer = nopCloser{}

	if path != "" {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}
		out = logFile
		closer = logFile
	}

	log.Logger = New(out, level)

	if level == zerolog.DebugLevel {
		log.Debug().Msg("Log level set to DEBUG")
	}
	return closer
}

func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.MultiLevelWriter(w)).Level(level).With().Timestamp().Logger()
}
