package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// newLogger writes human readable logs to out, coloured only on a terminal.
func newLogger(level string, out *os.File) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if raw := strings.ToLower(strings.TrimSpace(level)); raw != "" {
		parsed, err := zerolog.ParseLevel(raw)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
		}
		lvl = parsed
	}

	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !isatty.IsTerminal(out.Fd()),
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
