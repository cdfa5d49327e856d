// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the console logger used by the CLI.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing timestamped, level-colored lines to w.
func New(w io.Writer, verbose bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
