// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog logger shared by the allie commands.
//
// The TUI owns the terminal, so in that mode logs only go to a file.
// One-shot commands and the REPL write human-readable logs to stderr and,
// when configured, to a file as well.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name (default: info)
	Level string

	// File appends JSON lines to this path when set
	File string

	// Console receives human-readable output when set
	Console io.Writer

	// ConsoleLevel raises the minimum level written to Console; the file
	// still receives everything at Level
	ConsoleLevel string

	// NoColor disables ANSI colors on the console writer
	NoColor bool
}

// New creates a logger. The returned closer releases the log file and is
// never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
		level = parsed
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console != nil {
		var console io.Writer = zerolog.ConsoleWriter{
			Out:        opts.Console,
			NoColor:    opts.NoColor,
			TimeFormat: time.Kitchen,
		}
		if opts.ConsoleLevel != "" {
			floor, err := zerolog.ParseLevel(strings.ToLower(opts.ConsoleLevel))
			if err != nil {
				return zerolog.Nop(), nopCloser{}, errors.Wrapf(err, "invalid console log level %q", opts.ConsoleLevel)
			}
			console = &zerolog.FilteredLevelWriter{
				Writer: zerolog.LevelWriterAdapter{Writer: console},
				Level:  floor,
			}
		}
		writers = append(writers, console)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Wrap(err, "failed to create log directory")
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Wrap(err, "failed to open log file")
		}
		writers = append(writers, f)
		closer = f
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
