package nexuslogger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sinkSettings are fixed when a shared sink is created. The first logger to
// resolve a given target decides them; later handles for the same target
// share the sink as-is.
type sinkSettings struct {
	path            string // "" means console output
	consoleTarget   string // "stdout" or "stderr" when path is empty
	unixTimestamp   bool
	channelCapacity int64
	flushInterval   time.Duration
}

func (s *sinkSettings) console() bool {
	return s.path == ""
}

// sinkContext is the state owned exclusively by one sink worker: the open
// target, its rotation date, and the per-second format cache. Only the
// worker goroutine touches it.
type sinkContext struct {
	settings sinkSettings
	tr       *transport

	file             *os.File
	w                *bufio.Writer
	cache            *formatCache
	year, month, day int
}

// run is the worker loop. It drains directives until Exit, flushing the
// buffered target whenever more than flushInterval has passed since the
// last flush regardless of traffic shape. Any open or write failure is
// reported to stderr once and terminates the worker permanently for this
// sink; producers then discard silently.
func (s *sinkContext) run() {
	defer s.tr.disconnect()

	now := time.Now()
	y, m, d := now.Date()
	s.year, s.month, s.day = y, int(m), d
	if err := s.openTarget(); err != nil {
		fmt.Fprintf(os.Stderr, "nexuslogger: %v\n", err)
		return
	}
	defer func() {
		s.w.Flush()
		if s.file != nil {
			s.file.Close()
		}
	}()

	ticker := time.NewTicker(workerPollTimeout)
	defer ticker.Stop()
	lastFlush := time.Now()

	for {
		select {
		case d := <-s.tr.ch:
			switch d.kind {
			case dirWriteBatch:
				for i := range d.batch {
					if err := s.writeEntry(&d.batch[i]); err != nil {
						fmt.Fprintf(os.Stderr, "nexuslogger: write failed, sink terminated: %v\n", err)
						return
					}
				}
			case dirFlush:
				err := s.w.Flush()
				if d.confirm != nil {
					close(d.confirm)
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "nexuslogger: flush failed, sink terminated: %v\n", err)
					return
				}
			case dirExit:
				s.w.Flush()
				return
			}
		case <-ticker.C:
		}

		if time.Since(lastFlush) >= s.settings.flushInterval {
			lastFlush = time.Now()
			if err := s.w.Flush(); err != nil {
				fmt.Fprintf(os.Stderr, "nexuslogger: flush failed, sink terminated: %v\n", err)
				return
			}
		}
	}
}

// writeEntry checks rotation against the entry's local calendar date, then
// formats and writes it. Console targets never rotate.
func (s *sinkContext) writeEntry(e *entry) error {
	s.cache.update(e.ts.secs)

	if !s.settings.console() &&
		(s.cache.year != s.year || s.cache.month != s.month || s.cache.day != s.day) {
		s.year, s.month, s.day = s.cache.year, s.cache.month, s.cache.day
		if err := s.reopen(); err != nil {
			return err
		}
	}

	return s.cache.writeEntry(s.w, e, s.settings.unixTimestamp)
}

// openTarget opens the dated file for the context's current rotation date,
// or wraps the console stream. Parent directories are created as needed.
func (s *sinkContext) openTarget() error {
	if s.settings.console() {
		var out io.Writer = os.Stdout
		if s.settings.consoleTarget == "stderr" {
			out = os.Stderr
		}
		s.w = bufio.NewWriterSize(out, writerBufferSize)
		return nil
	}

	path := rotatedPath(s.settings.path, s.year, s.month, s.day)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmtErrorf("failed to create log directory '%s': %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}
	s.file = f
	s.w = bufio.NewWriterSize(f, writerBufferSize)
	return nil
}

func (s *sinkContext) reopen() error {
	if s.w != nil {
		if err := s.w.Flush(); err != nil {
			return err
		}
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	return s.openTarget()
}

// rotatedPath derives the dated filename for a rotation: "app.log" becomes
// "app_20240115.log". A path without a recognizable stem/extension pair
// gets "_YYYYMMDD.log" appended to the raw path instead; the two shapes are
// intentionally distinct.
func rotatedPath(path string, year, month, day int) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" || stem == "" {
		return fmt.Sprintf("%s_%04d%02d%02d.log", path, year, month, day)
	}
	name := fmt.Sprintf("%s_%04d%02d%02d%s", stem, year, month, day, ext)
	dir := filepath.Dir(path)
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}
