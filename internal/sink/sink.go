// Package sink implements the Output Sink described in spec.md §4.9: a tee
// of a stdout leg and an optional file leg, with silent-mode suppression
// and the exit-code-relevant distinction between a fatal file-write error
// and a silently absorbed broken stdout pipe.
package sink

import (
	"bufio"
	"io"
	"os"
)

// Sink writes rendered output to stdout and, optionally, to a file.
type Sink struct {
	stdout  io.Writer
	silent  bool
	file    *os.File
	fileBuf *bufio.Writer
}

// New creates a Sink writing to stdout. When silent is true, the stdout leg
// is suppressed entirely (spec.md §4.9); this is only valid when a file
// leg is also attached, which config validation enforces before a Sink is
// ever constructed.
func New(stdout io.Writer, silent bool) *Sink {
	return &Sink{stdout: stdout, silent: silent}
}

// AttachFile opens path for writing (truncating any existing content) and
// adds it as the Sink's file leg. It is the caller's responsibility to
// call Close when done.
func (s *Sink) AttachFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s.file = f
	s.fileBuf = bufio.NewWriter(f)
	return nil
}

// WriteStdoutLine writes one line (plus a trailing newline) to the stdout
// leg, unless silent mode suppresses it. Per spec.md §4.9/§7, stdout-leg
// errors are never reported to the caller -- a broken pipe from a closed
// downstream reader is the expected case, and stdout failures are never a
// path to a nonzero exit regardless of cause.
func (s *Sink) WriteStdoutLine(line string) error {
	if s.silent {
		return nil
	}
	_, _ = io.WriteString(s.stdout, line+"\n")
	return nil
}

// WriteFile writes data to the file leg verbatim (used for the serialized
// structured-format representation). A nil file leg is a no-op.
//
// Unlike the stdout leg, any error here is returned to the caller: per
// spec.md §4.9/§7, file-write failures are the one output-side path to a
// nonzero exit (the Pipeline Orchestrator wraps this into an output error,
// exit code 3).
func (s *Sink) WriteFile(data []byte) error {
	if s.fileBuf == nil {
		return nil
	}
	_, err := s.fileBuf.Write(data)
	return err
}

// Close flushes and closes the file leg, if one is attached. The stdout
// leg needs no closing: it is never owned by the Sink.
func (s *Sink) Close() error {
	if s.fileBuf == nil {
		return nil
	}
	if err := s.fileBuf.Flush(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
