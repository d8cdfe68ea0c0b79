package log

import (
	"fmt"
	"os"
	"sync"

	"ptykit/pkg/screen"
)

// TranscriptSink wraps a screen.Sink and records all PTY output to a file.
type TranscriptSink struct {
	inner screen.Sink

	mu      sync.Mutex
	logFile *os.File
}

var _ screen.Sink = (*TranscriptSink)(nil)

// NewTranscriptSink wraps a screen sink so that every chunk of session
// output is appended to the file at logFilePath before reaching the
// inner sink. The raw bytes are recorded, escape sequences included.
func NewTranscriptSink(inner screen.Sink, logFilePath string) (*TranscriptSink, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &TranscriptSink{inner: inner, logFile: logFile}, nil
}

// Feed appends p to the transcript and forwards it to the inner sink.
// A failed transcript write drops the recording, never the output.
func (ts *TranscriptSink) Feed(p []byte) {
	ts.mu.Lock()
	if ts.logFile != nil {
		if _, err := ts.logFile.Write(p); err != nil {
			ErrorMsg("writing transcript: %s\n", err)
			ts.logFile.Close()
			ts.logFile = nil
		}
	}
	ts.mu.Unlock()

	ts.inner.Feed(p)
}

func (ts *TranscriptSink) Resize(rows, cols int) {
	ts.inner.Resize(rows, cols)
}

func (ts *TranscriptSink) HistoryLen() int {
	return ts.inner.HistoryLen()
}

func (ts *TranscriptSink) CellAt(row, col int) screen.Cell {
	return ts.inner.CellAt(row, col)
}

func (ts *TranscriptSink) CursorPosition() (row, col int) {
	return ts.inner.CursorPosition()
}

// Close flushes and closes the transcript file. The inner sink is not
// touched.
func (ts *TranscriptSink) Close() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.logFile == nil {
		return nil
	}
	err := ts.logFile.Close()
	ts.logFile = nil
	if err != nil {
		return fmt.Errorf("closing transcript: %s", err)
	}
	return nil
}
