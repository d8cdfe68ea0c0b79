package log

import (
	"bytes"
	"os"
	"testing"

	"ptykit/mocks"
)

func TestTranscriptSink_Feed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/session.log"
	inner := mocks.NewMockSink(24, 80)

	ts, err := NewTranscriptSink(inner, tmpFile)
	if err != nil {
		t.Fatalf("NewTranscriptSink() error = %v", err)
	}
	defer ts.Close()

	ts.Feed([]byte("echo hello\r\n"))
	ts.Feed([]byte("hello\r\n"))

	want := []byte("echo hello\r\nhello\r\n")

	logData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(logData, want) {
		t.Errorf("transcript contains %q, want %q", logData, want)
	}

	// the inner sink still sees every chunk
	if got := inner.Joined(); !bytes.Equal(got, want) {
		t.Errorf("inner sink got %q, want %q", got, want)
	}
}

func TestTranscriptSink_Delegates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/session.log"
	inner := mocks.NewMockSink(24, 80)
	inner.SetHistoryLen(7)
	inner.SetRowText(0, "x")

	ts, err := NewTranscriptSink(inner, tmpFile)
	if err != nil {
		t.Fatalf("NewTranscriptSink() error = %v", err)
	}
	defer ts.Close()

	if got := ts.HistoryLen(); got != 7 {
		t.Errorf("HistoryLen() = %d, want 7", got)
	}
	if got := ts.CellAt(0, 0).Ch; got != 'x' {
		t.Errorf("CellAt(0, 0).Ch = %q, want 'x'", got)
	}

	ts.Resize(50, 120)
	resizes := inner.Resizes()
	if len(resizes) != 1 || resizes[0] != [2]int{50, 120} {
		t.Errorf("inner resizes = %v, want [[50 120]]", resizes)
	}
}

func TestTranscriptSink_AppendsAcrossSessions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/session.log"

	for _, chunk := range []string{"one", "two"} {
		ts, err := NewTranscriptSink(mocks.NewMockSink(24, 80), tmpFile)
		if err != nil {
			t.Fatalf("NewTranscriptSink() error = %v", err)
		}
		ts.Feed([]byte(chunk))
		if err := ts.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	logData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(logData, []byte("onetwo")) {
		t.Errorf("transcript contains %q, want %q", logData, "onetwo")
	}
}

func TestTranscriptSink_CloseIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	inner := mocks.NewMockSink(24, 80)
	ts, err := NewTranscriptSink(inner, t.TempDir()+"/session.log")
	if err != nil {
		t.Fatalf("NewTranscriptSink() error = %v", err)
	}

	if err := ts.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := ts.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// feeding after close still reaches the inner sink
	ts.Feed([]byte("late"))
	if got := inner.Joined(); !bytes.Equal(got, []byte("late")) {
		t.Errorf("inner sink got %q, want %q", got, "late")
	}
}
