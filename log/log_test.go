package log

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

var (
	sampleInt      = 3
	sampleBytes    = []byte("123")
	sampleList     = []int64{10, 0, -10}
	sampleDuration = time.Second
	sampleTime     = time.Unix(12345678, 0)

	errSample = errors.New("some error")
)

func doLogs() {
	// Some sample logs from existing code.
	Infof("masked %d chunks for %x", sampleInt, sampleBytes)
	Debugw("parsing blob", "words", 5, "curve", "bjj_gnark")
	Errorf("cannot derive key stream: %v", errSample)
	Warnw("various types",
		"list", sampleList,
		"duration", sampleDuration,
		"time", sampleTime,
	)
	Error(errSample)
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logTestWriter = &buf
	Init(LogLevelInfo, logTestWriterName, nil)
	if Level() != LogLevelInfo {
		t.Fatalf("Level() = %q, want %q", Level(), LogLevelInfo)
	}

	Debug("below the configured level")
	Info("visible entry")
	out := buf.String()
	if strings.Contains(out, "below the configured level") {
		t.Errorf("debug entry leaked through info level: %q", out)
	}
	if !strings.Contains(out, "visible entry") {
		t.Errorf("info entry missing from output: %q", out)
	}
}

func TestErrorOutput(t *testing.T) {
	var errBuf bytes.Buffer
	logTestWriter = io.Discard
	Init(LogLevelDebug, logTestWriterName, &errBuf)

	Info("not for the error stream")
	Errorf("broken: %v", errSample)

	out := errBuf.String()
	if strings.Contains(out, "not for the error stream") {
		t.Errorf("info entry leaked to error output: %q", out)
	}
	if !strings.Contains(out, "broken") {
		t.Errorf("error entry missing from error output: %q", out)
	}
}

func TestCheckInvalidChars(t *testing.T) {
	t.Cleanup(func() { panicOnInvalidChars = false })

	v := []byte{'h', 'e', 'l', 'l', 'o', 0xff, 'w', 'o', 'r', 'l', 'd'}
	panicOnInvalidChars = false
	logTestWriter = io.Discard
	Init(LogLevelDebug, logTestWriterName, nil)
	Debugf("%s", v)
	// should not panic since the flag is false. if it panics, test will fail

	// now enable panic and try again: should recover() and never reach t.Errorf()
	panicOnInvalidChars = true
	Init(LogLevelDebug, logTestWriterName, nil)
	defer func() { recover() }()
	Debugf("%s", v)
	t.Errorf("Debugf(%s) should have panicked because of invalid char", v)
}

func BenchmarkLogger(b *testing.B) {
	logTestWriter = io.Discard // to not grow a buffer
	Init(LogLevelDebug, logTestWriterName, nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		doLogs()
	}
}
