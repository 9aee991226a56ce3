package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer

	l := NewWriterLogger(&out, &errOut, false)
	l.Debug("hidden")
	l.Info("analysis started", Fields{"file": "a.wav"})
	l.Warn("replaced samples", Fields{"count": 3})
	l.Error(errors.New("boom"), "stage failed", Fields{"stage": "loudness"})

	if strings.Contains(out.String(), "hidden") {
		t.Fatal("debug message logged at info level")
	}
	if !strings.Contains(out.String(), "[INFO] analysis started file=a.wav") {
		t.Fatalf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[WARN] replaced samples count=3") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] stage failed: boom stage=loudness") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestWithFieldsSharesLevelAndSortsKeys(t *testing.T) {
	var out bytes.Buffer

	parent := NewWriterLogger(&out, &out, false)
	child := parent.WithFields(Fields{"z": 1, "a": 2})

	parent.SetLevel(DebugLevel)
	child.Debug("msg", Fields{"m": 3})

	if !strings.Contains(out.String(), "[DEBUG] msg a=2 m=3 z=1") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	parent.Info("plain")
	if strings.Contains(out.String(), "z=1") {
		t.Fatal("child fields leaked into parent")
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	var out bytes.Buffer
	SetGlobalLogger(NewWriterLogger(&out, &out, false))
	Info("hello")

	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("output = %q", out.String())
	}

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(NoOpLogger); !ok {
		t.Fatalf("nil logger gives %T", GetGlobalLogger())
	}
	Warn("dropped")
}

func TestLevelString(t *testing.T) {
	if WarnLevel.String() != "WARN" || Level(42).String() != "UNKNOWN" {
		t.Fatal("level names")
	}
}
