package logger

import "testing"

func TestNew(t *testing.T) {
	l, err := New(false, "warn", "json")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Core().Enabled(-1) {
		t.Fatal("debug level should be disabled at warn")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(true, "loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(true, "", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
