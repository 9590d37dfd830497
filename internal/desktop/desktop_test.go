package desktop

import (
	"context"
	"testing"
)

func TestCopyFailsWithoutWlCopy(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if err := Copy(context.Background(), "/tmp/x.png"); err == nil {
		t.Fatal("expected an error when wl-copy is not installed")
	}
}

func TestSignalBarDisabled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	// Must return without attempting to run anything.
	SignalBar(context.Background(), 0)
	SignalBar(context.Background(), -3)
}
