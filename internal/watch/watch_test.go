package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/testlog-resolver/internal/batch"
	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
)

func TestWatcher_ResolvesNewFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, batch.Options{Scan: scan.DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	in := filepath.Join(dir, "unit7.log")
	content := "S/B 0 to 100\r\nMP 1 = 50  PASS/FAIL\r\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "unit7_processed.log")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(out); err == nil {
			cancel()
			<-w.Done()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("output file never appeared")
}

func TestWatcher_IgnoresOwnOutput(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), batch.Options{Scan: scan.DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if !w.isOwnOutput("/logs/unit7_processed.log") {
		t.Error("own output not recognized")
	}
	if w.isOwnOutput("/logs/unit7.log") {
		t.Error("input misrecognized as output")
	}
}
