package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFileRunsOnceUpFront(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msd.csv")
	if err := os.WriteFile(path, []byte("t; v\n1; 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, zerolog.Nop(), func() error {
			runs.Add(1)
			cancel()
			return nil
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not return after cancel")
	}
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestFileRerunsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msd.csv")
	if err := os.WriteFile(path, []byte("t; v\n1; 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rerun := make(chan struct{}, 8)
	go func() {
		_ = File(ctx, path, zerolog.Nop(), func() error {
			if runs.Add(1) > 1 {
				rerun <- struct{}{}
			}
			return nil
		})
	}()

	// Give the watcher time to register, then touch the file.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("t; v\n1; 1\n2; 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rerun:
	case <-time.After(5 * time.Second):
		t.Fatal("analysis was not re-run after write")
	}
}

func TestFileWaitsForRunningAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msd.csv")
	if err := os.WriteFile(path, []byte("t; v\n1; 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = File(ctx, path, zerolog.Nop(), func() error {
			if runs.Add(1) == 2 {
				close(started)
				<-release
			}
			return nil
		})
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("t; v\n1; 1\n2; 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("analysis was not re-run after write")
	}

	// Cancel while the analysis is blocked: the watcher must not return
	// until the analysis finishes.
	cancel()
	select {
	case <-done:
		t.Fatal("watcher returned while analysis still running")
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not return after analysis finished")
	}
}
