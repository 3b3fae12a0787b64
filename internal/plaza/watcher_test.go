package plaza

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir, svc := newTestService(t)
	write(t, dir, "plaza.json", `{"plazaName": "P", "businesses": [{"id": "a", "name": "A"}]}`)
	if err := svc.Load(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 4)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, svc, dir, logger, func() {
			reloaded <- struct{}{}
		})
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	write(t, dir, "plaza.json", `{"plazaName": "P", "businesses": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}]}`)

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	list, err := svc.Businesses()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("businesses after reload = %d, want 2", len(list))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after cancel")
	}
}
