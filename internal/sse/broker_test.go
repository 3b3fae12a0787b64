package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishPlazaReloaded(12)

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: plaza.reloaded") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"businessCount":12`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := NewBroker()
	b.Close()

	// None of these may panic or block.
	b.Publish(Event{Type: "x"})
	b.Unsubscribe(b.Subscribe())
	if b.ClientCount() != 0 {
		t.Error("closed broker should report 0 clients")
	}
}

func TestServeHTTPStreamsEvents(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	srv := httptest.NewServer(b)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content-type = %q", ct)
	}

	// Wait for the subscription to register, then publish.
	deadline := time.Now().Add(time.Second)
	for b.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	b.PublishPlazaReloaded(3)

	buf := make([]byte, 512)
	n, err := res.Body.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(buf[:n]), "plaza.reloaded") {
		t.Errorf("stream payload = %q", buf[:n])
	}
}
