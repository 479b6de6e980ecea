package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubSendDeliversToUser(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	userId := uuid.New()
	client := &Client{UserID: userId, Send: make(chan []byte, 1)}
	h.register <- client
	waitFor(t, func() bool { return h.clientCount() == 1 })

	h.Send(userId, PushMessage{Type: "suggestion", Data: "hello"})

	select {
	case data := <-client.Send:
		assert.Contains(t, string(data), `"type":"suggestion"`)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubBroadcastDropsSlowClientsWithoutStalling(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	// Two clients with full send buffers in one fanout pass. The hub must
	// drop both, close each Send channel exactly once, and keep running.
	for i := 0; i < 2; i++ {
		client := &Client{UserID: uuid.New(), Send: make(chan []byte)}
		h.register <- client
	}
	waitFor(t, func() bool { return h.clientCount() == 2 })

	done := make(chan struct{})
	go func() {
		h.Broadcast(PushMessage{Type: "suggestion", Data: "x"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast stalled on slow clients")
	}
	waitFor(t, func() bool { return h.clientCount() == 0 })

	// A healthy client registered afterwards still gets messages.
	userId := uuid.New()
	healthy := &Client{UserID: userId, Send: make(chan []byte, 1)}
	h.register <- healthy
	waitFor(t, func() bool { return h.clientCount() == 1 })

	h.Send(userId, PushMessage{Type: "suggestion", Data: "y"})
	select {
	case <-healthy.Send:
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping slow clients")
	}
}
