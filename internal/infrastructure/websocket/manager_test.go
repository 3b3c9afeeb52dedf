package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	a := &Client{ID: "a", UserID: "admin-1", Send: make(chan []byte, 4)}
	b := &Client{ID: "b", UserID: "admin-2", Send: make(chan []byte, 4)}
	require.True(t, m.RegisterClient(a))
	require.True(t, m.RegisterClient(b))
	require.Eventually(t, func() bool { return m.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	m.Broadcast(NewMessage(MessageTypeActivity, map[string]string{"action_type": "VERIFY_VENDOR"}))

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Send:
			var msg WSMessage
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, MessageTypeActivity, msg.Type)
		case <-time.After(time.Second):
			t.Fatalf("client %s got no message", c.ID)
		}
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	c := &Client{ID: "a", Send: make(chan []byte, 1)}
	m.Register <- c
	m.Unregister <- c

	require.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestRegisterClientAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)
	cancel()
	<-m.done

	registered := make(chan bool, 1)
	go func() { registered <- m.RegisterClient(&Client{ID: "late", Send: make(chan []byte, 1)}) }()

	select {
	case ok := <-registered:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("RegisterClient blocked after shutdown")
	}
	assert.Equal(t, 0, m.ClientCount())
}

func TestHandleClientMessage(t *testing.T) {
	reply := HandleClientMessage([]byte(`{"type":"ping"}`))
	require.NotNil(t, reply)
	assert.Equal(t, MessageTypePong, reply.Type)

	reply = HandleClientMessage([]byte(`{"type":"subscribe"}`))
	require.NotNil(t, reply)
	assert.Equal(t, MessageTypeError, reply.Type)

	reply = HandleClientMessage([]byte(`not json`))
	require.NotNil(t, reply)
	assert.Equal(t, MessageTypeError, reply.Type)
}
