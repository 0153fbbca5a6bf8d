package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) *WebSocketManager {
	t.Helper()
	m := NewWebSocketManager()
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx)
	t.Cleanup(cancel)
	return m
}

func newTestClient(m *WebSocketManager, userID string, buffer int) *Client {
	return &Client{UserID: userID, Send: make(chan any, buffer), Ctx: context.Background(), Manager: m}
}

func TestManager_SendToUser(t *testing.T) {
	m := startManager(t)
	tab1 := newTestClient(m, "user-1", 4)
	tab2 := newTestClient(m, "user-1", 4)
	other := newTestClient(m, "user-2", 4)

	m.Register(tab1)
	m.Register(tab2)
	m.Register(other)
	require.Eventually(t, func() bool { return m.GetClientCount() == 3 }, time.Second, 5*time.Millisecond)

	m.SendToUser("user-1", "match.created", map[string]string{"match_id": "m1"})

	for _, c := range []*Client{tab1, tab2} {
		select {
		case msg := <-c.Send:
			ev, ok := msg.(Event)
			require.True(t, ok)
			assert.Equal(t, "match.created", ev.Type)
		default:
			t.Fatal("expected an event for every connection of the user")
		}
	}
	assert.Empty(t, other.Send)

	t.Run("unknown user is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { m.SendToUser("nobody", "x", nil) })
	})
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	m := startManager(t)
	c := newTestClient(m, "user-1", 1)

	m.Register(c)
	require.Eventually(t, func() bool { return m.IsUserConnected("user-1") }, time.Second, 5*time.Millisecond)

	m.Unregister(c)
	require.Eventually(t, func() bool { return !m.IsUserConnected("user-1") }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)

	// повторная отписка не закрывает канал второй раз
	assert.NotPanics(t, func() { m.Unregister(c) })
}

func TestManager_SlowClientIsDropped(t *testing.T) {
	m := startManager(t)
	c := newTestClient(m, "user-1", 1)
	m.Register(c)
	require.Eventually(t, func() bool { return m.IsUserConnected("user-1") }, time.Second, 5*time.Millisecond)

	m.SendToUser("user-1", "a", nil)
	m.SendToUser("user-1", "b", nil) // буфер полон

	require.Eventually(t, func() bool { return !m.IsUserConnected("user-1") }, time.Second, 5*time.Millisecond)
}

func TestManager_ShutdownClosesClients(t *testing.T) {
	m := NewWebSocketManager()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(stopped)
	}()

	c := newTestClient(m, "user-1", 1)
	m.Register(c)
	cancel()
	<-stopped

	_, open := <-c.Send
	assert.False(t, open)

	late := newTestClient(m, "user-2", 1)
	m.Register(late)
	_, open = <-late.Send
	assert.False(t, open, "registering after shutdown must not block")
}
