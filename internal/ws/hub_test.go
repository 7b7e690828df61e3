package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test clients are built with a nil conn: registry membership and the send
// buffer never touch the underlying connection.
func newTestClient(userID uint, username string, channelID uint) *Client {
	return NewClient(context.Background(), nil, userID, username, channelID)
}

func recvFrame(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.send:
		return data
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected a frame, got none")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if ok {
			t.Fatalf("expected no frame, got %s", data)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRoomJoinLeaveAlgebra(t *testing.T) {
	room := NewRoom(1)

	c1 := newTestClient(1, "alice", 1)
	c2 := newTestClient(2, "bob", 1)

	room.Register(c1)
	room.Register(c2)
	assert.Equal(t, 2, room.MemberCount())

	// join is idempotent
	room.Register(c1)
	assert.Equal(t, 2, room.MemberCount())
	assert.True(t, room.Contains(c1))

	room.Unregister(c1)
	assert.Equal(t, 1, room.MemberCount())
	assert.False(t, room.Contains(c1))

	// leave-if-absent is a no-op, not an error
	room.Unregister(c1)
	assert.Equal(t, 1, room.MemberCount())

	room.Unregister(newTestClient(9, "nobody", 1))
	assert.Equal(t, 1, room.MemberCount())
}

func TestBroadcastReachesAllMembersIncludingSender(t *testing.T) {
	room := NewRoom(1)

	a := newTestClient(1, "A", 1)
	b := newTestClient(2, "B", 1)
	c := newTestClient(3, "C", 1)

	room.Register(a)
	room.Register(b)
	room.Register(c)

	payload := []byte(`{"message":"hello","author":"A"}`)
	room.Broadcast(payload)

	for _, client := range []*Client{a, b, c} {
		assert.Equal(t, payload, recvFrame(t, client))
	}
}

func TestLeftClientReceivesNothing(t *testing.T) {
	room := NewRoom(1)

	c1 := newTestClient(1, "C1", 1)
	c2 := newTestClient(2, "C2", 1)

	room.Register(c1)
	room.Register(c2)

	room.Unregister(c1)
	c1.Close()

	room.Broadcast([]byte(`{"message":"after leave","author":"C2"}`))

	recvFrame(t, c2)
	assertNoFrame(t, c1)
}

func TestBroadcastDropsClosedClients(t *testing.T) {
	room := NewRoom(1)

	alive := newTestClient(1, "alive", 1)
	dead := newTestClient(2, "dead", 1)

	room.Register(alive)
	room.Register(dead)

	// A closed client fails its send; the registry treats that as a
	// disconnect and removes the stale handle.
	dead.Close()
	room.Broadcast([]byte(`{"message":"x","author":"alive"}`))

	assert.True(t, room.Contains(alive))
	assert.False(t, room.Contains(dead))
	assert.Equal(t, 1, room.MemberCount())
	recvFrame(t, alive)
}

func TestSendRawFailsWhenBufferFull(t *testing.T) {
	c := newTestClient(1, "slow", 1)

	for i := 0; i < maxSendChannelSize; i++ {
		require.True(t, c.SendRaw([]byte("x")))
	}

	assert.False(t, c.SendRaw([]byte("overflow")))
}

func TestHubLazyRoomCreation(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()

	_, exists := hub.RoomIfExists(42)
	assert.False(t, exists)

	room := hub.GetRoom(42)
	require.NotNil(t, room)

	again, exists := hub.RoomIfExists(42)
	assert.True(t, exists)
	assert.Same(t, room, again)
	assert.Same(t, room, hub.GetRoom(42))
}

func TestHubBroadcastChatMessageWireFormat(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()

	c1 := newTestClient(1, "C1", 7)
	hub.GetRoom(7).Register(c1)

	hub.BroadcastChatMessage(7, "hi", "C1")

	var frame map[string]string
	require.NoError(t, json.Unmarshal(recvFrame(t, c1), &frame))
	assert.Equal(t, map[string]string{"message": "hi", "author": "C1"}, frame)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()

	c1 := newTestClient(1, "C1", 1)
	hub.GetRoom(1).Register(c1)

	hub.Shutdown()

	assert.True(t, c1.IsClosed())
	_, exists := hub.RoomIfExists(1)
	assert.False(t, exists)
}

func TestConcurrentJoinLeaveBroadcast(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()

	room := hub.GetRoom(1)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := newTestClient(uint(n+1), "user", 1)
			room.Register(c)
			room.Broadcast([]byte(`{"message":"m","author":"user"}`))
			room.Unregister(c)
			c.Close()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, room.MemberCount())
}

func TestErrorEventShape(t *testing.T) {
	data, err := json.Marshal(NewErrorEvent("message field is required"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","error":"message field is required"}`, string(data))
}
