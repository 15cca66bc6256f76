package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesSubscribers(t *testing.T) {
	h := NewHub()
	alice := make(Client, 1)
	bob := make(Client, 1)
	h.Subscribe(1, alice)
	h.Subscribe(2, bob)

	h.Broadcast([]uint{1, 3}, Event{Type: EventMessageCreated, Payload: map[string]string{"text": "hi"}})

	require.Len(t, alice, 1)
	var event Event
	require.NoError(t, json.Unmarshal(<-alice, &event))
	assert.Equal(t, EventMessageCreated, event.Type)
	assert.Empty(t, bob)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)

	h.Broadcast([]uint{1}, Event{Type: "a"})
	h.Broadcast([]uint{1}, Event{Type: "b"})

	assert.Len(t, client, 1)
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)
	assert.Equal(t, 1, h.Subscribers(1))

	h.Unsubscribe(1, client)
	assert.Zero(t, h.Subscribers(1))

	_, open := <-client
	assert.False(t, open)

	// unsubscribing twice must not close the channel again
	assert.NotPanics(t, func() { h.Unsubscribe(1, client) })
}
