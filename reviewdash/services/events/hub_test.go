package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelB()
	assert.Equal(t, 2, h.Subscribers())

	h.Publish(Event{Type: TypeImportCompleted, Kind: "intents", Count: 9})

	for _, ch := range []<-chan Event{a, b} {
		ev := <-ch
		assert.Equal(t, "intents", ev.Kind)
		assert.Equal(t, 9, ev.Count)
	}

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish(Event{Count: i})
	}
	require.Len(t, ch, subscriberBuffer)
	assert.Equal(t, 0, (<-ch).Count)
}
