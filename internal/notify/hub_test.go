package notify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPushDelivers(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("u1")
	defer h.Unsubscribe(sub)

	n := h.Push("u1", []byte("hello"))
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte("hello"), <-sub.C)
}

func TestHubPushUnknownUserNoop(t *testing.T) {
	h := NewHub()
	assert.Equal(t, 0, h.Push("nobody", []byte("x")))
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("u1")
	b := h.Subscribe("u1")

	assert.Equal(t, 2, h.Connected("u1"))
	assert.Equal(t, 2, h.Push("u1", []byte("x")))
	assert.Equal(t, []byte("x"), <-a.C)
	assert.Equal(t, []byte("x"), <-b.C)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("u1")
	h.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, h.Connected("u1"))

	// double unsubscribe tidak panic
	h.Unsubscribe(sub)
}

func TestHubEvictsFullSubscriber(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("u1")

	for i := 0; i < cap(sub.C); i++ {
		require.Equal(t, 1, h.Push("u1", []byte("fill")))
	}
	// buffer penuh: push berikutnya meng-evict, bukan block
	assert.Equal(t, 0, h.Push("u1", []byte("overflow")))
	assert.Equal(t, 0, h.Connected("u1"))
}

func TestHubConcurrentAccess(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%d", i%4)
			sub := h.Subscribe(userID)
			go func() {
				for range sub.C {
				}
			}()
			for j := 0; j < 50; j++ {
				h.Push(userID, []byte("frame"))
			}
			h.Unsubscribe(sub)
		}(i)
	}
	wg.Wait()
}
