package notify

import "sync"

// Hub: registry koneksi live per user, lokal proses. Baris notifikasi durable
// tetap sumber kebenaran; push di sini murni best-effort.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

type Subscriber struct {
	UserID string
	C      chan []byte
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{UserID: userID, C: make(chan []byte, 16)}
	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	h.remove(sub)
	h.mu.Unlock()
}

// caller memegang h.mu
func (h *Hub) remove(sub *Subscriber) {
	set, ok := h.subs[sub.UserID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.UserID)
	}
	close(sub.C)
}

// Push mengirim frame ke semua koneksi user. Subscriber yang buffer-nya penuh
// (client macet atau sudah putus) di-evict; dia masih bisa menarik ulang lewat
// fetch karena barisnya tersimpan.
func (h *Hub) Push(userID string, frame []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for sub := range h.subs[userID] {
		select {
		case sub.C <- frame:
			delivered++
		default:
			h.remove(sub)
		}
	}
	return delivered
}

func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
