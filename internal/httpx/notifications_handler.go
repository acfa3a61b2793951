package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merahputih/kafepos/internal/notify"
)

type NotificationsHandler struct {
	Store *notify.Store
	Hub   *notify.Hub

	// interval heartbeat stream; absennya heartbeat adalah sinyal ke client
	// untuk jatuh ke polling
	HeartbeatEvery time.Duration
}

func (h *NotificationsHandler) Register(r *chi.Mux) {
	r.Get("/notifications", h.list)
	r.Get("/notifications/unread-count", h.unreadCount)
	r.Put("/notifications/read", h.markRead)
	r.Get("/notifications/stream", h.stream)
}

func (h *NotificationsHandler) list(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ns, err := h.Store.ByUser(ctx, uid, r.URL.Query().Get("unread_only") == "true")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (h *NotificationsHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	n, err := h.Store.UnreadCount(ctx, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

type markReadReq struct {
	IDs []string `json:"notification_ids"`
}

func (h *NotificationsHandler) markRead(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}
	var req markReadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.MarkRead(ctx, uid, req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func sseFrame(v any) []byte {
	b, _ := json.Marshal(v)
	return []byte(fmt.Sprintf("data: %s\n\n", b))
}

// stream: Server-Sent Events. EventSource tidak bisa kirim header custom,
// jadi user id diterima juga lewat query. Push gagal = koneksi dianggap
// putus; baris durable tetap bisa ditarik lewat GET /notifications.
func (h *NotificationsHandler) stream(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		uid = r.URL.Query().Get("user_id")
	}
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing user id"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := h.Hub.Subscribe(uid)
	defer h.Hub.Unsubscribe(sub)

	_, _ = w.Write(sseFrame(map[string]string{"type": "connected", "message": "Connected to notifications"}))
	flusher.Flush()

	every := h.HeartbeatEvery
	if every <= 0 {
		every = 30 * time.Second
	}
	heartbeat := time.NewTicker(every)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, open := <-sub.C:
			if !open {
				// di-evict oleh hub
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			frame := sseFrame(map[string]any{"type": "heartbeat", "timestamp": time.Now().UnixMilli()})
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// NotificationFrame membungkus payload notifikasi jadi frame SSE.
func NotificationFrame(n json.RawMessage) []byte {
	return sseFrame(map[string]any{"type": "notification", "data": n})
}
