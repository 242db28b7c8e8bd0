package chat

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/render"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

const writeWait = 10 * time.Second

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// handleEvents streams appended transcript lines as Server-Sent Events.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	chatWidget, ok := h.lookup(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates, cancel := chatWidget.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	sessionID := chatWidget.Session().ID
	log.Debug().Str("session", sessionID).Msg("[sse] opening transcript stream")

	if err := utils.SendSSEEvent(w, flusher, "status", viewOf(chatWidget)); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("session", sessionID).Msg("[sse] client went away")
			return
		case msg, open := <-updates:
			if !open {
				_ = utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": sessionID})
				return
			}
			if err := utils.SendSSEEvent(w, flusher, "message", render.ProjectMessage(msg)); err != nil {
				return
			}
		}
	}
}

// handleWebSocket pushes appended transcript lines over a websocket.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	chatWidget, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[ws] upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := chatWidget.Subscribe()
	defer cancel()

	sessionID := chatWidget.Session().ID

	// Drain inbound frames so close and ping frames get processed.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(msgType string, data interface{}) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(outgoingMessage{
			Type:      msgType,
			SessionID: sessionID,
			Data:      data,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	if err := send("status", viewOf(chatWidget)); err != nil {
		return
	}

	for {
		select {
		case <-gone:
			return
		case msg, open := <-updates:
			if !open {
				_ = send("closed", nil)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := send("message", render.ProjectMessage(msg)); err != nil {
				log.Debug().Err(err).Str("session", sessionID).Msg("[ws] write failed")
				return
			}
		}
	}
}
