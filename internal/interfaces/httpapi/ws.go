package httpapi

import (
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/gridiron-league/pairdraft/internal/draftroom"
)

const (
	wsEventBuffer   = 16
	wsWriteDeadline = 10 * time.Second
	wsPongWait      = 60 * time.Second
	wsPingPeriod    = 45 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are vetted by the CORS layer; the websocket
	// handshake accepts any origin the LB let through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DraftRoomWS upgrades the request and streams the draft's events until
// the client disconnects. Events a slow client cannot keep up with are
// dropped, not queued without bound.
func (h *Handler) DraftRoomWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draftID := r.PathValue("draftID")

	// Reject unknown drafts before committing to the upgrade.
	if _, err := h.draftService.GetDraftDetail(ctx, draftID); err != nil {
		h.respondError(ctx, w, "DraftRoomWS", err)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "draft_id", draftID, "error", err)
		return
	}
	defer conn.Close()

	events := make(chan draftroom.Event, wsEventBuffer)
	h.rooms.Subscribe(draftID, events)
	defer h.rooms.Unsubscribe(draftID, events)

	h.logger.InfoContext(ctx, "draft room subscriber joined",
		"draft_id", draftID,
		"subscribers", h.rooms.Subscribers(draftID),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pinger := time.NewTicker(wsPingPeriod)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case ev := <-events:
			payload, err := sonic.Marshal(ev)
			if err != nil {
				h.logger.ErrorContext(ctx, "encode draft event", "draft_id", draftID, "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
			if ev.Type == draftroom.EventDraftCompleted {
				_ = conn.WriteMessage(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "draft completed"),
				)
				return
			}
		}
	}
}
