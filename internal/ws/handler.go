package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-backend/internal/hub"
	"github.com/DoyleJ11/bracket-backend/internal/session"
	"github.com/DoyleJ11/bracket-backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades /ws?code=XXXXXX and streams that bracket's snapshots.
// Messages from the client are commands; rejections come back as Error
// messages on the same socket.
func Handler(h *hub.Hub, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		s, err := h.Get(r.Context(), code)
		if err != nil || s == nil {
			http.Error(w, "bracket not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			log.Debug("ws accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := uuid.NewString()
		clog := log.With(zap.String("code", code), zap.String("client", clientID))

		if err := s.Send(r.Context(), session.Join{ClientID: clientID, Outbox: out}); err != nil {
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = s.Send(ctx, session.Leave{ClientID: clientID})
			cancel()
		}()
		clog.Debug("client joined")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// Session closed our outbox: leave, shutdown or we were too slow.
						conn.Close(websocket.StatusGoingAway, "session closed")
						return
					}
					if err := write(writeCtx, conn, types.Snapshot(snap.Version, snap.State, nil)); err != nil {
						clog.Debug("write snapshot", zap.Error(err))
						return
					}
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					clog.Debug("ws read", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.Error(errors.New("bad json")))
				continue
			}
			cmd, err := cm.ToCommand()
			if err != nil {
				_ = write(r.Context(), conn, types.Error(err))
				continue
			}

			res, err := s.Do(r.Context(), cmd)
			if err != nil {
				return
			}
			if res.Err != nil {
				_ = write(r.Context(), conn, types.Error(res.Err))
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
