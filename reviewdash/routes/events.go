// reviewdash/routes/events.go
package routes

import (
	"encoding/json"
	"net/http"

	"reviewdash/reviewdash/services/events"
	"reviewdash/reviewdash/utils/logging"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// EventsHandler streams import events to a websocket client as JSON text
// messages until either side goes away.
func EventsHandler(hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		// clients never send; CloseRead notices when they leave
		ctx := conn.CloseRead(r.Context())
		sub, cancel := hub.Subscribe()
		defer func() {
			cancel()
			logging.AppLogger.Info("events client left", zap.Int("subscribers", hub.Subscribers()))
		}()
		logging.AppLogger.Info("events client joined", zap.Int("subscribers", hub.Subscribers()))

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					logging.ErrorLogger.Error("encode event", zap.Error(err))
					continue
				}
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					return
				}
			}
		}
	}
}
