package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/config"
	"github.com/jtsang27/crust-sim/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Local simulation bridge; drivers connect from arbitrary origins.
		return true
	},
}

// StartWebSocketServer runs the bridge endpoint at /ws until the listener
// fails. It blocks, so callers usually run it in a goroutine. store may be
// nil when no database is configured.
func StartWebSocketServer(cfg config.ServerConfig, engine *game.Engine, store MatchStore, logger *zap.Logger) error {
	hub := NewHub(engine, store, logger)
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r, logger)
	})

	logger.Info("websocket bridge listening",
		zap.String("address", cfg.Address),
		zap.String("endpoint", "/ws"),
	)
	return http.ListenAndServe(cfg.Address, mux)
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(conn)
	hub.register <- client

	go client.writePump()
	go client.readPump(hub)
}
