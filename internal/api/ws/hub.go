package ws

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"economic-wars/internal/config"
	"economic-wars/internal/room"
)

// Hub upgrades connections and routes their messages to the room manager.
type Hub struct {
	manager  RoomManager
	cfg      config.Config
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub(manager RoomManager, cfg config.Config, logger *zap.Logger) *Hub {
	h := &Hub{
		manager: manager,
		cfg:     cfg,
		logger:  logger.Named("ws"),
		clients: make(map[string]*Client),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.String("origin", c.Request.Header.Get("Origin")), zap.Error(err))
		return
	}

	client := newClient(uuid.NewString(), conn, rate.NewLimiter(rate.Limit(h.cfg.ActionRate), h.cfg.ActionBurst), h.logger)
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	client.logger.Debug("connected", zap.String("remote", c.ClientIP()))

	go client.writePump()
	client.readPump(h.dispatch)

	h.manager.Disconnect(client)
	client.Close()
	h.mu.Lock()
	delete(h.clients, client.id)
	h.mu.Unlock()
	client.logger.Debug("disconnected")
}

func (h *Hub) dispatch(c *Client, env envelope) error {
	err := h.route(c, env)
	if errors.Is(err, errMalformed) {
		c.logger.Debug("malformed message", zap.String("type", env.Type), zap.Error(err))
		return errMalformed
	}
	return err
}

func (h *Hub) route(c *Client, env envelope) error {
	switch env.Type {
	case inCreateRoom:
		var req room.CreateRequest
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		_, err := h.manager.CreateRoom(c, req)
		return err
	case inJoinRoom:
		var req room.JoinRequest
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		return h.manager.JoinRoom(c, req)
	case inStartGame:
		var req startGame
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		return h.manager.StartGame(c, req.MapID)
	case inResumeGame:
		var req resumeGame
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		return h.manager.ResumeGame(c, req.Code)
	case inGameAction:
		a, err := decodeAction(env.Data)
		if err != nil {
			return err
		}
		return h.manager.Act(c, a)
	case inKick:
		var req kickPlayer
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		return h.manager.Kick(c, req.PlayerID)
	case inChat:
		var req chatMessage
		if err := decode(env.Data, &req); err != nil {
			return err
		}
		if req.Text == "" {
			req.Text = req.Message
		}
		return h.manager.Chat(c, req.Text)
	case inLeaveRoom:
		h.manager.Leave(c)
		return nil
	}
	return errUnknownType
}

// Count is the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every open connection.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.Close()
	}
}
