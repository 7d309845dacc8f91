package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"economic-wars/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 128
)

// Client is one WebSocket connection. All writes go through the send
// queue so the room manager never blocks on a slow socket.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan room.Message
	quit    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	logger  *zap.Logger
}

func newClient(id string, conn *websocket.Conn, limiter *rate.Limiter, logger *zap.Logger) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan room.Message, sendBuffer),
		quit:    make(chan struct{}),
		limiter: limiter,
		logger:  logger.With(zap.String("conn", id)),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues msg. A client whose queue is full is dropped.
func (c *Client) Send(msg room.Message) {
	select {
	case <-c.quit:
		return
	default:
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send queue full, closing connection")
		c.Close()
	}
}

// Close flushes queued messages and then closes the socket.
func (c *Client) Close() {
	c.once.Do(func() { close(c.quit) })
}

func (c *Client) sendError(err error) {
	c.Send(room.Message{Type: room.MsgError, Data: map[string]string{"message": err.Error()}})
}

func (c *Client) write(msg room.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("encode message", zap.String("type", msg.Type), zap.Error(err))
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.quit:
			for {
				select {
				case msg := <-c.send:
					if err := c.write(msg); err != nil {
						return
					}
				default:
					_ = c.conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(writeWait))
					return
				}
			}
		}
	}
}

// readPump reads frames until the socket fails, handing each one to
// dispatch.
func (c *Client) readPump(dispatch func(*Client, envelope) error) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", zap.Error(err))
			}
			return
		}
		if !c.limiter.Allow() {
			c.sendError(errRateLimited)
			continue
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			c.sendError(errMalformed)
			continue
		}
		if err := dispatch(c, env); err != nil {
			c.sendError(err)
		}
	}
}
