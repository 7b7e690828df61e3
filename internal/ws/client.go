package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 64 * 1024 // 64KB
	maxSendChannelSize = 256
)

// Client is the handle for one live websocket connection. The resolved
// identity is attached at accept time and travels with the handle; nothing
// downstream resolves users from ambient state.
type Client struct {
	ID        string
	UserID    uint
	Username  string
	ChannelID uint
	ctx       context.Context
	cancel    context.CancelFunc
	conn      *websocket.Conn
	send      chan []byte
	mu        sync.RWMutex
	isClosed  bool
}

// NewClient wraps an upgraded connection. conn may be nil in tests that
// only exercise registry membership and the send buffer.
func NewClient(ctx context.Context, conn *websocket.Conn, userID uint, username string, channelID uint) *Client {
	ctx, cancel := context.WithCancel(ctx)

	return &Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		ChannelID: channelID,
		ctx:       ctx,
		cancel:    cancel,
		conn:      conn,
		send:      make(chan []byte, maxSendChannelSize),
	}
}

// ReadPump reads frames from the client until the transport closes. A frame
// that is not valid JSON gets an error frame back instead of tearing the
// connection down; everything else goes to handleIncoming.
func (c *Client) ReadPump(handleIncoming func(*Client, InEvent)) {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure) {
					log.Printf("client read error: %v", err)
				}
				return
			}

			var ev InEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				c.SendJSON(NewErrorEvent("invalid JSON payload"))
				continue
			}

			handleIncoming(c, ev)
		}
	}
}

// WritePump drains the send buffer into the connection and keeps the
// connection alive with pings.
func (c *Client) WritePump() error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return nil
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return nil
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return err
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func (c *Client) SendJSON(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("client marshal error: %v", err)
		return false
	}

	return c.SendRaw(data)
}

// SendRaw queues data without blocking. A full buffer or a closed client
// reports failure; the caller treats that as a disconnect.
func (c *Client) SendRaw(data []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isClosed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isClosed {
		return
	}

	c.isClosed = true
	c.cancel()
	close(c.send)
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isClosed
}
