package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	advisor   *AdvisorService

	// mu guards runCancel. At most one simulation runs per connection.
	mu        sync.Mutex
	runCancel context.CancelFunc
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, advisor *AdvisorService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
		advisor: advisor,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeRecommend:
		var data RecommendData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse recommend data")
			return
		}
		c.handleRecommend(msg.RequestID, data)

	case MessageTypeHouseWay:
		var data HouseWayData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse house way data")
			return
		}
		c.handleHouseWay(msg.RequestID, data)

	case MessageTypeCancel:
		c.handleCancel(msg.RequestID)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = requestID

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

func (c *Connection) reply(requestID string, messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	_ = c.SendMessage(msg) // Ignore send errors
}

func (c *Connection) handleRecommend(requestID string, data RecommendData) {
	c.logger.Info("Recommend request", "cards", data.Cards, "samples", data.Samples)

	if c.advisor == nil {
		c.sendError(requestID, "service_unavailable", "Advisor service not available")
		return
	}

	c.mu.Lock()
	if c.runCancel != nil {
		c.mu.Unlock()
		c.sendError(requestID, "simulation_in_progress", "A simulation is already running on this connection")
		return
	}
	runCtx, cancel := context.WithCancel(c.ctx)
	c.runCancel = cancel
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.runCancel = nil
			c.mu.Unlock()
			cancel()
		}()

		progress := func(fraction float64) {
			c.reply(requestID, MessageTypeProgress, ProgressData{Fraction: fraction})
		}

		rec, seed, err := c.advisor.Recommend(runCtx, data, progress)
		if err != nil {
			c.sendError(requestID, errorCode(err), err.Error())
			return
		}

		if rec.Canceled {
			c.reply(requestID, MessageTypeCanceled, CanceledData{Samples: rec.Samples})
			return
		}

		ranked := make([]ResultInfo, len(rec.Ranked))
		for i, r := range rec.Ranked {
			ranked[i] = ResultInfoFrom(r)
		}
		c.reply(requestID, MessageTypeRecommendation, RecommendationData{
			Best:    ResultInfoFrom(rec.Best),
			Ranked:  ranked,
			Samples: rec.Samples,
			Seed:    seed,
		})
	}()
}

func (c *Connection) handleHouseWay(requestID string, data HouseWayData) {
	c.logger.Info("House way request", "cards", data.Cards)

	if c.advisor == nil {
		c.sendError(requestID, "service_unavailable", "Advisor service not available")
		return
	}

	rp, err := c.advisor.HouseWay(data.Cards)
	if err != nil {
		c.sendError(requestID, errorCode(err), err.Error())
		return
	}

	c.reply(requestID, MessageTypeHouseWayResult, HouseWayResultData{
		Partition: PartitionInfoFrom(rp),
	})
}

// handleCancel stops the in-flight simulation, if any. The canceled
// result is delivered by the recommend goroutine once it drains.
func (c *Connection) handleCancel(requestID string) {
	c.mu.Lock()
	cancel := c.runCancel
	c.mu.Unlock()

	if cancel == nil {
		c.sendError(requestID, "no_simulation", "No simulation in progress")
		return
	}
	c.logger.Info("Cancel request", "requestId", requestID)
	cancel()
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, simulator.ErrInvalidHand):
		return "invalid_hand"
	case errors.Is(err, simulator.ErrInvalidSamples):
		return "invalid_samples"
	default:
		return "internal_error"
	}
}
