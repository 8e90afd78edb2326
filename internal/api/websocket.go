package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/printcore/thermoprint/internal/printer"
	"github.com/printcore/thermoprint/pkg/template"
)

// WebSocket event names.
const (
	EventPrint         = "print"
	EventJobUpdate     = "job_update"
	EventDeviceAdded   = "printer_added"
	EventDeviceRemoved = "printer_removed"
	EventResponse      = "response"
	EventError         = "error"
)

// wsMessage is the envelope for every frame in both directions.
type wsMessage struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan wsMessage
	server *Server
}

// hub tracks connected clients for broadcasts.
type hub struct {
	clients map[*wsClient]bool
	mu      sync.RWMutex
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]bool)}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// broadcast fans a message out to every client. Clients with a full
// send buffer are skipped rather than blocked on.
func (h *hub) broadcast(msg wsMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
		}
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan wsMessage, 64),
		server: s,
	}

	s.log.Debug("websocket client connected", zap.String("remote", c.ClientIP()))
	go client.writePump()
	go client.readPump()
}

func (c *wsClient) readPump() {
	defer func() {
		c.server.hub.remove(c)
		close(c.send)
		c.conn.Close()
		c.server.log.Debug("websocket client disconnected")
	}()

	c.server.hub.add(c)

	for {
		var msg wsMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.server.log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (c *wsClient) handleMessage(msg *wsMessage) {
	switch msg.Event {
	case EventPrint:
		c.handlePrintEvent(msg.Data)
	default:
		c.sendError(fmt.Sprintf("unknown event: %s", msg.Event))
	}
}

// handlePrintEvent renders an embedded document and queues it, echoing
// the job ID back on the same socket.
func (c *wsClient) handlePrintEvent(data map[string]any) {
	deviceID, ok := data["device_id"].(string)
	if !ok || deviceID == "" {
		c.sendError("device_id is required")
		return
	}
	if c.server.manager.Get(deviceID) == nil {
		c.sendError("device not found: " + deviceID)
		return
	}

	raw, ok := data["document"]
	if !ok {
		c.sendError("document is required")
		return
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		c.sendError("invalid document: " + err.Error())
		return
	}

	doc, err := template.Parse(encoded)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	payload, err := doc.Render()
	if err != nil {
		c.sendError(err.Error())
		return
	}

	jobID := c.server.queue.Enqueue(deviceID, payload)
	c.send <- wsMessage{
		Event: EventResponse,
		Data:  map[string]any{"job_id": jobID},
	}
}

func (c *wsClient) sendError(message string) {
	c.send <- wsMessage{
		Event: EventError,
		Data:  map[string]any{"error": message},
	}
}

// BroadcastJobUpdate pushes a job state change to every client. Wire it
// to the queue's OnUpdate callback.
func (s *Server) BroadcastJobUpdate(job printer.Job) {
	data := map[string]any{
		"id":        job.ID,
		"device_id": job.DeviceID,
		"status":    job.Status,
		"retries":   job.Retries,
	}
	if job.Error != "" {
		data["error"] = job.Error
	}
	s.hub.broadcast(wsMessage{Event: EventJobUpdate, Data: data})
}

// BroadcastDeviceAdded announces a newly discovered printer.
func (s *Server) BroadcastDeviceAdded(d *printer.Device) {
	s.hub.broadcast(wsMessage{
		Event: EventDeviceAdded,
		Data: map[string]any{
			"id":          d.ID,
			"type":        d.Type,
			"description": d.Description,
			"name":        d.Name,
		},
	})
}

// BroadcastDeviceRemoved announces a printer that disappeared.
func (s *Server) BroadcastDeviceRemoved(deviceID string) {
	s.hub.broadcast(wsMessage{
		Event: EventDeviceRemoved,
		Data:  map[string]any{"id": deviceID},
	})
}
