package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
	"github.com/0xPexy/sentra-inspect/internal/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	clientQueue    = 32
	broadcastQueue = 256
)

// subscribeMessage lets a client narrow the stream, e.g. {"actions":["arbitrage"]}.
// An empty list means every evaluation.
type subscribeMessage struct {
	Actions []string `json:"actions"`
}

type eventMessage struct {
	Type string                    `json:"type"`
	Data indexersvc.EvaluationItem `json:"data"`
}

type broadcast struct {
	actions []string
	payload []byte
}

type eventClient struct {
	conn *websocket.Conn
	send chan []byte
	// filter holds a map[string]struct{} of wanted action types, nil for all.
	filter atomic.Value
}

func (c *eventClient) wants(actions []string) bool {
	f, _ := c.filter.Load().(map[string]struct{})
	if len(f) == 0 {
		return true
	}
	for _, a := range actions {
		if _, ok := f[a]; ok {
			return true
		}
	}
	return false
}

// EventHub pushes newly stored evaluations to websocket subscribers. Run owns the
// client set; everything else talks to it over channels. Slow clients are dropped.
type EventHub struct {
	upgrader   websocket.Upgrader
	reader     *indexersvc.Reader
	logger     *zap.Logger
	register   chan *eventClient
	unregister chan *eventClient
	broadcast  chan broadcast
	clients    atomic.Int64
	done       chan struct{}
}

func NewEventHub(reader *indexersvc.Reader, logger *zap.Logger) *EventHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		reader:     reader,
		logger:     logger,
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		broadcast:  make(chan broadcast, broadcastQueue),
		done:       make(chan struct{}),
	}
}

// PublishEvaluation never blocks the indexer: when the hub is backed up the event is dropped.
func (h *EventHub) PublishEvaluation(ev *store.Evaluation) {
	item := h.reader.Item(*ev)
	payload, err := json.Marshal(eventMessage{Type: "evaluation", Data: item})
	if err != nil {
		h.logger.Warn("marshal event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- broadcast{actions: item.ActionTypes, payload: payload}:
	default:
		h.logger.Warn("event dropped, hub busy", zap.String("tx", ev.TxHash))
	}
}

func (h *EventHub) Run(ctx context.Context) {
	defer close(h.done)
	clients := make(map[*eventClient]struct{})
	drop := func(c *eventClient) {
		if _, ok := clients[c]; !ok {
			return
		}
		delete(clients, c)
		h.clients.Store(int64(len(clients)))
		close(c.send)
	}
	for {
		select {
		case <-ctx.Done():
			for c := range clients {
				c.conn.Close()
				drop(c)
			}
			return
		case c := <-h.register:
			clients[c] = struct{}{}
			h.clients.Store(int64(len(clients)))
		case c := <-h.unregister:
			drop(c)
		case msg := <-h.broadcast:
			for c := range clients {
				if !c.wants(msg.actions) {
					continue
				}
				select {
				case c.send <- msg.payload:
				default:
					h.logger.Debug("dropping slow client")
					drop(c)
				}
			}
		}
	}
}

func (h *EventHub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade websocket", zap.Error(err))
		return
	}
	client := &eventClient{conn: conn, send: make(chan []byte, clientQueue)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}
	go client.writePump()
	go h.readPump(client)
}

// ClientCount reports the number of connected subscribers.
func (h *EventHub) ClientCount() int {
	return int(h.clients.Load())
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump handles subscribe messages until the connection fails.
func (h *EventHub) readPump(c *eventClient) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var sub subscribeMessage
		if err := json.Unmarshal(raw, &sub); err != nil {
			h.logger.Debug("ignoring client message", zap.Error(err))
			continue
		}
		filter := make(map[string]struct{}, len(sub.Actions))
		for _, a := range sub.Actions {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				filter[a] = struct{}{}
			}
		}
		c.filter.Store(filter)
	}
}
