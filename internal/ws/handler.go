package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"gas_balance/internal/balance"
	"gas_balance/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes scenario-run requests
// to the runner. Runs execute strictly one at a time: a request arriving
// while a run is in flight is rejected with run:error.
type Handler struct {
	hub      *Hub
	runner   *balance.Runner
	defaults model.Scenario

	mu      sync.Mutex
	running bool
}

func NewHandler(hub *Hub, runner *balance.Runner, defaults model.Scenario) *Handler {
	return &Handler{hub: hub, runner: runner, defaults: defaults}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Prefill the front-end with the default parameterization
	h.sendDefaults(client)

	// Read messages from client
	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeScenarioRun:
		var p RunRequestPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				log.Printf("Invalid scenario:run payload: %v", err)
				h.sendError(c, "", "invalid scenario:run payload: "+err.Error())
				return
			}
		}
		sc, err := p.Apply(h.defaults)
		if err != nil {
			h.sendError(c, "", err.Error())
			return
		}
		h.startRun(c, sc)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

// startRun launches the scenario on its own goroutine, holding the
// single run slot until it finishes.
func (h *Handler) startRun(c *Client, sc model.Scenario) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.sendError(c, sc.Name(), "a run is already in flight")
		return
	}
	h.running = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
		}()

		log.Printf("Running scenario %s", sc.Name())
		if _, err := h.runner.Run(sc); err != nil {
			log.Printf("Scenario %s failed: %v", sc.Name(), err)
			h.broadcastError(sc.Name(), err.Error())
		}
	}()
}

func (h *Handler) sendDefaults(c *Client) {
	msg, err := NewEnvelope(TypeScenarioDefaults, DefaultsPayload(h.defaults))
	if err != nil {
		log.Printf("Error creating scenario:defaults message: %v", err)
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) sendError(c *Client, scenario, detail string) {
	msg, err := NewEnvelope(TypeRunError, RunErrorPayload{Scenario: scenario, Error: detail})
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) broadcastError(scenario, detail string) {
	msg, err := NewEnvelope(TypeRunError, RunErrorPayload{Scenario: scenario, Error: detail})
	if err != nil {
		return
	}
	h.hub.Broadcast(msg)
}
