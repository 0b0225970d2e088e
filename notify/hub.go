package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// Event types
const (
	EventOrderCreated       = "order_created"
	EventOrderUpdated       = "order_updated"
	EventOrderMerged        = "order_merged"
	EventOrderDeleted       = "order_deleted"
	EventOrderPaid          = "order_paid"
	EventTableUpdated       = "table_updated"
	EventTableCreated       = "table_created"
	EventTableDeleted       = "table_deleted"
	EventWaiterCallCreated  = "waiter_call_created"
	EventWaiterCallResolved = "waiter_call_resolved"
	EventSaleRecorded       = "sale_recorded"
)

// soundEvents ring the dashboard bell for clients that want it.
var soundEvents = map[string]bool{
	EventOrderCreated:      true,
	EventWaiterCallCreated: true,
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	Sound bool        `json:"sound,omitempty"`
}

// Publisher is what the services need from the hub.
type Publisher interface {
	Publish(event string, data interface{})
}

type client struct {
	role   string
	userID uint
	sound  bool
}

// Hub keeps the connected staff dashboards.
type Hub struct {
	clients      map[*websocket.Conn]client
	mutex        sync.Mutex
	writeTimeout time.Duration
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*websocket.Conn]client),
		writeTimeout: 5 * time.Second,
	}
}

// Register adds a connection together with its sound preference.
func (h *Hub) Register(conn *websocket.Conn, role string, userID uint, sound bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = client{role: role, userID: userID, sound: sound}
}

// SetSound updates the sound flag of every open connection of userID.
func (h *Hub) SetSound(userID uint, enabled bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, cl := range h.clients {
		if cl.userID == userID {
			cl.sound = enabled
			h.clients[conn] = cl
		}
	}
}

// Unregister drops and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish sends an event to every client. Failed connections are dropped.
func (h *Hub) Publish(event string, data interface{}) {
	plain, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", event, err)
		return
	}
	withSound := plain
	if soundEvents[event] {
		if withSound, err = json.Marshal(Message{Event: event, Data: data, Sound: true}); err != nil {
			withSound = plain
		}
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, cl := range h.clients {
		payload := plain
		if cl.sound {
			payload = withSound
		}
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", event, cl.role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(string, interface{}) {}
