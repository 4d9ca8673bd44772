package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType identifies the envelope of every websocket message.
type MessageType string

const (
	MessageTypePing        MessageType = "ping"
	MessageTypePong        MessageType = "pong"
	MessageTypeError       MessageType = "error"
	MessageTypeSubscribe   MessageType = "subscribe"
	MessageTypeUnsubscribe MessageType = "unsubscribe"
	MessageTypeSnapshot    MessageType = "snapshot"
)

// Message is the standard structure for all websocket messages.
type Message struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// SubscribePayload selects the board scope a client wants snapshots for.
type SubscribePayload struct {
	Board string `json:"board"`
}

// SnapshotPayload carries the full current state of a board scope.
type SnapshotPayload struct {
	Board string      `json:"board"`
	State interface{} `json:"state"`
}

// ErrorPayload carries a failure scoped to a single client request.
type ErrorPayload struct {
	Message string `json:"message"`
}

// SnapshotSource builds the full current state of a board. The hub calls it
// once per publish and fans the result out to every subscriber of the room.
type SnapshotSource interface {
	BoardSnapshot(boardSlug string) (interface{}, error)
}

// Client is one websocket consumer. A client subscribes to at most one
// board at a time; resubscribing moves it to the new room.
type Client struct {
	ID    string
	Send  chan []byte
	done  chan struct{}
	board string
	once  sync.Once
}

// NewClient builds a hub client with a buffered send queue.
func NewClient(id string) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
}

// shutdown signals teardown exactly once. The send channel itself is never
// closed: both the hub and the connection's read goroutine enqueue on it,
// and closing under a concurrent sender would panic. Senders check done
// instead, and the write pump exits on it.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
	})
}

// deliver enqueues without blocking. The message is dropped when the client
// is shut down or its buffer is full; a client that cannot keep up misses
// the message and catches up on the next publish.
func (c *Client) deliver(msg []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.Send <- msg:
	default:
	}
}

type subscription struct {
	client *Client
	board  string
}

// Hub routes board snapshots to subscribed clients. All state is owned by
// the Run goroutine; callers talk to it through channels only.
type Hub struct {
	source SnapshotSource

	clients map[string]*Client
	rooms   map[string]map[string]*Client

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan *Client
	publish     chan string
}

func NewHub(source SnapshotSource) *Hub {
	return &Hub{
		source:      source,
		clients:     make(map[string]*Client),
		rooms:       make(map[string]map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan *Client),
		publish:     make(chan string, 64),
	}
}

// Publish notifies the hub that the board changed. Subscribers of the board
// receive a fresh full-state snapshot. Safe to call from any goroutine.
func (h *Hub) Publish(boardSlug string) {
	h.publish <- boardSlug
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.ID] = client

		case client := <-h.unregister:
			if _, exists := h.clients[client.ID]; exists {
				h.leaveRoom(client)
				delete(h.clients, client.ID)
			}
			client.shutdown()

		case sub := <-h.subscribe:
			// A subscribe racing its own unregister must not resurrect the
			// client into a room.
			if _, exists := h.clients[sub.client.ID]; !exists {
				continue
			}
			h.leaveRoom(sub.client)
			sub.client.board = sub.board
			room := h.rooms[sub.board]
			if room == nil {
				room = make(map[string]*Client)
				h.rooms[sub.board] = room
			}
			room[sub.client.ID] = sub.client

			// New subscribers get the current state right away.
			h.sendSnapshot(sub.board, sub.client)

		case client := <-h.unsubscribe:
			h.leaveRoom(client)

		case boardSlug := <-h.publish:
			room := h.rooms[boardSlug]
			if len(room) == 0 {
				continue
			}
			msg, ok := h.snapshotMessage(boardSlug)
			if !ok {
				continue
			}
			for _, client := range room {
				client.deliver(msg)
			}
		}
	}
}

func (h *Hub) leaveRoom(client *Client) {
	if client.board == "" {
		return
	}
	if room, exists := h.rooms[client.board]; exists {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, client.board)
		}
	}
	client.board = ""
}

func (h *Hub) sendSnapshot(boardSlug string, client *Client) {
	msg, ok := h.snapshotMessage(boardSlug)
	if !ok {
		SendError(client, "failed to load board state")
		return
	}
	client.deliver(msg)
}

func (h *Hub) snapshotMessage(boardSlug string) ([]byte, bool) {
	state, err := h.source.BoardSnapshot(boardSlug)
	if err != nil {
		log.Println("failed to build board snapshot:", err)
		return nil, false
	}

	msg, err := json.Marshal(Message{
		Type: MessageTypeSnapshot,
		Data: &SnapshotPayload{
			Board: boardSlug,
			State: state,
		},
	})
	if err != nil {
		log.Println("failed to marshal snapshot:", err)
		return nil, false
	}
	return msg, true
}

// SendError sends a standardized error message to a client
func SendError(client *Client, errorMsg string) {
	msg, err := json.Marshal(Message{
		Type: MessageTypeError,
		Data: &ErrorPayload{Message: errorMsg},
	})
	if err != nil {
		log.Println("failed to marshal error response:", err)
		return
	}
	client.deliver(msg)
}

func sendPong(client *Client) {
	msg, err := json.Marshal(Message{Type: MessageTypePong})
	if err != nil {
		log.Println("failed to marshal pong response:", err)
		return
	}
	client.deliver(msg)
}
