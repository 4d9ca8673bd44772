package realtime

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler upgrades the connection and runs the read loop. Writes happen on
// a separate pump so a stalled reader never blocks the hub.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(uuid.NewString())

		hub.register <- client

		// Write loop. Exits on the client's done signal; the send channel
		// stays open so concurrent senders never hit a closed channel.
		go func() {
			defer func() {
				hub.unregister <- client
				conn.Close()
			}()
			for {
				select {
				case msg := <-client.Send:
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						log.Println("write error:", err)
						return
					}
				case <-client.done:
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}

			msg, err := parseMessage(raw)
			if err != nil {
				SendError(client, "invalid message")
				continue
			}

			switch msg.Type {
			case MessageTypePing:
				sendPong(client)
			case MessageTypeSubscribe:
				payload, ok := msg.Data.(*SubscribePayload)
				if !ok || payload.Board == "" {
					SendError(client, "subscribe requires a board")
					continue
				}
				hub.subscribe <- subscription{client: client, board: payload.Board}
			case MessageTypeUnsubscribe:
				hub.unsubscribe <- client
			default:
				SendError(client, "unknown message type")
			}
		}

		hub.unregister <- client
	})
}

// parseMessage parses an incoming websocket message into its envelope.
func parseMessage(raw []byte) (*Message, error) {
	var rawMessage struct {
		Type MessageType     `json:"type"`
		Data json.RawMessage `json:"data,omitempty"`
	}
	if err := json.Unmarshal(raw, &rawMessage); err != nil {
		return nil, err
	}

	message := &Message{Type: rawMessage.Type}

	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case MessageTypeSubscribe:
			var payload SubscribePayload
			if err := json.Unmarshal(rawMessage.Data, &payload); err != nil {
				return nil, err
			}
			message.Data = &payload
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}

	return message, nil
}
