package realtime

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	failFor string
}

func (f *fakeSource) BoardSnapshot(boardSlug string) (interface{}, error) {
	if boardSlug == f.failFor {
		return nil, errors.New("boom")
	}
	return map[string]string{"board": boardSlug}, nil
}

func newTestClient(id string) *Client {
	return NewClient(id)
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case raw := <-client.Send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("Failed to decode message: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
		return Message{}
	}
}

func expectSilence(t *testing.T, client *Client) {
	t.Helper()
	select {
	case raw := <-client.Send:
		t.Fatalf("Expected no message, got %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func snapshotBoard(t *testing.T, msg Message) string {
	t.Helper()
	if msg.Type != MessageTypeSnapshot {
		t.Fatalf("Expected snapshot message, got %q", msg.Type)
	}
	data, _ := msg.Data.(map[string]interface{})
	board, _ := data["board"].(string)
	return board
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.subscribe <- subscription{client: client, board: "b1"}

	msg := receive(t, client)
	if board := snapshotBoard(t, msg); board != "b1" {
		t.Errorf("Expected snapshot for b1, got %q", board)
	}
}

func TestPublishReachesOnlySubscribedRoom(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	clientA := newTestClient("a")
	clientB := newTestClient("b")
	hub.register <- clientA
	hub.register <- clientB
	hub.subscribe <- subscription{client: clientA, board: "b1"}
	hub.subscribe <- subscription{client: clientB, board: "b2"}

	// Drain the initial snapshots
	receive(t, clientA)
	receive(t, clientB)

	hub.Publish("b1")

	msg := receive(t, clientA)
	if board := snapshotBoard(t, msg); board != "b1" {
		t.Errorf("Expected snapshot for b1, got %q", board)
	}
	expectSilence(t, clientB)
}

func TestResubscribeMovesRooms(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.subscribe <- subscription{client: client, board: "b1"}
	receive(t, client)

	hub.subscribe <- subscription{client: client, board: "b2"}
	receive(t, client)

	hub.Publish("b1")
	expectSilence(t, client)

	hub.Publish("b2")
	msg := receive(t, client)
	if board := snapshotBoard(t, msg); board != "b2" {
		t.Errorf("Expected snapshot for b2, got %q", board)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.subscribe <- subscription{client: client, board: "b1"}
	receive(t, client)

	hub.unsubscribe <- client
	hub.Publish("b1")
	expectSilence(t, client)
}

func TestUnregisterSignalsShutdown(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.subscribe <- subscription{client: client, board: "b1"}
	receive(t, client)

	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for shutdown signal")
	}

	// A second unregister for the same client must be harmless
	hub.unregister <- client
}

func TestSendAfterUnregisterIsDropped(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.unregister <- client
	<-client.done

	// The read loop may still be handling a message when the write pump
	// tears the client down; these must drop silently, never panic.
	SendError(client, "too late")
	sendPong(client)
	expectSilence(t, client)
}

func TestSubscribeAfterUnregisterIsRefused(t *testing.T) {
	hub := NewHub(&fakeSource{})
	go hub.Run()

	dead := newTestClient("a")
	hub.register <- dead
	hub.unregister <- dead
	<-dead.done

	// A late subscribe must not put the dead client back into a room.
	hub.subscribe <- subscription{client: dead, board: "b1"}
	expectSilence(t, dead)

	// The hub keeps serving live clients after the refused subscribe.
	live := newTestClient("b")
	hub.register <- live
	hub.subscribe <- subscription{client: live, board: "b1"}
	receive(t, live)

	hub.Publish("b1")
	msg := receive(t, live)
	if board := snapshotBoard(t, msg); board != "b1" {
		t.Errorf("Expected snapshot for b1, got %q", board)
	}
	expectSilence(t, dead)
}

func TestSubscribeFailureSendsError(t *testing.T) {
	hub := NewHub(&fakeSource{failFor: "broken"})
	go hub.Run()

	client := newTestClient("a")
	hub.register <- client
	hub.subscribe <- subscription{client: client, board: "broken"}

	msg := receive(t, client)
	if msg.Type != MessageTypeError {
		t.Errorf("Expected error message, got %q", msg.Type)
	}
}
