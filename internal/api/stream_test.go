package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"inputhook/internal/event"
	"inputhook/internal/protocol"
)

func startStream(t *testing.T, format string, token string) (*Stream, string) {
	t.Helper()
	stream := NewStream(format, 16, func() string { return "running" })
	ctx, cancel := context.WithCancel(context.Background())
	go stream.Run(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(NewServer(Options{Token: token, Stream: stream, Injector: &recordingInjector{}}).Handler())
	t.Cleanup(srv.Close)
	return stream, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) (int, []byte) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	return kind, data
}

func readHello(t *testing.T, conn *websocket.Conn) protocol.HelloPayload {
	t.Helper()
	_, data := readMessage(t, conn)
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal(hello) error = %v", err)
	}
	if msg.Type != protocol.TypeHello {
		t.Fatalf("Expected hello first, got %s", msg.Type)
	}
	var hello protocol.HelloPayload
	if err := msg.Decode(&hello); err != nil {
		t.Fatalf("Decode(hello) error = %v", err)
	}
	return hello
}

func TestStreamDeliversJSONEvents(t *testing.T) {
	stream, url := startStream(t, "json", "")
	conn := dial(t, url)

	hello := readHello(t, conn)
	if hello.State != "running" || hello.Format != "json" {
		t.Errorf("Unexpected hello %+v", hello)
	}

	want := event.NewKeyPressed(7, event.MaskCtrlL, event.Keyboard{Keycode: event.VCC, Rawcode: 0x43, Keychar: event.CharUndefined})
	stream.Publish(want)

	_, data := readMessage(t, conn)
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got, err := msg.Event()
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestStreamDeliversBinaryFrames(t *testing.T) {
	stream, url := startStream(t, "binary", "")
	conn := dial(t, url)
	readHello(t, conn)

	want := event.NewMouseWheel(9, 0, event.Wheel{Clicks: 1, Type: event.WheelUnitScroll, Amount: 3, Rotation: 1, Direction: event.WheelVertical})
	stream.Publish(want)

	kind, data := readMessage(t, conn)
	if kind != websocket.BinaryMessage {
		t.Fatalf("Expected binary message, got %d", kind)
	}
	got, err := protocol.DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestStreamNewSubscriberReplacesOld(t *testing.T) {
	stream, url := startStream(t, "json", "")
	first := dial(t, url)
	readHello(t, first)

	second := dial(t, url)
	readHello(t, second)

	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := first.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected first subscriber to be closed, got %v", err)
	}

	stream.Publish(event.NewMouseMoved(1, 0, event.Mouse{X: 3, Y: 4}))
	_, data := readMessage(t, second)
	if !strings.Contains(string(data), `"mouse_moved"`) {
		t.Errorf("Expected event on second subscriber, got %s", data)
	}
}

func TestStreamRequiresToken(t *testing.T) {
	_, url := startStream(t, "json", "secret")
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatalf("Expected handshake without token to fail")
	}
	conn := dial(t, url+"?token=secret")
	readHello(t, conn)
}

func TestStreamPingReply(t *testing.T) {
	_, url := startStream(t, "json", "")
	conn := dial(t, url)
	readHello(t, conn)

	if err := conn.WriteJSON(protocol.Message{Type: protocol.TypePing}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	_, data := readMessage(t, conn)
	if !strings.Contains(string(data), `"ping"`) {
		t.Errorf("Expected ping reply, got %s", data)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	stream := NewStream("json", 2, nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			stream.Publish(event.NewMouseMoved(uint64(i), 0, event.Mouse{}))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked with a full queue")
	}
	if got := stream.Dropped(); got != 8 {
		t.Errorf("Expected 8 dropped, got %d", got)
	}
}
