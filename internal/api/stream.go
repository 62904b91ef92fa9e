package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"inputhook/internal/event"
	"inputhook/internal/logging"
	"inputhook/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Access is gated by the bearer token, not by origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream hands captured events to at most one WebSocket subscriber. Publish never
// blocks, so it can be called from the capture thread; events that do not fit in the
// queue are counted and dropped.
type Stream struct {
	format string
	state  func() string
	events chan event.InputEvent

	dropped  atomic.Uint64
	reported uint64 // owned by Run

	mu     sync.Mutex
	client *streamClient
}

type outbound struct {
	kind int
	data []byte
}

// streamClient represents the connected subscriber
type streamClient struct {
	stream *Stream
	conn   *websocket.Conn
	send   chan outbound
	ip     string
}

// NewStream creates a stream that encodes events as "json" messages or "binary"
// frames, queueing up to buffer events. state, if set, is reported in the hello message.
func NewStream(format string, buffer int, state func() string) *Stream {
	if buffer <= 0 {
		buffer = 1
	}
	return &Stream{
		format: format,
		state:  state,
		events: make(chan event.InputEvent, buffer),
	}
}

// Publish queues e for the subscriber. It reports false when the queue was full.
func (s *Stream) Publish(e event.InputEvent) bool {
	select {
	case s.events <- e:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of events discarded so far.
func (s *Stream) Dropped() uint64 {
	return s.dropped.Load()
}

// Subscribed reports whether a subscriber is connected.
func (s *Stream) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// Run forwards queued events to the subscriber until ctx is done. Events queued while
// nobody is subscribed are discarded without counting.
func (s *Stream) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.detach(nil)
			return
		case e := <-s.events:
			msg, err := s.encode(e)
			if err != nil {
				logging.Warnf("stream: failed to encode %s: %v", e.Kind(), err)
				continue
			}
			if !s.deliver(msg) {
				continue
			}
			s.reportDrops()
		}
	}
}

func (s *Stream) encode(e event.InputEvent) (outbound, error) {
	if s.format == "binary" {
		frame, err := protocol.EncodeEvent(e)
		return outbound{websocket.BinaryMessage, frame}, err
	}
	msg, err := protocol.EventMessage(e)
	if err != nil {
		return outbound{}, err
	}
	data, err := json.Marshal(msg)
	return outbound{websocket.TextMessage, data}, err
}

func (s *Stream) reportDrops() {
	total := s.dropped.Load()
	if total == s.reported {
		return
	}
	msg, err := protocol.NewMessage(protocol.TypeDropped, protocol.DroppedPayload{Count: total})
	if err != nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if s.deliver(outbound{websocket.TextMessage, data}) {
		s.reported = total
	}
}

// deliver hands msg to the subscriber without blocking. A full send queue counts as a drop.
func (s *Stream) deliver(msg outbound) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return false
	}
	select {
	case s.client.send <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// attach makes c the subscriber, closing the previous one, and queues the hello message.
func (s *Stream) attach(c *streamClient, hello outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		logging.Infof("stream: subscriber %s replaced by %s", s.client.ip, c.ip)
		close(s.client.send)
	}
	s.client = c
	c.send <- hello
}

// detach drops c if it is still the subscriber; a nil c drops whoever is attached.
func (s *Stream) detach(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil || (c != nil && s.client != c) {
		return
	}
	close(s.client.send)
	logging.Infof("stream: subscriber %s detached", s.client.ip)
	s.client = nil
}

func (s *Stream) hello() (outbound, error) {
	payload := protocol.HelloPayload{Version: Version, Format: s.format}
	if s.state != nil {
		payload.State = s.state()
	}
	msg, err := protocol.NewMessage(protocol.TypeHello, payload)
	if err != nil {
		return outbound{}, err
	}
	data, err := json.Marshal(msg)
	return outbound{websocket.TextMessage, data}, err
}

// ServeHTTP upgrades the request and makes the caller the subscriber.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hello, err := s.hello()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warnf("stream: failed to upgrade connection: %v", err)
		return
	}

	client := &streamClient{
		stream: s,
		conn:   conn,
		send:   make(chan outbound, sendBuffer),
		ip:     r.RemoteAddr,
	}
	s.attach(client, hello)
	logging.Infof("stream: subscriber %s attached", client.ip)

	go client.writePump()
	go client.readPump()
}

// readPump watches the connection for pings and for the peer going away.
func (c *streamClient) readPump() {
	defer func() {
		c.stream.detach(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Debugf("stream: read error: %v", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

// writePump pumps messages from the stream to the websocket connection.
func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Replaced or detached.
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "subscriber replaced"))
				return
			}
			if err := c.conn.WriteMessage(msg.kind, msg.data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *streamClient) handleMessage(data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.Debugf("stream: invalid message from %s: %v", c.ip, err)
		return
	}

	switch msg.Type {
	case protocol.TypePing:
		reply, err := json.Marshal(protocol.Message{Type: protocol.TypePing})
		if err != nil {
			return
		}
		c.stream.mu.Lock()
		if c.stream.client == c {
			select {
			case c.send <- outbound{websocket.TextMessage, reply}:
			default:
			}
		}
		c.stream.mu.Unlock()
	default:
		logging.Debugf("stream: ignoring %s message from %s", msg.Type, c.ip)
	}
}
