package auxcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/is"
)

// relayServer is a minimal stand-in for the vendor's push relay. It accepts
// the websocket upgrade, acks init and ping frames and lets tests push
// frames to the connected listener or break the session protocol.
type relayServer struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	initStatus     atomic.Int32
	pingStatus     atomic.Int32
	rejectUpgrades atomic.Bool

	mu       sync.Mutex
	conn     *websocket.Conn
	inits    []relayInitFrame
	attempts []time.Time
	connects atomic.Int32
	pings    atomic.Int32
}

func newRelayServer(t *testing.T) *relayServer {
	r := &relayServer{}

	// the listener sends the vendor Origin header, which the default
	// same-origin check would reject with a 403
	r.upgrader.CheckOrigin = func(*http.Request) bool { return true }

	r.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != relayConnectPath {
			t.Errorf("unexpected path %s", req.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		r.mu.Lock()
		r.attempts = append(r.attempts, time.Now())
		r.mu.Unlock()

		if r.rejectUpgrades.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		conn, err := r.upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}

		r.connects.Add(1)

		r.mu.Lock()
		r.conn = conn
		r.mu.Unlock()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var frame relayInitFrame
			if json.Unmarshal(data, &frame) != nil {
				continue
			}

			switch frame.MsgType {
			case "init":
				r.mu.Lock()
				r.inits = append(r.inits, frame)
				r.mu.Unlock()
				conn.WriteJSON(map[string]any{"msgtype": "initk", "status": r.initStatus.Load()})
			case "ping":
				r.pings.Add(1)
				conn.WriteJSON(map[string]any{"msgtype": "pingk", "status": r.pingStatus.Load()})
			}
		}
	}))

	t.Cleanup(r.srv.Close)
	return r
}

func (r *relayServer) url() string {
	return strings.Replace(r.srv.URL, "http://", "ws://", 1) + relayConnectPath
}

func (r *relayServer) attemptTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Time, len(r.attempts))
	copy(out, r.attempts)
	return out
}

func (r *relayServer) push(t *testing.T, frame string) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		conn := r.conn
		r.mu.Unlock()

		if conn != nil {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				t.Fatal(err)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no relay connection to push to")
}

func (r *relayServer) dropConnection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

func newLoggedInClient() *Client {
	c := New(RegionEU)
	c.mu.Lock()
	c.loginSession = "sess-1"
	c.userID = "user-1"
	c.mu.Unlock()
	return c
}

func waitForCondition(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached within deadline")
}

func TestListenerPerformsInitHandshake(t *testing.T) {
	is := is.New(t)
	relay := newRelayServer(t)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	waitForCondition(t, func() bool {
		relay.mu.Lock()
		defer relay.mu.Unlock()
		return len(relay.inits) > 0
	})

	relay.mu.Lock()
	init := relay.inits[0]
	relay.mu.Unlock()

	is.Equal(init.MsgType, "init")
	is.Equal(init.Data["relayrule"], "share")
	is.Equal(init.Scope.LoginSession, "sess-1")
	is.Equal(init.Scope.UserID, "user-1")
}

func TestListenerDispatchesPushFrames(t *testing.T) {
	is := is.New(t)
	relay := newRelayServer(t)

	var mu sync.Mutex
	var received []PushMessage

	handler := func(ctx context.Context, msg PushMessage) {
		mu.Lock()
		received = append(received, msg)
		mu.Unlock()
	}

	l := NewPushListener(newLoggedInClient(), handler,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	frame := `{"msgtype":"statechanged","status":0,"data":{"endpointId":"d1"}}`
	relay.push(t, frame)

	waitForCondition(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) > 0
	})

	mu.Lock()
	msg := received[0]
	mu.Unlock()

	is.Equal(msg.MsgType, "statechanged")
	is.Equal(msg.EndpointID(), "d1")
	is.Equal(string(msg.Raw), frame)
}

func TestListenerReconnectsAfterConnectionLoss(t *testing.T) {
	relay := newRelayServer(t)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	waitForCondition(t, func() bool { return relay.connects.Load() >= 1 })

	relay.dropConnection()

	waitForCondition(t, func() bool { return relay.connects.Load() >= 2 })
}

func TestListenerBackoffDoublesAndResetsOnSuccess(t *testing.T) {
	is := is.New(t)
	relay := newRelayServer(t)
	relay.rejectUpgrades.Store(true)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(40*time.Millisecond, 500*time.Millisecond),
		WithPingInterval(15*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	// four failed attempts: the sleeps in between are 40, 80 and 160ms
	waitForCondition(t, func() bool {
		return len(relay.attemptTimes()) >= 4
	})

	attempts := relay.attemptTimes()
	is.True(attempts[1].Sub(attempts[0]) >= 40*time.Millisecond)
	is.True(attempts[2].Sub(attempts[1]) >= 80*time.Millisecond)
	is.True(attempts[3].Sub(attempts[2]) >= 160*time.Millisecond)

	// let the next attempt through and wait for an established session
	relay.rejectUpgrades.Store(false)
	waitForCondition(t, func() bool { return relay.pings.Load() >= 1 })

	// the success reset the delay to its floor: the reconnect after a
	// connection loss must come well before the previously reached 320ms
	relay.dropConnection()
	lost := time.Now()
	before := relay.connects.Load()

	waitForCondition(t, func() bool { return relay.connects.Load() > before })

	if since := time.Since(lost); since >= 320*time.Millisecond {
		t.Fatalf("reconnect took %v, delay was not reset after a successful handshake", since)
	}
}

func TestListenerReconnectsWhenSessionIsRejected(t *testing.T) {
	relay := newRelayServer(t)
	relay.initStatus.Store(-1)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
		WithPingInterval(15*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	// every initk with a non-zero status must close the connection and be
	// followed by a fresh handshake attempt
	waitForCondition(t, func() bool { return relay.connects.Load() >= 3 })

	// once the relay accepts the session, pings start flowing
	relay.initStatus.Store(0)
	waitForCondition(t, func() bool { return relay.pings.Load() >= 1 })
}

func TestListenerReconnectsWhenSessionDies(t *testing.T) {
	relay := newRelayServer(t)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
		WithPingInterval(15*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	waitForCondition(t, func() bool { return relay.pings.Load() >= 1 })
	connected := relay.connects.Load()

	// a pingk with a non-zero status means the session died upstream
	relay.pingStatus.Store(-1)
	waitForCondition(t, func() bool { return relay.connects.Load() > connected })

	relay.pingStatus.Store(0)
	pinged := relay.pings.Load()
	waitForCondition(t, func() bool { return relay.pings.Load() > pinged })
}

func TestListenerKeepsSessionAliveWithPings(t *testing.T) {
	relay := newRelayServer(t)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
		WithPingInterval(15*time.Millisecond),
	)
	l.Start(context.Background())
	defer l.Stop()

	waitForCondition(t, func() bool { return relay.pings.Load() >= 3 })

	if got := relay.connects.Load(); got != 1 {
		t.Fatalf("expected a single relay connection, got %d", got)
	}
}

func TestListenerStopTerminatesConnectionLoop(t *testing.T) {
	relay := newRelayServer(t)

	l := NewPushListener(newLoggedInClient(), nil,
		WithRelayURL(relay.url()),
		WithBackoff(10*time.Millisecond, 50*time.Millisecond),
	)
	l.Start(context.Background())

	waitForCondition(t, func() bool { return relay.connects.Load() >= 1 })

	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
