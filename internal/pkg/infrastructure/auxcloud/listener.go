package auxcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gorilla/websocket"
)

const (
	relayConnectPath = "/appsync/apprelay/relayconnect"

	defaultPingInterval = 10 * time.Second
	defaultInitialDelay = 5 * time.Second
	defaultMaxDelay     = 300 * time.Second
	relayWriteTimeout   = 10 * time.Second
)

// PushMessage is one frame received from the relay. Raw carries the frame
// verbatim so unrecognized messages can be passed through unchanged.
type PushMessage struct {
	MsgType string          `json:"msgtype"`
	Status  *int            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Raw     []byte          `json:"-"`
}

func (m PushMessage) status() int {
	if m.Status == nil {
		return -1
	}
	return *m.Status
}

// EndpointID extracts the endpoint id from a push frame, or returns the
// empty string when the frame does not name one.
func (m PushMessage) EndpointID() string {
	var data struct {
		EndpointID string `json:"endpointId"`
	}
	if len(m.Data) == 0 || json.Unmarshal(m.Data, &data) != nil {
		return ""
	}
	return data.EndpointID
}

// PushHandler receives every relay frame that is not part of the session
// protocol itself.
type PushHandler func(ctx context.Context, msg PushMessage)

// PushListener maintains the single upstream websocket to the vendor relay,
// keeps the session alive and reconnects with capped exponential backoff.
type PushListener struct {
	relayURL string
	headers  http.Header
	session  string
	userID   string

	handler PushHandler
	dialer  *websocket.Dialer
	now     func() time.Time

	pingInterval time.Duration
	initialDelay time.Duration
	maxDelay     time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type ListenerOption func(*PushListener)

// WithRelayURL overrides the relay endpoint. Used by tests.
func WithRelayURL(u string) ListenerOption {
	return func(l *PushListener) {
		l.relayURL = u
	}
}

// WithBackoff overrides the reconnect delays. Used by tests.
func WithBackoff(initial, max time.Duration) ListenerOption {
	return func(l *PushListener) {
		l.initialDelay = initial
		l.maxDelay = max
	}
}

// WithPingInterval overrides the keepalive interval. Used by tests.
func WithPingInterval(d time.Duration) ListenerOption {
	return func(l *PushListener) {
		l.pingInterval = d
	}
}

// NewPushListener creates a listener bound to the client's region and
// session. The client must be logged in; the relay authenticates the
// handshake via the session headers.
func NewPushListener(client *Client, handler PushHandler, opts ...ListenerOption) *PushListener {
	session, userID := client.Session()

	l := &PushListener{
		relayURL:     client.Region().relayURL() + relayConnectPath,
		headers:      client.RelayHeaders(),
		session:      session,
		userID:       userID,
		handler:      handler,
		dialer:       websocket.DefaultDialer,
		now:          time.Now,
		pingInterval: defaultPingInterval,
		initialDelay: defaultInitialDelay,
		maxDelay:     defaultMaxDelay,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start spawns the connection loop. It returns immediately; connection
// state is observable through the logs and the handler.
func (l *PushListener) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)

	l.wg.Add(1)
	go l.connectionLoop(ctx)
}

// Stop cancels the connection loop and waits for it to exit.
func (l *PushListener) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}

func (l *PushListener) connectionLoop(ctx context.Context) {
	defer l.wg.Done()

	log := logging.GetFromContext(ctx)
	delay := l.initialDelay

	for {
		established, err := l.runConnection(ctx)
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			log.Error("relay connection lost", "err", err.Error())
		}
		if established {
			delay = l.initialDelay
		}

		log.Debug("scheduling relay reconnect", slog.Duration("delay", delay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if !established {
			delay = min(delay*2, l.maxDelay)
		}
	}
}

type relayInitFrame struct {
	Data      map[string]string `json:"data"`
	MessageID string            `json:"messageid"`
	MsgType   string            `json:"msgtype"`
	Scope     relayScope        `json:"scope"`
}

type relayScope struct {
	LoginSession string `json:"loginsession"`
	UserID       string `json:"userid"`
}

type relayPingFrame struct {
	MessageID string `json:"messageid"`
	MsgType   string `json:"msgtype"`
}

func (l *PushListener) messageID() string {
	return strconv.FormatInt(l.now().Unix(), 10) + "000"
}

// runConnection dials the relay, performs the init exchange and services
// the session until it dies. It reports whether the session was established
// so the caller can reset its backoff.
func (l *PushListener) runConnection(ctx context.Context) (established bool, err error) {
	log := logging.GetFromContext(ctx)

	conn, resp, err := l.dialer.DialContext(ctx, l.relayURL, l.headers)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("relay handshake failed (%s): %w", resp.Status, err)
		}
		return false, fmt.Errorf("failed to dial relay: %w", err)
	}
	defer conn.Close()

	err = l.send(conn, relayInitFrame{
		Data:      map[string]string{"relayrule": "share"},
		MessageID: l.messageID(),
		MsgType:   "init",
		Scope:     relayScope{LoginSession: l.session, UserID: l.userID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to send init frame: %w", err)
	}

	connDone := make(chan struct{})
	defer close(connDone)

	frames := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				select {
				case readErr <- err:
				case <-connDone:
				}
				return
			}
			select {
			case frames <- data:
			case <-connDone:
				return
			}
		}
	}()

	pings := time.NewTicker(l.pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-ctx.Done():
			return established, nil

		case err := <-readErr:
			return established, fmt.Errorf("relay read failed: %w", err)

		case <-pings.C:
			if !established {
				continue
			}
			if err := l.send(conn, relayPingFrame{MessageID: l.messageID(), MsgType: "ping"}); err != nil {
				return established, fmt.Errorf("failed to send keepalive: %w", err)
			}

		case data := <-frames:
			var msg PushMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Warn("discarding undecodable relay frame", "err", err.Error())
				continue
			}
			msg.Raw = data

			switch msg.MsgType {
			case "initk":
				if msg.status() != 0 {
					return false, fmt.Errorf("relay rejected session (init status %d)", msg.status())
				}
				log.Info("relay session established")
				established = true

			case "pingk":
				if msg.status() != 0 {
					return established, fmt.Errorf("relay session died (ping status %d)", msg.status())
				}

			default:
				if l.handler != nil {
					l.handler(ctx, msg)
				}
			}
		}
	}
}

func (l *PushListener) send(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(relayWriteTimeout))
	return conn.WriteJSON(v)
}
