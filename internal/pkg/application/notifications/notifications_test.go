package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

const configYaml = `
notifications:
  - id: state-changes
    name: device state changes
    type: diwise.climate.devicestate
    subscribers:
      - endpoint: http://127.0.0.1:19000/ce
      - endpoint: http://127.0.0.1:19001/ce
        devices:
          - 00000000000000000000000000000bed
`

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(bytes.NewBufferString(configYaml))
	is.NoErr(err)

	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].Type, "diwise.climate.devicestate")
	is.Equal(len(cfg.Notifications[0].Subscribers), 2)
	is.Equal(cfg.Notifications[0].Subscribers[1].Devices[0], "00000000000000000000000000000bed")
}

func TestSubscriberFiltering(t *testing.T) {
	is := is.New(t)

	everything := SubscriberConfig{Endpoint: "http://localhost/"}
	is.True(everything.accepts("any-device"))

	bedroomOnly := SubscriberConfig{Endpoint: "http://localhost/", Devices: []string{"bedroom"}}
	is.True(bedroomOnly.accepts("bedroom"))
	is.True(!bedroomOnly.accepts("livingroom"))
}

func TestDeviceStateUpdatedDeliversCloudEvent(t *testing.T) {
	is := is.New(t)

	received := make(chan *http.Request, 1)
	bodies := make(chan []byte, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		buf.ReadFrom(r.Body)
		received <- r
		bodies <- buf.Bytes()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg, err := LoadConfiguration(bytes.NewBufferString(strings.ReplaceAll(configYaml, "http://127.0.0.1:19000/ce", srv.URL)))
	is.NoErr(err)

	// drop the filtered subscriber so the test only talks to the local server
	cfg.Notifications[0].Subscribers = cfg.Notifications[0].Subscribers[:1]

	n, err := New(cfg)
	is.NoErr(err)

	evt := types.DeviceStateUpdated{
		DeviceID:  "d1",
		State:     types.DeviceStateOnline,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	is.NoErr(n.DeviceStateUpdated(context.Background(), evt))

	select {
	case r := <-received:
		is.Equal(r.Header.Get("Ce-Type"), "diwise.climate.devicestate")
		is.Equal(r.Header.Get("Ce-Source"), "github.com/diwise/climate-hub")

		body := types.DeviceStateUpdated{}
		is.NoErr(json.Unmarshal(<-bodies, &body))
		is.Equal(body.DeviceID, "d1")
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestDeviceStateUpdatedWithoutSubscribersIsANoOp(t *testing.T) {
	is := is.New(t)

	n, err := New(nil)
	is.NoErr(err)

	is.NoErr(n.DeviceStateUpdated(context.Background(), types.DeviceStateUpdated{DeviceID: "d1"}))
}

func TestDeviceStateUpdatedHandler(t *testing.T) {
	is := is.New(t)

	n := &NotifierMock{
		DeviceStateUpdatedFunc: func(ctx context.Context, evt types.DeviceStateUpdated) error {
			return nil
		},
	}

	evt := types.DeviceStateUpdated{DeviceID: "d1", State: types.DeviceStateOnline, Timestamp: time.Now().UTC()}

	handler := NewDeviceStateUpdatedHandler(n)
	handler(context.Background(), &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(evt)
			return b
		},
		TopicNameFunc:   func() string { return evt.TopicName() },
		ContentTypeFunc: func() string { return evt.ContentType() },
	}, slog.Default())

	calls := n.DeviceStateUpdatedCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Evt.DeviceID, "d1")
}
