package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	yaml "go.yaml.in/yaml/v2"
	"golang.org/x/sys/unix"
)

const eventTypeDeviceState = "diwise.climate.devicestate"

//go:generate moq -rm -out notifications_mock.go . Notifier

type Notifier interface {
	DeviceStateUpdated(ctx context.Context, evt types.DeviceStateUpdated) error
}

type notifier struct {
	client      cloudevents.Client
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) (Notifier, error) {
	client, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}

	n := &notifier{
		client:      client,
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			n.subscribers[s.Type] = s.Subscribers
		}
	}

	return n, nil
}

func (n *notifier) DeviceStateUpdated(ctx context.Context, evt types.DeviceStateUpdated) error {
	subscribers := n.subscribers[eventTypeDeviceState]
	if len(subscribers) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(evt.Timestamp)
	event.SetSource("github.com/diwise/climate-hub")
	event.SetType(eventTypeDeviceState)

	err := event.SetData(cloudevents.ApplicationJSON, evt)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	for _, s := range subscribers {
		if !s.accepts(evt.DeviceID) {
			continue
		}

		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := n.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			log.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

// NewDeviceStateUpdatedHandler feeds state updates from the message bus into
// the notifier.
func NewDeviceStateUpdatedHandler(n Notifier) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		evt := types.DeviceStateUpdated{}

		err := json.Unmarshal(itm.Body(), &evt)
		if err != nil {
			l.Error("failed to unmarshal device state update", "err", err.Error())
			return
		}

		ctx = logging.NewContextWithLogger(ctx, l)

		err = n.DeviceStateUpdated(ctx, evt)
		if err != nil {
			l.Error("failed to notify subscribers", "device_id", evt.DeviceID, "err", err.Error())
		}
	}
}

type SubscriberConfig struct {
	Endpoint string   `yaml:"endpoint"`
	Devices  []string `yaml:"devices,omitempty"`
}

// accepts reports whether the subscriber wants events for the given device.
// An empty device list subscribes to all of them.
func (s SubscriberConfig) accepts(deviceID string) bool {
	return len(s.Devices) == 0 || slices.Contains(s.Devices, deviceID)
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
