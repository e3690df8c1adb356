package coordinator

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func newIncomingCommand(t *testing.T, cmd types.ControlCommand) messaging.IncomingTopicMessage {
	t.Helper()

	return &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(cmd)
			return b
		},
		TopicNameFunc: func() string {
			return cmd.TopicName()
		},
		ContentTypeFunc: func() string {
			return cmd.ContentType()
		},
	}
}

func TestControlCommandHandlerDispatchesPower(t *testing.T) {
	is := is.New(t)

	svc := &CoordinatorMock{
		SetPowerFunc: func(ctx context.Context, idOrName string, on bool) error {
			return nil
		},
	}

	on := true
	handler := NewControlCommandHandler(svc)
	handler(context.Background(), newIncomingCommand(t, types.ControlCommand{
		DeviceID: "d1",
		Action:   types.ControlActionPower,
		On:       &on,
	}), slog.Default())

	calls := svc.SetPowerCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].IdOrName, "d1")
	is.True(calls[0].On)
}

func TestControlCommandHandlerDispatchesTemperature(t *testing.T) {
	is := is.New(t)

	svc := &CoordinatorMock{
		SetTemperatureFunc: func(ctx context.Context, idOrName string, celsius float64) error {
			return nil
		},
	}

	temp := 21.5
	handler := NewControlCommandHandler(svc)
	handler(context.Background(), newIncomingCommand(t, types.ControlCommand{
		DeviceID:    "bedroom",
		Action:      types.ControlActionTemperature,
		Temperature: &temp,
	}), slog.Default())

	calls := svc.SetTemperatureCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].IdOrName, "bedroom")
	is.Equal(calls[0].Celsius, 21.5)
}

func TestControlCommandHandlerIgnoresMalformedCommands(t *testing.T) {
	is := is.New(t)

	svc := &CoordinatorMock{}

	handler := NewControlCommandHandler(svc)
	handler(context.Background(), &messaging.IncomingTopicMessageMock{
		BodyFunc:        func() []byte { return []byte(`{"deviceID":`) },
		TopicNameFunc:   func() string { return "device.control" },
		ContentTypeFunc: func() string { return "application/json" },
	}, slog.Default())

	// a temperature command without a value is dropped as well
	handler(context.Background(), newIncomingCommand(t, types.ControlCommand{
		DeviceID: "d1",
		Action:   types.ControlActionTemperature,
	}), slog.Default())

	is.Equal(len(svc.SetPowerCalls()), 0)
	is.Equal(len(svc.SetTemperatureCalls()), 0)
}
