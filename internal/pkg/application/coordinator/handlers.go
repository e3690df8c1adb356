package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// NewControlCommandHandler lets other services control devices over the
// message bus. Failures are logged, never propagated back onto the bus.
func NewControlCommandHandler(svc Coordinator) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "control-command")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		cmd := types.ControlCommand{}
		err = json.Unmarshal(itm.Body(), &cmd)
		if err != nil {
			log.Error("failed to unmarshal control command", "err", err.Error())
			return
		}

		log = log.With(slog.String("device_id", cmd.DeviceID), slog.String("action", cmd.Action))
		ctx = logging.NewContextWithLogger(ctx, log)

		switch cmd.Action {
		case types.ControlActionPower:
			if cmd.On == nil {
				err = fmt.Errorf("power command carries no on/off value")
			} else {
				err = svc.SetPower(ctx, cmd.DeviceID, *cmd.On)
			}
		case types.ControlActionTemperature:
			if cmd.Temperature == nil {
				err = fmt.Errorf("temperature command carries no value")
			} else {
				err = svc.SetTemperature(ctx, cmd.DeviceID, *cmd.Temperature)
			}
		case types.ControlActionMode:
			err = svc.SetMode(ctx, cmd.DeviceID, cmd.Mode)
		case types.ControlActionFanSpeed:
			err = svc.SetFanSpeed(ctx, cmd.DeviceID, cmd.FanSpeed)
		case types.ControlActionSwing:
			if cmd.On == nil {
				err = fmt.Errorf("swing command carries no on/off value")
			} else {
				err = svc.SetSwing(ctx, cmd.DeviceID, cmd.Direction, *cmd.On)
			}
		default:
			err = fmt.Errorf("unknown control action %q", cmd.Action)
		}

		if err != nil {
			log.Error("control command failed", "err", err.Error())
			return
		}

		log.Debug("control command handled")
	}
}
