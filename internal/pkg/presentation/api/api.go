package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"log/slog"

	"github.com/diwise/climate-hub/internal/pkg/application/control"
	"github.com/diwise/climate-hub/internal/pkg/application/coordinator"
	"github.com/diwise/climate-hub/internal/pkg/infrastructure/auxcloud"
	"github.com/diwise/climate-hub/internal/pkg/infrastructure/router"
	"github.com/diwise/climate-hub/internal/pkg/presentation/api/auth"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("climate-hub/api")

func RegisterHandlers(ctx context.Context, mux *http.ServeMux, policies io.Reader, svc coordinator.Coordinator) error {

	rtr := router.New("climate-hub")

	rtr.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	hub := newHub(svc)
	svc.OnUpdate(func(device types.Device) {
		hub.broadcastDeviceUpdate(device)
	})
	svc.OnMessage(func(msg []byte) {
		hub.broadcastCloudMessage(msg)
	})
	go hub.run(ctx)

	rtr.Route("/api/v0", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.ScopeRead))

			r.Get("/devices", queryDevicesHandler(log, svc))
			r.Get("/devices/{deviceID}", getDeviceDetails(log, svc))
			r.Get("/events", websocketHandler(log, hub))
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.ScopeControl))

			r.Post("/devices/{deviceID}/power", setPowerHandler(log, svc))
			r.Post("/devices/{deviceID}/temperature", setTemperatureHandler(log, svc))
			r.Post("/devices/{deviceID}/mode", setModeHandler(log, svc))
			r.Post("/devices/{deviceID}/fanspeed", setFanSpeedHandler(log, svc))
			r.Post("/devices/{deviceID}/swing", setSwingHandler(log, svc))
		})
	})

	mux.Handle("/", rtr)

	return nil
}

func queryDevicesHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-all-devices")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		devices := lo.Map(svc.GetDevices(ctx), func(d types.Device, _ int) types.DeviceDTO {
			return NewDeviceDTO(d)
		})

		b, err := json.Marshal(types.DeviceListResponse{Devices: devices})
		if err != nil {
			requestLogger.Error("unable to marshal devices", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func getDeviceDetails(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		device, err := svc.FindDevice(ctx, deviceID)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		b, err := json.Marshal(NewDeviceDTO(device))
		if err != nil {
			requestLogger.Error("unable to marshal device", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func setPowerHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-power")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		var body powerRequest
		if err = decodeJSON(r, &body); err != nil {
			writeError(w, requestLogger, err)
			return
		}

		err = svc.SetPower(ctx, deviceID, body.On)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func setTemperatureHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-temperature")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		var body temperatureRequest
		if err = decodeJSON(r, &body); err != nil {
			writeError(w, requestLogger, err)
			return
		}

		err = svc.SetTemperature(ctx, deviceID, body.Temperature)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func setModeHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-mode")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		var body modeRequest
		if err = decodeJSON(r, &body); err != nil {
			writeError(w, requestLogger, err)
			return
		}

		err = svc.SetMode(ctx, deviceID, body.Mode)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func setFanSpeedHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-fanspeed")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		var body fanSpeedRequest
		if err = decodeJSON(r, &body); err != nil {
			writeError(w, requestLogger, err)
			return
		}

		err = svc.SetFanSpeed(ctx, deviceID, body.Speed)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func setSwingHandler(log *slog.Logger, svc coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-swing")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		var body swingRequest
		if err = decodeJSON(r, &body); err != nil {
			writeError(w, requestLogger, err)
			return
		}

		err = svc.SetSwing(ctx, deviceID, body.Direction, body.On)
		if err != nil {
			writeError(w, requestLogger, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeJSON(r *http.Request, into any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: unable to read body", control.ErrInvalidParameter)
	}

	err = json.Unmarshal(b, into)
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal body", control.ErrInvalidParameter)
	}

	return nil
}

// writeError maps domain errors onto http status codes and writes a json
// error body.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, coordinator.ErrDeviceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, control.ErrInvalidParameter),
		errors.Is(err, auxcloud.ErrDataError),
		errors.Is(err, coordinator.ErrDeviceOffline):
		status = http.StatusBadRequest
	case errors.Is(err, coordinator.ErrServerBusy):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err.Error())
	} else {
		log.Debug("request rejected", "status", status, "err", err.Error())
	}

	b, _ := json.Marshal(errorResponse{Error: err.Error()})

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
