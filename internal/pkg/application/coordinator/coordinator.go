package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/diwise/climate-hub/internal/pkg/application/control"
	"github.com/diwise/climate-hub/internal/pkg/infrastructure/auxcloud"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("climate-hub/coordinator")

var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrDeviceOffline = fmt.Errorf("device is offline")
var ErrServerBusy = fmt.Errorf("cloud is busy, try again later")

const (
	DefaultDiscoveryInterval = 60 * time.Second
	DefaultMonitorInterval   = 60 * time.Second
	defaultErrorRetryDelay   = 10 * time.Second
)

//go:generate moq -rm -out cloudapi_mock.go . CloudAPI

// CloudAPI is the subset of the vendor cloud client the coordinator needs.
type CloudAPI interface {
	ListFamilies(ctx context.Context) ([]types.Family, error)
	ListDevices(ctx context.Context, familyID string) ([]types.Device, error)
	QueryDeviceStates(ctx context.Context, devices []types.Device) (map[string]int, error)
	GetDeviceParams(ctx context.Context, device types.Device, params []string) (map[string]int, error)
	SetDeviceParams(ctx context.Context, device types.Device, values map[string]int) (map[string]int, error)
}

//go:generate moq -rm -out coordinator_mock.go . Coordinator

// Coordinator owns the in-memory twin of all cloud-connected devices and
// schedules every device-touching call: one discovery loop, one monitor per
// device, and the control dispatch path. Readers observe an eventually
// consistent snapshot.
type Coordinator interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	GetDevices(ctx context.Context) []types.Device
	FindDevice(ctx context.Context, idOrName string) (types.Device, error)

	OnUpdate(fn func(device types.Device))
	OnMessage(fn func(msg []byte))
	TriggerUpdate(endpointID string)

	SetPower(ctx context.Context, idOrName string, on bool) error
	SetTemperature(ctx context.Context, idOrName string, celsius float64) error
	SetMode(ctx context.Context, idOrName string, mode string) error
	SetFanSpeed(ctx context.Context, idOrName string, speed string) error
	SetSwing(ctx context.Context, idOrName string, direction string, on bool) error

	HandlePushMessage(ctx context.Context, msg auxcloud.PushMessage)
	RegisterTopicMessageHandler(ctx context.Context) error
}

// monitor is the per-device bookkeeping: a cancellable task handle, a
// single-slot trigger channel and a one-shot ready latch that is closed
// after the first monitor pass.
type monitor struct {
	cancel    context.CancelFunc
	done      chan struct{}
	trigger   chan struct{}
	ready     chan struct{}
	readyOnce sync.Once
}

func (m *monitor) setReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

type service struct {
	cloud     CloudAPI
	messenger messaging.MsgContext

	discoveryInterval time.Duration
	monitorInterval   time.Duration
	errorRetryDelay   time.Duration

	mu       sync.RWMutex
	devices  map[string]*types.Device
	monitors map[string]*monitor
	order    []string

	subMu       sync.RWMutex
	subscribers []func(types.Device)
	listeners   []func([]byte)

	runCtx  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

type Option func(*service)

func WithDiscoveryInterval(d time.Duration) Option {
	return func(s *service) {
		s.discoveryInterval = d
	}
}

func WithMonitorInterval(d time.Duration) Option {
	return func(s *service) {
		s.monitorInterval = d
	}
}

// WithErrorRetryDelay overrides the pause after a failed monitor pass.
func WithErrorRetryDelay(d time.Duration) Option {
	return func(s *service) {
		s.errorRetryDelay = d
	}
}

func New(cloud CloudAPI, messenger messaging.MsgContext, opts ...Option) Coordinator {
	s := &service{
		cloud:     cloud,
		messenger: messenger,

		discoveryInterval: DefaultDiscoveryInterval,
		monitorInterval:   DefaultMonitorInterval,
		errorRetryDelay:   defaultErrorRetryDelay,

		devices:  make(map[string]*types.Device),
		monitors: make(map[string]*monitor),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start runs one synchronous discovery step, waits for every discovered
// device to complete its first monitor pass and then spawns the periodic
// discovery loop. The twin is usable, though not necessarily fully
// populated, when Start returns.
func (s *service) Start(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("coordinator is already started")
	}
	s.started = true
	s.runCtx, s.cancel = context.WithCancel(ctx)
	runCtx := s.runCtx
	s.mu.Unlock()

	if err := s.discoverDevices(runCtx); err != nil {
		log.Error("initial discovery failed, will retry on next tick", "err", err.Error())
	}

	s.mu.RLock()
	initial := slices.Collect(maps.Values(s.monitors))
	s.mu.RUnlock()

	for _, m := range initial {
		select {
		case <-m.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.wg.Add(1)
	go s.discoveryLoop(runCtx)

	return nil
}

// Stop cancels the discovery loop and every monitor and waits for them to
// exit. The twin remains readable afterwards, but frozen.
func (s *service) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	return nil
}

func (s *service) discoveryLoop(ctx context.Context) {
	defer s.wg.Done()

	log := logging.GetFromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.discoveryInterval):
		}

		if err := s.discoverDevices(ctx); err != nil {
			log.Error("discovery step failed, will retry on next tick", "err", err.Error())
		}
	}
}

// discoverDevices performs one full discovery step. Any error aborts the
// whole step without touching the twin, so a broken family can not cause
// spurious device removals.
func (s *service) discoverDevices(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "discover-devices")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	families, err := s.cloud.ListFamilies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list families: %w", err)
	}

	discovered := make([]types.Device, 0, 8)

	for _, family := range families {
		devices, err := s.cloud.ListDevices(ctx, family.FamilyID)
		if err != nil {
			return fmt.Errorf("failed to list devices in family %s: %w", family.FamilyID, err)
		}

		if len(devices) == 0 {
			continue
		}

		states, err := s.cloud.QueryDeviceStates(ctx, devices)
		if err != nil {
			return fmt.Errorf("failed to query device states in family %s: %w", family.FamilyID, err)
		}

		for _, d := range devices {
			if d.EndpointID == "" {
				continue
			}
			d.State = states[d.EndpointID]
			discovered = append(discovered, d)
		}
	}

	s.apply(ctx, discovered)

	return nil
}

// apply reconciles the twin with the outcome of a discovery step: unknown
// devices are inserted and get a monitor, known devices get their online
// flag refreshed, and devices the cloud no longer lists are removed.
func (s *service) apply(ctx context.Context, discovered []types.Device) {
	log := logging.GetFromContext(ctx)

	var created []types.Device
	var removedIDs []string
	var stopped []*monitor

	s.mu.Lock()

	seen := make(map[string]struct{}, len(discovered))

	for _, d := range discovered {
		seen[d.EndpointID] = struct{}{}

		if existing, ok := s.devices[d.EndpointID]; ok {
			existing.State = d.State
			continue
		}

		dev := d.Clone()
		s.devices[d.EndpointID] = &dev
		s.order = append(s.order, d.EndpointID)
		s.startMonitorLocked(d.EndpointID)

		created = append(created, dev.Clone())
	}

	for _, id := range slices.Clone(s.order) {
		if _, ok := seen[id]; ok {
			continue
		}

		if m := s.monitors[id]; m != nil {
			m.cancel()
			stopped = append(stopped, m)
			delete(s.monitors, id)
		}

		delete(s.devices, id)
		s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
		removedIDs = append(removedIDs, id)
	}

	s.mu.Unlock()

	// monitors of removed devices must be gone before we announce the removal
	for _, m := range stopped {
		<-m.done
	}

	for _, d := range created {
		log.Info("device discovered", slog.String("endpoint_id", d.EndpointID), slog.String("name", d.FriendlyName), slog.Bool("online", d.IsOnline()))

		err := s.messenger.PublishOnTopic(ctx, &types.DeviceCreated{Device: d, Timestamp: time.Now().UTC()})
		if err != nil {
			log.Error("failed to publish device.created", "err", err.Error())
		}
	}

	for _, id := range removedIDs {
		log.Info("device removed", slog.String("endpoint_id", id))

		err := s.messenger.PublishOnTopic(ctx, &types.DeviceRemoved{DeviceID: id, Timestamp: time.Now().UTC()})
		if err != nil {
			log.Error("failed to publish device.removed", "err", err.Error())
		}
	}
}

func (s *service) startMonitorLocked(endpointID string) {
	mctx, cancel := context.WithCancel(s.runCtx)

	m := &monitor{
		cancel:  cancel,
		done:    make(chan struct{}),
		trigger: make(chan struct{}, 1),
		ready:   make(chan struct{}),
	}
	s.monitors[endpointID] = m

	s.wg.Add(1)
	go s.runMonitor(mctx, endpointID, m)
}

// runMonitor is the per-device refresh loop. It wakes on its trigger or on
// the monitor interval, whichever comes first, and never has more than one
// refresh in flight.
func (s *service) runMonitor(ctx context.Context, endpointID string, m *monitor) {
	defer s.wg.Done()
	defer close(m.done)

	log := logging.GetFromContext(ctx).With(slog.String("endpoint_id", endpointID))
	ctx = logging.NewContextWithLogger(ctx, log)

	for {
		device, ok := s.snapshot(endpointID)
		if !ok {
			return
		}

		if device.IsOnline() {
			err := s.refresh(ctx, device)
			if err != nil {
				log.Error("failed to refresh device", "err", err.Error())
				m.setReady()

				select {
				case <-ctx.Done():
					return
				case <-time.After(s.errorRetryDelay):
				}

				continue
			}
		}

		m.setReady()

		select {
		case <-ctx.Done():
			return
		case <-m.trigger:
		case <-time.After(s.monitorInterval):
		}

		// triggers that arrived while we were refreshing coalesce into this pass
		select {
		case <-m.trigger:
		default:
		}
	}
}

// refresh pulls the device's parameter sets from the cloud and replaces the
// cached mapping wholesale. Errors leave the prior mapping intact.
func (s *service) refresh(ctx context.Context, device types.Device) (err error) {
	ctx, span := tracer.Start(ctx, "refresh-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params, err := s.cloud.GetDeviceParams(ctx, device, types.ParamsForProduct(device.ProductID))
	if err != nil {
		return fmt.Errorf("failed to get device parameters: %w", err)
	}

	if special := types.SpecialParamsForProduct(device.ProductID); len(special) > 0 {
		extra, err := s.cloud.GetDeviceParams(ctx, device, special)
		if err != nil {
			return fmt.Errorf("failed to get special parameters: %w", err)
		}
		maps.Copy(params, extra)
	}

	s.mu.Lock()
	d, ok := s.devices[device.EndpointID]
	if !ok {
		// removed while the refresh was in flight
		s.mu.Unlock()
		return nil
	}
	d.Params = params
	d.LastUpdated = time.Now().UTC()
	updated := d.Clone()
	s.mu.Unlock()

	err = s.messenger.PublishOnTopic(ctx, &types.DeviceStateUpdated{
		DeviceID:  updated.EndpointID,
		State:     updated.State,
		Device:    updated,
		Timestamp: updated.LastUpdated,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish device.stateUpdated", "err", err.Error())
	}

	s.notify(ctx, updated)

	return nil
}

func (s *service) snapshot(endpointID string) (types.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[endpointID]
	if !ok {
		return types.Device{}, false
	}
	return d.Clone(), true
}

func (s *service) GetDevices(ctx context.Context) []types.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]types.Device, 0, len(s.order))
	for _, id := range s.order {
		if d, ok := s.devices[id]; ok {
			devices = append(devices, d.Clone())
		}
	}

	return devices
}

// FindDevice resolves a user-supplied identifier: exact endpoint id first,
// then exact friendly name (case-insensitive), then friendly-name substring.
// Name matches are tried in discovery order.
func (s *service) FindDevice(ctx context.Context, idOrName string) (types.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.devices[idOrName]; ok {
		return d.Clone(), nil
	}

	for _, id := range s.order {
		if d := s.devices[id]; d != nil && strings.EqualFold(d.FriendlyName, idOrName) {
			return d.Clone(), nil
		}
	}

	lowered := strings.ToLower(idOrName)
	for _, id := range s.order {
		if d := s.devices[id]; d != nil && strings.Contains(strings.ToLower(d.FriendlyName), lowered) {
			return d.Clone(), nil
		}
	}

	return types.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, idOrName)
}

func (s *service) OnUpdate(fn func(device types.Device)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// OnMessage registers a listener for upstream push frames that do not name
// an endpoint. They are forwarded verbatim.
func (s *service) OnMessage(fn func(msg []byte)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// TriggerUpdate wakes the device's monitor for an immediate refresh. The
// signal is edge triggered: triggers between two wakes collapse into one.
func (s *service) TriggerUpdate(endpointID string) {
	s.mu.RLock()
	m := s.monitors[endpointID]
	s.mu.RUnlock()

	if m == nil {
		return
	}

	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

func (s *service) notify(ctx context.Context, device types.Device) {
	log := logging.GetFromContext(ctx)

	s.subMu.RLock()
	subscribers := slices.Clone(s.subscribers)
	s.subMu.RUnlock()

	for _, fn := range subscribers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("update subscriber panicked, skipping", "recovered", fmt.Sprintf("%v", r))
				}
			}()
			fn(device.Clone())
		}()
	}
}

func (s *service) forward(ctx context.Context, msg []byte) {
	log := logging.GetFromContext(ctx)

	s.subMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.subMu.RUnlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("message listener panicked, skipping", "recovered", fmt.Sprintf("%v", r))
				}
			}()
			fn(msg)
		}()
	}
}

// HandlePushMessage bridges the relay listener into the twin: a push frame
// naming an endpoint triggers that device's monitor, anything else is
// forwarded unchanged to downstream listeners.
func (s *service) HandlePushMessage(ctx context.Context, msg auxcloud.PushMessage) {
	if msg.MsgType == "push" {
		if endpointID := msg.EndpointID(); endpointID != "" {
			logging.GetFromContext(ctx).Debug("push notification", slog.String("endpoint_id", endpointID))
			s.TriggerUpdate(endpointID)
			return
		}
	}

	s.forward(ctx, msg.Raw)
}

func (s *service) SetPower(ctx context.Context, idOrName string, on bool) (err error) {
	ctx, span := tracer.Start(ctx, "set-power")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.dispatch(ctx, idOrName, func() (map[string]int, error) {
		return control.Power(on), nil
	})
	return err
}

func (s *service) SetTemperature(ctx context.Context, idOrName string, celsius float64) (err error) {
	ctx, span := tracer.Start(ctx, "set-temperature")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.dispatch(ctx, idOrName, func() (map[string]int, error) {
		return control.Temperature(celsius)
	})
	return err
}

func (s *service) SetMode(ctx context.Context, idOrName string, mode string) (err error) {
	ctx, span := tracer.Start(ctx, "set-mode")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.dispatch(ctx, idOrName, func() (map[string]int, error) {
		return control.Mode(mode)
	})
	return err
}

func (s *service) SetFanSpeed(ctx context.Context, idOrName string, speed string) (err error) {
	ctx, span := tracer.Start(ctx, "set-fan-speed")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.dispatch(ctx, idOrName, func() (map[string]int, error) {
		return control.FanSpeed(speed)
	})
	return err
}

func (s *service) SetSwing(ctx context.Context, idOrName string, direction string, on bool) (err error) {
	ctx, span := tracer.Start(ctx, "set-swing")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	err = s.dispatch(ctx, idOrName, func() (map[string]int, error) {
		return control.Swing(direction, on)
	})
	return err
}

// dispatch is the shared control path: resolve the device, refuse offline
// devices before any network I/O, validate, write, and trigger a refresh so
// the monitor pulls the authoritative post-change state.
func (s *service) dispatch(ctx context.Context, idOrName string, build func() (map[string]int, error)) error {
	device, err := s.FindDevice(ctx, idOrName)
	if err != nil {
		return err
	}

	if !device.IsOnline() {
		return fmt.Errorf("%w: %s", ErrDeviceOffline, device.EndpointID)
	}

	values, err := build()
	if err != nil {
		return err
	}

	_, err = s.cloud.SetDeviceParams(ctx, device, values)
	if err != nil {
		return mapCloudError(err)
	}

	s.TriggerUpdate(device.EndpointID)

	return nil
}

func mapCloudError(err error) error {
	switch {
	case errors.Is(err, auxcloud.ErrServerBusy):
		return fmt.Errorf("%w: %s", ErrServerBusy, err.Error())
	case errors.Is(err, auxcloud.ErrDeviceOffline):
		return fmt.Errorf("%w: %s", ErrDeviceOffline, err.Error())
	}
	return fmt.Errorf("failed to control device: %w", err)
}

func (s *service) RegisterTopicMessageHandler(ctx context.Context) error {
	return s.messenger.RegisterTopicMessageHandler((&types.ControlCommand{}).TopicName(), NewControlCommandHandler(s))
}
