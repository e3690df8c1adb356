package coordinator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diwise/climate-hub/internal/pkg/application/control"
	"github.com/diwise/climate-hub/internal/pkg/infrastructure/auxcloud"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

const acProduct = "000000000000000000000000c0620000"

func newTestDevice(id, name string, state int) types.Device {
	cookie := base64.StdEncoding.EncodeToString([]byte(`{"terminalid":"t-` + id + `","aeskey":"k-` + id + `"}`))

	return types.Device{
		EndpointID:   id,
		ProductID:    acProduct,
		FriendlyName: name,
		MAC:          "mac-" + id,
		DevSession:   "sess-" + id,
		Cookie:       cookie,
		State:        state,
	}
}

// cloudFixture is a mutable in-memory stand-in for the vendor cloud.
type cloudFixture struct {
	mu      sync.Mutex
	devices []types.Device
	states  map[string]int
}

func (f *cloudFixture) list() []types.Device {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Device, len(f.devices))
	copy(out, f.devices)
	return out
}

func (f *cloudFixture) setDevices(devices []types.Device, states map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.devices = devices
	f.states = states
}

func newCloudMock(f *cloudFixture) *CloudAPIMock {
	return &CloudAPIMock{
		ListFamiliesFunc: func(ctx context.Context) ([]types.Family, error) {
			return []types.Family{{FamilyID: "f1", Name: "Home"}}, nil
		},
		ListDevicesFunc: func(ctx context.Context, familyID string) ([]types.Device, error) {
			return f.list(), nil
		},
		QueryDeviceStatesFunc: func(ctx context.Context, devices []types.Device) (map[string]int, error) {
			f.mu.Lock()
			defer f.mu.Unlock()

			states := make(map[string]int, len(devices))
			for _, d := range devices {
				states[d.EndpointID] = f.states[d.EndpointID]
			}
			return states, nil
		},
		GetDeviceParamsFunc: func(ctx context.Context, device types.Device, params []string) (map[string]int, error) {
			if len(params) == 1 && params[0] == "mode" {
				return map[string]int{"mode": 1}, nil
			}
			return map[string]int{"pwr": 1, "temp": 220, "envtemp": 195}, nil
		},
		SetDeviceParamsFunc: func(ctx context.Context, device types.Device, values map[string]int) (map[string]int, error) {
			return values, nil
		},
	}
}

func newMsgCtxMock() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			return nil
		},
	}
}

func setupCoordinator(t *testing.T, opts ...Option) (*is.I, Coordinator, *CloudAPIMock, *cloudFixture) {
	is := is.New(t)

	fixture := &cloudFixture{}
	fixture.setDevices(
		[]types.Device{
			newTestDevice("d1", "Living Room", types.DeviceStateOnline),
			newTestDevice("d2", "Bedroom AC", types.DeviceStateOffline),
		},
		map[string]int{"d1": 1, "d2": 0},
	)

	cloud := newCloudMock(fixture)

	defaults := []Option{WithDiscoveryInterval(time.Hour), WithMonitorInterval(time.Hour), WithErrorRetryDelay(10 * time.Millisecond)}
	svc := New(cloud, newMsgCtxMock(), append(defaults, opts...)...)

	return is, svc, cloud, fixture
}

func paramCallsFor(cloud *CloudAPIMock, endpointID string) int {
	n := 0
	for _, call := range cloud.GetDeviceParamsCalls() {
		if call.Device.EndpointID == endpointID {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestStartPopulatesTwin(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	devices := svc.GetDevices(ctx)
	is.Equal(len(devices), 2)
	is.Equal(devices[0].EndpointID, "d1")
	is.Equal(devices[1].EndpointID, "d2")

	// the online device completed one pass: standard + special parameter set
	is.Equal(paramCallsFor(cloud, "d1"), 2)
	is.True(devices[0].Params["temp"] == 220)
	is.True(devices[0].Params["mode"] == 1)

	// the offline device reached ready without fetching anything
	is.Equal(paramCallsFor(cloud, "d2"), 0)
	is.Equal(len(devices[1].Params), 0)
}

func TestStartCompletesWhenFirstRefreshFails(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t, WithErrorRetryDelay(150*time.Millisecond))
	ctx := context.Background()

	var calls atomic.Int32
	cloud.GetDeviceParamsFunc = func(ctx context.Context, device types.Device, params []string) (map[string]int, error) {
		if calls.Add(1) <= 2 {
			return nil, fmt.Errorf("%w: relay hiccup", auxcloud.ErrServerBusy)
		}
		if len(params) == 1 && params[0] == "mode" {
			return map[string]int{"mode": 1}, nil
		}
		return map[string]int{"pwr": 1, "temp": 220, "envtemp": 195}, nil
	}

	started := make(chan error, 1)
	go func() { started <- svc.Start(ctx) }()

	select {
	case err := <-started:
		is.NoErr(err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return while a device refresh kept failing")
	}
	defer svc.Stop(ctx)

	// the failing device is present in the twin, just without parameters yet
	d, err := svc.FindDevice(ctx, "d1")
	is.NoErr(err)
	is.Equal(len(d.Params), 0)

	// the monitor keeps retrying and recovers once the cloud answers again
	waitFor(t, func() bool {
		d, err := svc.FindDevice(ctx, "d1")
		return err == nil && d.Params["temp"] == 220 && d.Params["mode"] == 1
	})
}

func TestFindDeviceLookupOrder(t *testing.T) {
	is, svc, _, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	d, err := svc.FindDevice(ctx, "d1")
	is.NoErr(err)
	is.Equal(d.EndpointID, "d1")

	d, err = svc.FindDevice(ctx, "LIVING ROOM")
	is.NoErr(err)
	is.Equal(d.EndpointID, "d1")

	d, err = svc.FindDevice(ctx, "bedroom")
	is.NoErr(err)
	is.Equal(d.EndpointID, "d2")

	_, err = svc.FindDevice(ctx, "garage")
	is.True(errors.Is(err, ErrDeviceNotFound))
}

func TestTriggersCoalesce(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	before := paramCallsFor(cloud, "d1")

	for range 5 {
		svc.TriggerUpdate("d1")
	}

	waitFor(t, func() bool { return paramCallsFor(cloud, "d1") >= before+2 })

	// no further refreshes: the burst collapsed into a single pass
	time.Sleep(100 * time.Millisecond)
	is.Equal(paramCallsFor(cloud, "d1"), before+2)
}

func TestControlTriggersRefresh(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	updates := make(chan types.Device, 16)
	svc.OnUpdate(func(device types.Device) {
		updates <- device
	})

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	// drain the update from the initial monitor pass
	<-updates

	before := paramCallsFor(cloud, "d1")

	is.NoErr(svc.SetTemperature(ctx, "d1", 22))

	setCalls := cloud.SetDeviceParamsCalls()
	is.Equal(len(setCalls), 1)
	is.Equal(setCalls[0].Device.EndpointID, "d1")
	is.Equal(setCalls[0].Values, map[string]int{"temp": 220})

	// the trigger wakes the monitor, which pulls authoritative state and fans out
	waitFor(t, func() bool { return paramCallsFor(cloud, "d1") >= before+2 })

	select {
	case d := <-updates:
		is.Equal(d.EndpointID, "d1")
	case <-time.After(time.Second):
		t.Fatal("no device update published after control")
	}
}

func TestOfflineDeviceShortCircuits(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	err := svc.SetMode(ctx, "d2", "cool")
	is.True(errors.Is(err, ErrDeviceOffline))

	is.Equal(len(cloud.SetDeviceParamsCalls()), 0)
}

func TestInvalidParameterSurfaces(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	err := svc.SetMode(ctx, "d1", "warm")
	is.True(errors.Is(err, control.ErrInvalidParameter))

	err = svc.SetTemperature(ctx, "d1", 30.1)
	is.True(errors.Is(err, control.ErrInvalidParameter))

	is.Equal(len(cloud.SetDeviceParamsCalls()), 0)
}

func TestServerBusyIsSurfacedWithoutTrigger(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	cloud.SetDeviceParamsFunc = func(ctx context.Context, device types.Device, values map[string]int) (map[string]int, error) {
		return nil, fmt.Errorf("%w: throttled", auxcloud.ErrServerBusy)
	}

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	before := paramCallsFor(cloud, "d1")

	err := svc.SetTemperature(ctx, "d1", 22)
	is.True(errors.Is(err, ErrServerBusy))

	// the monitor was not triggered and the twin is unchanged
	time.Sleep(100 * time.Millisecond)
	is.Equal(paramCallsFor(cloud, "d1"), before)

	d, err := svc.FindDevice(ctx, "d1")
	is.NoErr(err)
	is.Equal(d.Params["temp"], 220)
}

func TestDiscoveryConvergesAndRemovesDevices(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	fixture := &cloudFixture{}
	fixture.setDevices(
		[]types.Device{
			newTestDevice("d1", "Living Room", types.DeviceStateOnline),
			newTestDevice("d2", "Bedroom AC", types.DeviceStateOffline),
		},
		map[string]int{"d1": 1, "d2": 0},
	)

	msgCtx := newMsgCtxMock()
	svc := New(newCloudMock(fixture), msgCtx,
		WithDiscoveryInterval(20*time.Millisecond),
		WithMonitorInterval(time.Hour),
	)

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	is.Equal(len(svc.GetDevices(ctx)), 2)

	// several stable discovery steps must not change membership
	time.Sleep(100 * time.Millisecond)
	is.Equal(len(svc.GetDevices(ctx)), 2)

	created := 0
	for _, call := range msgCtx.PublishOnTopicCalls() {
		if call.Message.TopicName() == "device.created" {
			created++
		}
	}
	is.Equal(created, 2)

	// drop d2 from the cloud and wait for the twin to converge
	fixture.setDevices(
		[]types.Device{newTestDevice("d1", "Living Room", types.DeviceStateOnline)},
		map[string]int{"d1": 1},
	)

	waitFor(t, func() bool { return len(svc.GetDevices(ctx)) == 1 })

	_, err := svc.FindDevice(ctx, "d2")
	is.True(errors.Is(err, ErrDeviceNotFound))

	// triggering a removed device is a no-op
	svc.TriggerUpdate("d2")
}

func TestPushMessageTriggersNamedEndpoint(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	before := paramCallsFor(cloud, "d1")

	raw := []byte(`{"msgtype":"push","data":{"endpointId":"d1"}}`)
	msg := auxcloud.PushMessage{}
	is.NoErr(json.Unmarshal(raw, &msg))
	msg.Raw = raw

	svc.HandlePushMessage(ctx, msg)

	waitFor(t, func() bool { return paramCallsFor(cloud, "d1") >= before+2 })
}

func TestPushMessageWithoutEndpointIsForwardedVerbatim(t *testing.T) {
	is, svc, _, _ := setupCoordinator(t)
	ctx := context.Background()

	forwarded := make(chan []byte, 1)
	svc.OnMessage(func(msg []byte) {
		forwarded <- msg
	})

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	raw := []byte(`{"msgtype":"notice","data":{"text":"maintenance window"}}`)
	msg := auxcloud.PushMessage{}
	is.NoErr(json.Unmarshal(raw, &msg))
	msg.Raw = raw

	svc.HandlePushMessage(ctx, msg)

	select {
	case b := <-forwarded:
		is.Equal(string(b), string(raw))
	case <-time.After(time.Second):
		t.Fatal("message was not forwarded")
	}
}

func TestPanickingSubscriberIsSkipped(t *testing.T) {
	is, svc, _, _ := setupCoordinator(t)
	ctx := context.Background()

	updates := make(chan types.Device, 16)
	svc.OnUpdate(func(device types.Device) {
		panic("subscriber gone wrong")
	})
	svc.OnUpdate(func(device types.Device) {
		updates <- device
	})

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	select {
	case d := <-updates:
		is.Equal(d.EndpointID, "d1")
	case <-time.After(time.Second):
		t.Fatal("publisher did not survive panicking subscriber")
	}
}

func TestStopFreezesTwin(t *testing.T) {
	is, svc, cloud, _ := setupCoordinator(t)
	ctx := context.Background()

	is.NoErr(svc.Start(ctx))
	is.NoErr(svc.Stop(ctx))

	calls := len(cloud.GetDeviceParamsCalls())

	// still readable, but no monitor wakes up anymore
	svc.TriggerUpdate("d1")
	time.Sleep(50 * time.Millisecond)

	is.Equal(len(svc.GetDevices(ctx)), 2)
	is.Equal(len(cloud.GetDeviceParamsCalls()), calls)
}
